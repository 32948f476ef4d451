package runtime

import (
	"github.com/nihei9/lrforge/grammar"
	"github.com/nihei9/lrforge/table"
)

// guardKey memoizes a guard probe by the state it starts in and the
// absolute ring position it starts at, so re-entering the same guard
// at the same lookahead (possible once a Fallback chain or a nested
// guard backtracks) doesn't redo the walk.
type guardKey struct {
	state  int
	offset int
}

// runGuard resolves a KindGuard action: probe the guard's embedded
// rule against the lookahead without consuming it, then either resolve
// and apply the zero-width divert that advances past the guard's own
// placeholder item in the outer rule (the guard matched, so the parse
// proceeds from the real state it was already in, re-checking the SAME
// lookahead lexeme next — never entering act.State itself, which is
// only ever the dedicated probe state, not part of the real parse) or
// fall back to the next-best action table.Build recorded for this
// state/symbol when the guard rejects.
func (s *Session) runGuard(act table.Action, lx Lexeme) Result {
	ok, err := s.probeGuard(act.State)
	if err != nil {
		return Result{Status: Reject, Err: err}
	}
	if ok {
		return s.enterAfterGuard(s.stack.top(), act, lx)
	}
	if act.Fallback != nil {
		return s.applyAction(*act.Fallback, lx)
	}
	return Result{Status: Reject, Err: s.unexpected(lx)}
}

// enterAfterGuard looks up, in `state`, the divert action keyed on the
// guard item itself (recoverable as the guard rule's own Reducing()
// item, per grammar.Grammar.Guard's self-rule construction) and applies
// it, substituting the guard symbol in for the real lookahead exactly
// once, per spec.md §4.6.5.
func (s *Session) enterAfterGuard(state int, act table.Action, lx Lexeme) Result {
	guardItem := s.Grammar.Rule(grammar.RuleID(act.Rule)).Reducing()
	divertAct, ok := s.Table.State(state).Lookup(guardItem)
	if !ok {
		return Result{Status: Reject, Err: s.unexpected(lx)}
	}
	return s.applyAction(divertAct, lx)
}

// probeGuard walks the automaton from a guard's target state using an
// explicit integer stack local to the probe (never the session's real
// Stack, and never Go call-stack recursion over input length), stopping
// as soon as the embedded rule's own accept action fires or no action
// applies. It reads lookahead through Session.peek, so it shares the
// ring with the committed parse and with any enclosing probe but never
// advances s.ringPos itself: a guard is a lookahead assertion, not a
// token consumer.
//
// A guard nested inside another guard's matched rule recurses through
// Go's call stack one level per syntactic nesting depth in the grammar,
// not per input token, which is the bound the "stackless" design in
// spec.md §4.6.5 is protecting: only the LR automaton's own stack needs
// to stay off the Go call stack, since that one's depth tracks input
// length.
func (s *Session) probeGuard(start int) (bool, error) {
	key := guardKey{state: start, offset: s.ringPos}
	if v, ok := s.guardMemo[key]; ok {
		return v, nil
	}

	ok, err := s.walkGuard(start)
	if err != nil {
		return false, err
	}
	s.guardMemo[key] = ok
	return ok, nil
}

func (s *Session) walkGuard(start int) (bool, error) {
	stack := []int{start}
	offset := 0
	for {
		top := stack[len(stack)-1]

		// spec.md §4.6.5 step 2: any state that can reduce or accept on
		// EOG is a point where the guard's inner rule may legitimately
		// end, regardless of what real lookahead happens to follow. Try
		// that before consuming another real token.
		if eogAct, ok := s.Table.State(top).Lookup(s.Table.EOG); ok {
			switch eogAct.Kind {
			case table.KindOther:
				return eogAct.Accept, nil
			case table.KindReduce, table.KindWeakReduce:
				if next, ok := reduceOnStack(s, stack, eogAct); ok {
					stack = next
					continue
				}
			}
		}

		lx, err := s.peek(offset)
		if err != nil {
			return false, err
		}
		act, ok := s.Table.State(top).Lookup(lx.Terminal)
		if !ok {
			return false, nil
		}
		switch act.Kind {
		case table.KindOther:
			return act.Accept, nil
		case table.KindShift:
			stack = append(stack, act.State)
			offset++
		case table.KindIgnore:
			offset++
		case table.KindGuard:
			inner, err := s.probeGuard(act.State)
			if err != nil {
				return false, err
			}
			if !inner {
				return false, nil
			}
			guardItem := s.Grammar.Rule(grammar.RuleID(act.Rule)).Reducing()
			divertAct, ok := s.Table.State(top).Lookup(guardItem)
			if !ok {
				return false, nil
			}
			stack = append(stack, divertAct.State)
		case table.KindReduce, table.KindWeakReduce:
			next, ok := reduceOnStack(s, stack, act)
			if !ok {
				return false, nil
			}
			stack = next
		default:
			return false, nil
		}
	}
}

// reduceOnStack applies a reduce/weak_reduce action to a guard probe's
// local stack (never the session's real or shadow stack), returning the
// updated stack and whether the goto it depends on actually exists.
func reduceOnStack(s *Session, stack []int, act table.Action) ([]int, bool) {
	rule := s.Grammar.Rule(grammar.RuleID(act.Rule))
	n := rule.Len()
	if len(stack) <= n {
		return nil, false
	}
	stack = stack[:len(stack)-n]
	lhs := rule.Reducing()
	goAct, ok := s.Table.State(stack[len(stack)-1]).Lookup(lhs)
	if !ok || goAct.Kind != table.KindGoto {
		return nil, false
	}
	return append(stack, goAct.State), true
}
