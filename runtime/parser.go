package runtime

import (
	"fmt"

	"github.com/nihei9/lrforge/grammar"
	"github.com/nihei9/lrforge/table"
)

// Parse drives the session to completion, grounded on
// driver/parser.go's Parse loop: repeatedly step the state machine
// until it accepts or a syntax error rejects it. More never escapes
// here; it's the internal per-step signal that keeps stepping.
func (s *Session) Parse() Result {
	for {
		res := s.step()
		switch res.Status {
		case Accept:
			s.Actions.Accept()
			return res
		case Reject:
			return res
		}
	}
}

// Step advances the session by exactly one shift, reduce, guard probe
// or accept, for callers that want to drive parsing incrementally (an
// editor's incremental reparse, or a test harness) instead of running
// Parse to completion.
func (s *Session) Step() Result {
	return s.step()
}

func (s *Session) step() Result {
	lx, err := s.peek(0)
	if err != nil {
		return Result{Status: Reject, Err: err}
	}
	act, ok := s.Table.State(s.stack.top()).Lookup(lx.Terminal)
	if !ok {
		return Result{Status: Reject, Err: s.unexpected(lx)}
	}
	return s.applyAction(act, lx)
}

// applyAction carries out one resolved action against the real stack.
// It's shared between the main step loop and a guard's Fallback retry
// so a fallback chain of shift/reduce/nested-guard actions is handled
// identically to a first-choice one.
func (s *Session) applyAction(act table.Action, lx Lexeme) Result {
	switch act.Kind {
	case table.KindGuard:
		return s.runGuard(act, lx)
	case table.KindShift:
		s.stack.push(act.State)
		s.Actions.Shift(lx)
		if _, err := s.advance(); err != nil {
			return Result{Status: Reject, Err: err}
		}
		return Result{Status: More}
	case table.KindDivert:
		// Advances past a matched guard's own placeholder item in the
		// outer rule: a state transition, but not a token consumed.
		s.stack.push(act.State)
		return Result{Status: More}
	case table.KindWeakReduce:
		can, err := s.CanReduce(grammar.RuleID(act.Rule))
		if err != nil {
			return Result{Status: Reject, Err: err}
		}
		if can {
			return s.doReduce(act)
		}
		if act.Fallback != nil {
			return s.applyAction(*act.Fallback, lx)
		}
		return Result{Status: Reject, Err: s.unexpected(lx)}
	case table.KindReduce:
		return s.doReduce(act)
	case table.KindIgnore:
		if _, err := s.advance(); err != nil {
			return Result{Status: Reject, Err: err}
		}
		return Result{Status: More}
	case table.KindOther:
		if act.Accept {
			return Result{Status: Accept}
		}
		return Result{Status: Reject, Err: s.unexpected(lx)}
	default:
		return Result{Status: Reject, Err: fmt.Errorf("runtime: action kind %v cannot occur at an action position", act.Kind)}
	}
}

func (s *Session) doReduce(act table.Action) Result {
	rule := s.Grammar.Rule(grammar.RuleID(act.Rule))
	n := rule.Len()
	s.stack.pop(n)
	lhs := rule.Reducing()
	goAct, ok := s.Table.State(s.stack.top()).Lookup(lhs)
	if !ok || goAct.Kind != table.KindGoto {
		return Result{Status: Reject, Err: fmt.Errorf("runtime: no goto from state %d on reduced symbol %d", s.stack.top(), lhs)}
	}
	s.stack.push(goAct.State)
	s.Actions.Reduce(act.Rule, lhs, n)
	return Result{Status: More}
}

func (s *Session) unexpected(lx Lexeme) error {
	return fmt.Errorf("runtime: unexpected token %q at row %d, col %d", lx.Text, lx.Row, lx.Col)
}
