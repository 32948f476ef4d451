package runtime

import (
	"github.com/nihei9/lrforge/grammar"
	"github.com/nihei9/lrforge/table"
)

// Session drives one parse to completion. It holds a shared lookahead
// ring buffer so a guard probe (and can_reduce) can look arbitrarily
// far ahead of the committed parse without re-invoking Stream, which
// is not assumed to be repeatable: every lexeme it yields is cached in
// the ring exactly once, regardless of how many speculative states end
// up consulting it.
type Session struct {
	Grammar *grammar.Grammar
	Table   *table.Table
	Stream  LexemeStream
	Actions ParseActions

	ring    []Lexeme
	ringPos int

	stack *Stack

	guardMemo map[guardKey]bool
}

// NewSession builds a session that drives t over g starting from state
// 0, reading lexemes from stream and reporting shift/reduce/accept
// events to actions (NoopActions if nil).
func NewSession(g *grammar.Grammar, t *table.Table, stream LexemeStream, actions ParseActions) *Session {
	if actions == nil {
		actions = NoopActions{}
	}
	return &Session{
		Grammar:   g,
		Table:     t,
		Stream:    stream,
		Actions:   actions,
		stack:     newStack(0),
		guardMemo: map[guardKey]bool{},
	}
}

// peek returns the lookahead n positions past the current committed
// position, pulling from Stream and caching into the ring as needed.
func (s *Session) peek(n int) (Lexeme, error) {
	for len(s.ring)-s.ringPos <= n {
		lx, err := s.Stream.Next()
		if err != nil {
			return Lexeme{}, err
		}
		s.ring = append(s.ring, lx)
	}
	return s.ring[s.ringPos+n], nil
}

// advance commits the next lookahead, consuming it permanently.
func (s *Session) advance() (Lexeme, error) {
	lx, err := s.peek(0)
	if err != nil {
		return Lexeme{}, err
	}
	s.ringPos++
	return lx, nil
}

// CanReduce reports whether reducing by rule from the current, real
// parse state would leave a state with a legal action for the upcoming
// lookahead (spec.md §6.4), without committing to the reduction: it
// clones the stack into a shadow stack and replays the reduction plus
// one more table lookup against it.
func (s *Session) CanReduce(rule grammar.RuleID) (bool, error) {
	lx, err := s.peek(0)
	if err != nil {
		return false, err
	}
	r := s.Grammar.Rule(rule)
	n := r.Len()
	if s.stack.len() <= n {
		return false, nil
	}
	shadow := s.stack.clone()
	shadow.pop(n)
	lhs := r.Reducing()
	goAct, ok := s.Table.State(shadow.top()).Lookup(lhs)
	if !ok || goAct.Kind != table.KindGoto {
		return false, nil
	}
	shadow.push(goAct.State)
	_, ok = s.Table.State(shadow.top()).Lookup(lx.Terminal)
	return ok, nil
}
