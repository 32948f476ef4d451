// Package table synthesizes the per-state action/goto table from an
// LALR(1) automaton (spec.md §4.3.4), runs the pluggable rewriter
// pipeline over every state/symbol's proposed actions (ignored
// symbols, weak symbols, conflict attributes, operator precedence, and
// finally LR(1) disambiguation of anything still ambiguous), and
// exposes the result as sorted per-state arrays a runtime driver can
// binary-search.
package table

import "github.com/nihei9/lrforge/grammar"

// Kind distinguishes the action variants a state/symbol pair can
// resolve to. Priority breaks ties when more than one kind is proposed
// for the same pair: guard probes outrank everything (they can still
// redirect the parse before any shift/reduce commits), weak-symbol
// reduces outrank ordinary shifts so an ignored token never blocks a
// real production, shift/divert outranks reduce (the classical
// shift/reduce default), and goto/other never compete with anything.
type Kind int

const (
	KindGuard Kind = iota
	KindWeakReduce
	KindShift
	KindDivert
	KindReduce
	KindGoto
	KindOther
	KindIgnore
)

func (k Kind) String() string {
	switch k {
	case KindGuard:
		return "guard"
	case KindWeakReduce:
		return "weak_reduce"
	case KindShift:
		return "shift"
	case KindDivert:
		return "divert"
	case KindReduce:
		return "reduce"
	case KindGoto:
		return "goto"
	case KindOther:
		return "other"
	case KindIgnore:
		return "ignore"
	default:
		return "invalid"
	}
}

// Priority ranks a Kind for conflict resolution: lower wins. Spec.md
// §4.3.4's ordering: guard=0, weak_reduce=1, shift/divert=2, reduce=3,
// goto=4, other=5. Ignore isn't part of that table (rewrite.Ignore adds
// it wherever the state has no shift on the ignored terminal, which can
// be beside a reduce); it's ranked last so it never wins a real
// conflict it happens to get pulled into.
func (k Kind) Priority() int {
	switch k {
	case KindGuard:
		return 0
	case KindWeakReduce:
		return 1
	case KindShift, KindDivert:
		return 2
	case KindReduce:
		return 3
	case KindGoto:
		return 4
	case KindIgnore:
		return 6
	default:
		return 5
	}
}

// Action is one entry of a state's action/goto table: what to do when
// `Symbol` is seen with the dot at this state.
type Action struct {
	Kind   Kind
	Symbol grammar.ItemID // the terminal/guard/nonterminal/EBNF item this action triggers on
	State  int            // target state for Shift/Divert/Goto
	Rule   int            // rule id for Reduce/WeakReduce/Other(accept)
	Accept bool           // true when Kind==KindOther represents a guard or augmented-start accept rather than a plain "other"

	// Fallback is the next-best action for this state/symbol pair when
	// more than one was proposed, chained in priority order. A runtime
	// driver whose guard probe rejects, or whose weak_reduce probe says
	// no, retries Fallback rather than failing outright; nil when
	// nothing else was proposed.
	Fallback *Action
}
