package rewrite

import (
	"github.com/nihei9/lrforge/grammar"
	"github.com/nihei9/lrforge/itemset"
	"github.com/nihei9/lrforge/lalr"
	"github.com/nihei9/lrforge/table"
)

// LR1 is the pipeline's last resort: whatever reduce/reduce ambiguity
// survives ignore/weak/attribute/precedence rewriting is a case where
// LALR's kernel-merging has conflated two distinct canonical-LR(1)
// states that a non-merging construction would have kept apart.
//
// This rewriter only ever narrows a pure reduce/reduce conflict. A
// canonical, non-merged LR(1) automaton would also refine some
// shift/reduce conflicts LALR merging introduces, but building that
// second automaton purely to re-derive shift decisions the runtime's
// guard/can_reduce mechanism can already settle dynamically isn't
// implemented here — tracked as a known limitation rather than solved
// by approximation, since an approximate answer here is worse than an
// honest unresolved-conflict diagnostic.
type LR1 struct{}

func (LR1) Rewrite(ctx *table.RewriteContext, symbol grammar.ItemID, actions []table.Action) []table.Action {
	allReduce := len(actions) > 1
	for _, a := range actions {
		if a.Kind != table.KindReduce && a.Kind != table.KindWeakReduce {
			allReduce = false
			break
		}
	}
	if !allReduce {
		return actions
	}

	// Prefer a rule whose left-hand side is a declared start
	// nonterminal, if one is present: that reduce alone is kept and the
	// others are dropped, without consulting lookahead provenance.
	for _, a := range actions {
		rule := ctx.Grammar.Rule(grammar.RuleID(a.Rule))
		lhs := ctx.Grammar.Item(rule.Reducing())
		if lhs.Kind() != grammar.KindNonterminal {
			continue
		}
		for _, start := range ctx.Grammar.StartSymbols() {
			if start == lhs.Symbol() {
				return []table.Action{a}
			}
		}
	}

	// Otherwise fall back to find_lookahead_source (spec.md §4.3.5): if
	// the kernel items that can produce `symbol` in each reduction's
	// lookahead trace back to disjoint sets of source states, a
	// non-merged automaton would never have conflated these reductions
	// in the first place, so it's safe to keep one and let the
	// runtime's dynamic can_reduce probe pick between them by actual
	// lookahead continuation.
	sourceStates := make([]map[lalr.StateID]bool, len(actions))
	for i, a := range actions {
		item, ok := reduceKernelItem(ctx, grammar.RuleID(a.Rule))
		if !ok {
			return actions
		}
		states := map[lalr.StateID]bool{}
		for _, origin := range ctx.Machine.FindLookaheadSource(ctx.State.ID, item, int(symbol)) {
			states[origin.State] = true
		}
		sourceStates[i] = states
	}
	if !pairwiseDisjoint(sourceStates) {
		return actions
	}

	out := make([]table.Action, len(actions))
	out[0] = actions[0]
	for i := 1; i < len(actions); i++ {
		a := actions[i]
		a.Kind = table.KindWeakReduce
		out[i] = a
	}
	return out
}

// reduceKernelItem finds the at-end kernel item in ctx.State's closure
// that reduces by rule, so its lookahead provenance can be walked.
func reduceKernelItem(ctx *table.RewriteContext, rule grammar.RuleID) (itemset.LR0Item, bool) {
	for _, it := range ctx.State.Set.Items() {
		if it.Rule == rule && it.AtEnd(ctx.Grammar) {
			return it.LR0Item, true
		}
	}
	return itemset.LR0Item{}, false
}

func pairwiseDisjoint(sets []map[lalr.StateID]bool) bool {
	owner := map[lalr.StateID]int{}
	for i, set := range sets {
		for st := range set {
			if o, ok := owner[st]; ok && o != i {
				return false
			}
			owner[st] = i
		}
	}
	return true
}
