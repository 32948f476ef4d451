package lalr

import (
	"github.com/nihei9/lrforge/grammar"
	"github.com/nihei9/lrforge/itemset"
)

// Build constructs the LALR(1) automaton for every start symbol g
// declares: the LR(0) kernel/transition skeleton (spec.md §4.3.1–2)
// followed by lookahead generation to a fixpoint (spec.md §4.3.3).
//
// Grounded on vartan/grammar/lr0.go's genLR0Automaton worklist, adapted
// to a deduplicating Machine and to item-kind-agnostic transitions so a
// dotted guard or EBNF composite advances a state exactly like a
// terminal or nonterminal would.
func Build(g *grammar.Grammar) *Machine {
	m := newMachine()

	var worklist []*State
	for _, start := range g.StartSymbols() {
		// Seed from the single augmented rule accept -> start rather
		// than from start's own rules: closure expands it into every
		// alternative the same way it would a plain nonterminal
		// reference, but the wrapper gives reducing back to Accept an
		// unambiguous meaning table.Build can use to signal acceptance
		// regardless of whether `start` also appears, and reduces,
		// elsewhere in the grammar.
		acceptRule := g.AddRule(g.Accept(start), []grammar.ItemID{g.Nonterminal(start)}, nil)
		kernel := []itemset.LR0Item{{Rule: acceptRule, Dot: 0}}
		state, isNew := m.getOrCreateState(kernel)
		m.initial = append(m.initial, state.ID)
		if isNew {
			worklist = append(worklist, state)
		}
	}

	for len(worklist) > 0 {
		state := worklist[0]
		worklist = worklist[1:]
		worklist = append(worklist, buildTransitions(g, m, state)...)
	}

	ComputeLookaheads(g, m)

	return m
}

// buildTransitions computes state's full LR(1) closure, stored as
// state.Set (the lookaheads this produces are only partial, since the
// kernel starts with none: spontaneous/propagated lookahead needs
// per-kernel-item attribution and is added to the same sets later by
// ComputeLookaheads) and, from it, the neighbour kernels reached by
// advancing the dot across each dotted item present, registering both
// on `state` and on `m`. A dotted guard item also materializes (or
// reuses) its own dedicated guard-start state alongside the ordinary
// post-guard transition (spec.md §4.3.2). Returns any newly discovered
// states, including fresh guard-start states.
func buildTransitions(g *grammar.Grammar, m *Machine, state *State) []*State {
	set := itemset.NewKernelSet()
	for _, k := range state.Kernel {
		set.Insert(itemset.NewLR1Item(k.Rule, k.Dot))
	}
	itemset.Closure(g, set)
	state.Set = set

	byDotted := map[grammar.ItemID][]itemset.LR0Item{}
	var order []grammar.ItemID
	for _, it := range set.Items() {
		if it.AtEnd(g) {
			continue
		}
		x := it.DottedItem(g)
		if _, seen := byDotted[x]; !seen {
			order = append(order, x)
		}
		byDotted[x] = append(byDotted[x], it.Advance())
	}

	var fresh []*State
	for _, x := range order {
		next, isNew := m.getOrCreateState(byDotted[x])
		state.Next[x] = next.ID
		if isNew {
			fresh = append(fresh, next)
		}

		if it := g.Item(x); it.Kind() == grammar.KindGuard {
			guardState, isNewGuard := m.GuardState(it.Rule())
			if isNewGuard {
				fresh = append(fresh, guardState)
			}
		}
	}
	return fresh
}
