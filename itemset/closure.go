package itemset

import "github.com/nihei9/lrforge/grammar"

// Closure expands a kernel-keyed LR(1) set in place to its full LR(1)
// closure (spec.md §4.1, "Closure contract (per item kind)"): for every
// item whose dot sits before a nonterminal or EBNF composite, the
// sub-rules reachable from that position are added at offset 0 with a
// lookahead derived from FIRST of whatever follows the dot in the source
// item (substituting the source item's own lookahead when that FIRST is
// nullable). A dotted guard closes over nothing here: its inner rule
// lives in a dedicated state of its own (spec.md §4.3.2), built by
// lalr.Machine.GuardState, not inlined into this one.
//
// Worklist-driven: inserting an item can itself introduce a new dotted
// position that needs closing over, so the loop keeps draining newly
// added kernels until none remain. Grounded on
// vartan/grammar/lalr1.go's genLALR1Automaton closure step, generalized
// from a flat symbol lookup to dispatch over Kind.
func Closure(g *grammar.Grammar, set *KernelSet) {
	worklist := append([]LR0Item(nil), set.order...)
	for len(worklist) > 0 {
		item := worklist[0]
		worklist = worklist[1:]

		entry, ok := set.Get(item)
		if !ok {
			continue
		}
		if item.AtEnd(g) {
			continue
		}
		dotted := item.DottedItem(g)
		it := g.Item(dotted)

		rest := firstAfterDot(g, item)

		added := closeOver(g, it, entry.Lookahead, rest)
		for _, lr1 := range added {
			if set.Insert(lr1) {
				worklist = append(worklist, lr1.LR0Item)
			}
		}
	}
}

// closeOver returns the LR(1) items a dotted position on `it` directly
// contributes to a state's closure, one per sub-rule reachable from it.
// `sourceLookahead` is the lookahead of the item whose dot sits on `it`;
// `rest` is FIRST of the symbols following that dot.
func closeOver(g *grammar.Grammar, it grammar.Item, sourceLookahead *Bitset, rest *grammar.FirstSet) []LR1Item {
	la := lookaheadFromFirst(rest, sourceLookahead)

	switch it.Kind() {
	case grammar.KindNonterminal:
		var out []LR1Item
		for _, rid := range g.RulesForNonterminal(it.Symbol()) {
			out = append(out, newClosureItem(rid, la))
		}
		return out
	case grammar.KindEBNFOptional, grammar.KindEBNFRepeatOneOrMore, grammar.KindEBNFRepeatZeroOrMore, grammar.KindEBNFAlternative:
		out := make([]LR1Item, 0, len(it.Alternatives()))
		for _, rid := range it.Alternatives() {
			out = append(out, newClosureItem(rid, la))
		}
		return out
	default:
		// Terminal, empty, EOI, EOG: nothing to close over, the dot can
		// only shift or the item is already at-end.
		return nil
	}
}

func newClosureItem(rule grammar.RuleID, la *Bitset) LR1Item {
	item := NewLR1Item(rule, 0)
	item.Lookahead.Merge(la)
	return item
}

// lookaheadFromFirst builds the lookahead set a newly closed item should
// carry: FIRST of whatever follows the dot in the source item, with the
// source item's own lookahead substituted in wherever that FIRST allows
// epsilon (spec.md §4.1, "substituting the source lookahead on epsilon").
func lookaheadFromFirst(rest *grammar.FirstSet, source *Bitset) *Bitset {
	out := NewBitset()
	for id := range rest.Terminals {
		out.Insert(int(id))
	}
	if rest.Epsilon {
		out.Merge(source)
	}
	return out
}

// firstAfterDot computes FIRST of the symbols following item's dotted
// position within its own rule: the same sequence-FIRST grammar.Grammar
// computes internally for closure, addressed here through an LR0Item
// instead of a raw item slice since Grammar doesn't expose that helper
// directly.
func firstAfterDot(g *grammar.Grammar, item LR0Item) *grammar.FirstSet {
	rule := g.Rule(item.Rule)
	items := rule.Items()
	out := &grammar.FirstSet{Terminals: map[grammar.ItemID]bool{}}
	for _, id := range items[item.Dot+1:] {
		part := g.First(id)
		for t := range part.Terminals {
			out.Terminals[t] = true
		}
		if !part.Epsilon {
			return out
		}
	}
	out.Epsilon = true
	return out
}
