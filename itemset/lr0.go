package itemset

import "github.com/nihei9/lrforge/grammar"

// LR0Item is a (rule, dot-offset) pair, 0 <= offset <= rule.Len()
// (spec.md §3). It is at-end when offset == rule.Len().
type LR0Item struct {
	Rule grammar.RuleID
	Dot  int
}

// AtEnd reports whether the dot has advanced past every item of the
// rule.
func (i LR0Item) AtEnd(g *grammar.Grammar) bool {
	return i.Dot >= g.Rule(i.Rule).Len()
}

// DottedItem returns the item ID the dot currently sits on, or
// grammar.NilItem at end.
func (i LR0Item) DottedItem(g *grammar.Grammar) grammar.ItemID {
	rule := g.Rule(i.Rule)
	if i.Dot >= rule.Len() {
		return grammar.NilItem
	}
	return rule.Items()[i.Dot]
}

// Advance returns the LR0Item with the dot moved one position to the
// right. Callers are expected to check AtEnd first.
func (i LR0Item) Advance() LR0Item {
	return LR0Item{Rule: i.Rule, Dot: i.Dot + 1}
}

// Key packs (rule, dot) into a single int suitable for bitset/map
// indexing local to one grammar; distinct grammars may reuse the same
// key space, so keys should never be persisted across grammars. Rule
// IDs and dot offsets are both small relative to 1<<20, so a 20-bit
// shift leaves ample headroom without needing to know the longest
// rule's length up front.
func (i LR0Item) Key() int {
	return int(i.Rule)<<20 | i.Dot
}
