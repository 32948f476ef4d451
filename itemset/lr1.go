package itemset

import "github.com/nihei9/lrforge/grammar"

// LR1Item is an LR0Item plus a lookahead set of terminals (and
// possibly EOI/EOG) that may follow a reduction by this item
// (spec.md §3, "LR(1) item").
type LR1Item struct {
	LR0Item
	Lookahead *Bitset
}

// NewLR1Item builds an LR1Item with an empty lookahead set.
func NewLR1Item(rule grammar.RuleID, dot int) LR1Item {
	return LR1Item{LR0Item: LR0Item{Rule: rule, Dot: dot}, Lookahead: NewBitset()}
}

// KernelSet is a kernel-keyed set of LR1 items: inserting an item whose
// LR0 kernel already exists merges lookaheads into the existing entry
// instead of appending a duplicate (spec.md §4.2, "LR(1) item sets use
// a custom kernel-keyed set").
type KernelSet struct {
	order []LR0Item
	items map[int]*LR1Item
}

// NewKernelSet returns an empty kernel-keyed set.
func NewKernelSet() *KernelSet {
	return &KernelSet{items: map[int]*LR1Item{}}
}

// Insert merges item's lookahead into the existing entry for its LR0
// kernel, or adds item as a new entry. It reports whether anything
// changed: a brand-new kernel, or an enlarged lookahead set.
func (s *KernelSet) Insert(item LR1Item) bool {
	key := item.LR0Item.Key()
	existing, ok := s.items[key]
	if !ok {
		stored := item
		stored.Lookahead = item.Lookahead.Clone()
		s.items[key] = &stored
		s.order = append(s.order, item.LR0Item)
		return true
	}
	return existing.Lookahead.Merge(item.Lookahead)
}

// Items returns the set's entries in insertion order.
func (s *KernelSet) Items() []LR1Item {
	out := make([]LR1Item, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, *s.items[k.Key()])
	}
	return out
}

// Get looks up the entry for an LR0 kernel.
func (s *KernelSet) Get(k LR0Item) (LR1Item, bool) {
	it, ok := s.items[k.Key()]
	if !ok {
		return LR1Item{}, false
	}
	return *it, true
}

// Len returns the number of distinct LR0 kernels held.
func (s *KernelSet) Len() int { return len(s.order) }
