// Package lalr builds the LALR(1) automaton described by spec.md §4.3:
// an LR(0) skeleton of kernel-keyed states and transitions, followed by
// spontaneous/propagated lookahead generation run to a fixpoint.
//
// Grounded on vartan/grammar/lr0.go and lalr1.go (github.com/nihei9/vartan),
// generalized from vartan's flat symbol.Symbol transitions to the
// polymorphic grammar.ItemID (so EBNF composites and guards drive state
// transitions the same way plain terminals and nonterminals do) and
// from vartan's map-of-slices item bookkeeping to the content-addressed
// itemset.KernelSet.
package lalr

import (
	"sort"

	"github.com/nihei9/lrforge/grammar"
	"github.com/nihei9/lrforge/itemset"
)

// StateID numbers a state in construction order. The initial state is
// always 0.
type StateID int

// State is one LALR(1) state: a kernel of LR(0) items (the minimal set
// that uniquely identifies the state) together with the full LR(1)
// closure over that kernel, and the transition reached by crossing each
// item the dot can sit on.
type State struct {
	ID     StateID
	Kernel []itemset.LR0Item
	Set    *itemset.KernelSet
	Next   map[grammar.ItemID]StateID
}

// LookaheadOf returns the terminal lookahead set committed so far for a
// kernel item of this state, or nil if that LR0Item isn't present.
func (s *State) LookaheadOf(k itemset.LR0Item) *itemset.Bitset {
	item, ok := s.Set.Get(k)
	if !ok {
		return nil
	}
	return item.Lookahead
}

// kernelKey canonicalizes a kernel (order-independent) so that two
// states reached by different paths but with the same item set collapse
// into one (spec.md §4.3.2, "states are deduplicated by kernel, not by
// path taken to reach them").
func kernelKey(items []itemset.LR0Item) string {
	keys := make([]int, len(items))
	for i, it := range items {
		keys[i] = it.Key()
	}
	sort.Ints(keys)
	buf := make([]byte, 0, len(keys)*8)
	for _, k := range keys {
		buf = appendInt(buf, k)
		buf = append(buf, ',')
	}
	return string(buf)
}

func appendInt(buf []byte, n int) []byte {
	if n == 0 {
		return append(buf, '0')
	}
	neg := n < 0
	if neg {
		n = -n
	}
	start := len(buf)
	for n > 0 {
		buf = append(buf, byte('0'+n%10))
		n /= 10
	}
	if neg {
		buf = append(buf, '-')
	}
	// reverse the digits just appended
	for i, j := start, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}
