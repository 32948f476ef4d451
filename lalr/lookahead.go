package lalr

import (
	"github.com/nihei9/lrforge/grammar"
	"github.com/nihei9/lrforge/itemset"
)

// edge records that dstItem's lookahead must always be a superset of
// srcItem's: whatever terminal later gets added to srcItem propagates
// to dstItem too.
type edge struct {
	srcState StateID
	srcItem  itemset.LR0Item
	dstState StateID
	dstItem  itemset.LR0Item
}

// spontaneousEdge records that dstItem received `terminals` as
// lookahead directly from srcItem's closure step, independent of
// whatever srcItem's own lookahead eventually resolves to. Kept
// alongside the propagation edges so FindLookaheadSource (spec.md
// §4.3.5) can walk both kinds of provenance backwards.
type spontaneousEdge struct {
	srcState  StateID
	srcItem   itemset.LR0Item
	dstState  StateID
	dstItem   itemset.LR0Item
	terminals *itemset.Bitset
}

// ComputeLookaheads runs spontaneous lookahead generation over every
// kernel item of every state, then propagates along the resulting
// edges to a fixpoint (spec.md §4.3.3). The classical technique: close
// each kernel item alone with a dummy marker standing in for "whatever
// this item's lookahead turns out to be"; wherever closure substitutes
// that marker in for an epsilon tail is a propagation edge, and
// wherever closure contributes a genuine FIRST-derived terminal
// instead is a spontaneous lookahead, independent of what the source
// item's lookahead ever resolves to.
//
// Grounded on vartan/grammar/lalr1.go's genLALR1Automaton/
// genLALR1Closure/propagateLookAhead, generalized from vartan's
// explicit propagation-flag bookkeeping to reusing itemset.Closure with
// a marker bit that can't collide with any real item ID.
func ComputeLookaheads(g *grammar.Grammar, m *Machine) {
	marker := g.ItemCount()

	for _, id := range m.InitialStates() {
		s := m.State(id)
		if len(s.Kernel) != 1 {
			continue
		}
		if dstLA := s.LookaheadOf(s.Kernel[0]); dstLA != nil {
			dstLA.Insert(int(g.EOI()))
		}
	}

	// Every guard-start state begins parsing with lookahead {EOG}
	// (spec.md §4.3.2), the same singleton-kernel seeding the augmented
	// accept states get for {EOI} above.
	for _, id := range m.guardStates {
		s := m.State(id)
		if len(s.Kernel) != 1 {
			continue
		}
		if dstLA := s.LookaheadOf(s.Kernel[0]); dstLA != nil {
			dstLA.Insert(int(g.EOG()))
		}
	}

	var edges []edge
	var spont []spontaneousEdge
	for _, s := range m.States() {
		for _, k := range s.Kernel {
			e, sp := spontaneousAndPropagate(g, m, s, k, marker)
			edges = append(edges, e...)
			spont = append(spont, sp...)
		}
	}

	for {
		changed := false
		for _, e := range edges {
			src := m.State(e.srcState)
			dst := m.State(e.dstState)
			srcLA := src.LookaheadOf(e.srcItem)
			dstLA := dst.LookaheadOf(e.dstItem)
			if srcLA == nil || dstLA == nil {
				continue
			}
			if dstLA.Merge(srcLA) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	m.propagation = edges
	m.spontaneous = spont
}

// spontaneousAndPropagate closes k alone, seeded with only the dummy
// marker, and turns the result into immediate spontaneous contributions
// (written straight into the relevant state's lookahead sets, and
// recorded for FindLookaheadSource's provenance walk) plus propagation
// edges for the fixpoint pass above.
func spontaneousAndPropagate(g *grammar.Grammar, m *Machine, s *State, k itemset.LR0Item, marker int) ([]edge, []spontaneousEdge) {
	seed := itemset.NewKernelSet()
	li := itemset.NewLR1Item(k.Rule, k.Dot)
	li.Lookahead.Insert(marker)
	seed.Insert(li)
	itemset.Closure(g, seed)

	var edges []edge
	var spont []spontaneousEdge
	for _, b := range seed.Items() {
		propagates := b.Lookahead.Contains(marker)
		real := b.Lookahead.Clone()
		real.Erase(marker)

		if b.AtEnd(g) {
			if real.Size() > 0 {
				if dstLA := s.LookaheadOf(b.LR0Item); dstLA != nil {
					dstLA.Merge(real)
					spont = append(spont, spontaneousEdge{s.ID, k, s.ID, b.LR0Item, real})
				}
			}
			if propagates {
				edges = append(edges, edge{s.ID, k, s.ID, b.LR0Item})
			}
			continue
		}

		x := b.DottedItem(g)
		nextID, ok := s.Next[x]
		if !ok {
			continue
		}
		target := b.LR0Item.Advance()
		if real.Size() > 0 {
			if dstLA := m.State(nextID).LookaheadOf(target); dstLA != nil {
				dstLA.Merge(real)
				spont = append(spont, spontaneousEdge{s.ID, k, nextID, target, real})
			}
		}
		if propagates {
			edges = append(edges, edge{s.ID, k, nextID, target})
		}
	}
	return edges, spont
}
