package lalr

import "github.com/nihei9/lrforge/itemset"

// Origin identifies one kernel item inside a specific state.
type Origin struct {
	State StateID
	Item  itemset.LR0Item
}

// FindLookaheadSource returns the kernel items that can produce
// `terminal` in (state, item)'s lookahead (spec.md §4.3.5), by walking
// the spontaneous and propagation edges ComputeLookaheads recorded,
// backwards from (state, item), following only the edges whose
// contribution actually carries `terminal` down to the items that
// introduced it with no predecessor of their own. Used by the LR(1)
// rewriter's source-state-disjointness test and for conflict
// diagnostics.
func (m *Machine) FindLookaheadSource(state StateID, item itemset.LR0Item, terminal int) []Origin {
	root := m.State(state)
	if root == nil {
		return nil
	}
	if la := root.LookaheadOf(item); la == nil || !la.Contains(terminal) {
		return nil
	}

	visited := map[Origin]bool{}
	var origins []Origin

	var walk func(o Origin)
	walk = func(o Origin) {
		if visited[o] {
			return
		}
		visited[o] = true

		isOrigin := true
		for _, se := range m.spontaneous {
			if se.dstState == o.State && se.dstItem == o.Item && se.terminals.Contains(terminal) {
				isOrigin = false
				walk(Origin{se.srcState, se.srcItem})
			}
		}
		for _, pe := range m.propagation {
			if pe.dstState != o.State || pe.dstItem != o.Item {
				continue
			}
			src := m.State(pe.srcState)
			if la := src.LookaheadOf(pe.srcItem); la != nil && la.Contains(terminal) {
				isOrigin = false
				walk(Origin{pe.srcState, pe.srcItem})
			}
		}
		if isOrigin {
			origins = append(origins, o)
		}
	}
	walk(Origin{state, item})

	return origins
}
