package table

import (
	"sort"

	"github.com/nihei9/lrforge/grammar"
)

// StateTable is one state's resolved actions, sorted by Symbol so
// Lookup can binary search rather than scan linearly — the same
// trade-off vartan/grammar/parsing_table.go makes by keying its action
// table on sorted symbol arrays.
type StateTable struct {
	Actions []Action
}

// Lookup finds the single resolved action for `symbol` in this state.
func (s StateTable) Lookup(symbol grammar.ItemID) (Action, bool) {
	i := sort.Search(len(s.Actions), func(i int) bool { return s.Actions[i].Symbol >= symbol })
	if i < len(s.Actions) && s.Actions[i].Symbol == symbol {
		return s.Actions[i], true
	}
	return Action{}, false
}

// Table is the complete resolved action/goto table, one StateTable per
// LALR state, plus the sentinel items a runtime driver needs to
// recognize end-of-input/end-of-guard and to substitute a weak
// symbol's strong counterpart.
type Table struct {
	States       []StateTable
	EOI          grammar.ItemID
	EOG          grammar.ItemID
	WeakToStrong map[grammar.ItemID]grammar.ItemID
}

// State resolves a state's table by ID.
func (t *Table) State(id int) StateTable {
	return t.States[id]
}

// Len returns the number of states in the table.
func (t *Table) Len() int { return len(t.States) }
