package lalr

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/nihei9/lrforge/grammar"
	"github.com/nihei9/lrforge/itemset"
)

// Machine is the complete LALR(1) automaton: every state reached from
// the start kernels, addressable by StateID.
//
// States are kept in an emirpasic/gods treeset ordered by ID (rather
// than a plain slice) so that diagnostics and table serialization walk
// them in a deterministic order regardless of discovery order during
// the worklist pass (grounded on gorgo/lr/tables.go's use of sorted
// containers for its CFSM, github.com/npillmayer/gorgo).
type Machine struct {
	byKernel map[string]StateID
	states   *treeset.Set
	byID     map[StateID]*State
	next     StateID
	initial  []StateID

	guardStates map[grammar.RuleID]StateID

	propagation []edge
	spontaneous []spontaneousEdge
}

// InitialStates returns the states created for each declared start
// symbol's rules, in the order Build encountered them.
func (m *Machine) InitialStates() []StateID {
	return m.initial
}

func newMachine() *Machine {
	return &Machine{
		byKernel:    map[string]StateID{},
		states:      treeset.NewWith(stateIDComparator),
		byID:        map[StateID]*State{},
		guardStates: map[grammar.RuleID]StateID{},
	}
}

func stateIDComparator(a, b interface{}) int {
	return utils.IntComparator(int(a.(StateID)), int(b.(StateID)))
}

// State resolves a state by ID.
func (m *Machine) State(id StateID) *State {
	return m.byID[id]
}

// States returns every state in ID order.
func (m *Machine) States() []*State {
	out := make([]*State, 0, m.states.Size())
	for _, v := range m.states.Values() {
		out = append(out, m.byID[v.(StateID)])
	}
	return out
}

// Len returns the number of states in the automaton.
func (m *Machine) Len() int { return m.states.Size() }

// GuardState returns the dedicated kernel state that begins parsing
// rule's guarded sub-grammar, materializing it the first time this
// guard rule is referenced (spec.md §4.3.2: "memoized by guard-rule id;
// multiple uses of the same guard share it"). The second return value
// reports whether the state is new and so still needs its transitions
// built and its lookaheads computed.
func (m *Machine) GuardState(rule grammar.RuleID) (*State, bool) {
	if id, ok := m.guardStates[rule]; ok {
		return m.byID[id], false
	}
	kernel := []itemset.LR0Item{{Rule: rule, Dot: 0}}
	s, isNew := m.getOrCreateState(kernel)
	m.guardStates[rule] = s.ID
	return s, isNew
}

// GuardStateID looks up the guard-start state already materialized for
// rule, without creating one.
func (m *Machine) GuardStateID(rule grammar.RuleID) (StateID, bool) {
	id, ok := m.guardStates[rule]
	return id, ok
}

// getOrCreateState returns the state for `kernel`, creating it (with an
// empty closure set still to be filled in by the caller) if this exact
// kernel hasn't been seen before. The second return value reports
// whether the state is new.
func (m *Machine) getOrCreateState(kernel []itemset.LR0Item) (*State, bool) {
	key := kernelKey(kernel)
	if id, ok := m.byKernel[key]; ok {
		return m.byID[id], false
	}
	id := m.next
	m.next++
	s := &State{
		ID:     id,
		Kernel: kernel,
		Set:    itemset.NewKernelSet(),
		Next:   map[grammar.ItemID]StateID{},
	}
	m.byKernel[key] = id
	m.byID[id] = s
	m.states.Add(id)
	return s, true
}
