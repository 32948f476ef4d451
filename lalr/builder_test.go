package lalr

import (
	"testing"

	"github.com/nihei9/lrforge/grammar"
	"github.com/nihei9/lrforge/itemset"
)

// tinyGrammar builds S -> a B ; B -> b | c, small enough to hand-verify
// every state and lookahead this package computes.
func tinyGrammar() (g *grammar.Grammar, sN int, rS, rB1, rB2 grammar.RuleID) {
	g = grammar.New()
	sN = g.IDForNonterminal("s")
	bN := g.IDForNonterminal("b")
	a := g.Terminal(0)
	b := g.Terminal(1)
	c := g.Terminal(2)
	sItem := g.Nonterminal(sN)
	bItem := g.Nonterminal(bN)

	rS = g.AddRule(sItem, []grammar.ItemID{a, bItem}, nil)
	rB1 = g.AddRule(bItem, []grammar.ItemID{b}, nil)
	rB2 = g.AddRule(bItem, []grammar.ItemID{c}, nil)
	g.DeclareStart(sN)
	return
}

// stateContaining finds the (unique, for this small grammar) state
// whose LR(1) closure includes item, searching the full Set rather
// than just the kernel since Build's augmented accept wrapper (see
// builder.go) pulls a start rule's own dot-0 item out of the kernel
// and into the closure of the combined initial state.
func stateContaining(m *Machine, item itemset.LR0Item) *State {
	for _, s := range m.States() {
		if _, ok := s.Set.Get(item); ok {
			return s
		}
	}
	return nil
}

func TestBuildProducesExpectedStates(t *testing.T) {
	g, _, rS, rB1, rB2 := tinyGrammar()
	m := Build(g)

	if m.Len() != 6 {
		t.Fatalf("Build produced %d states, want 6 (5 plus the augmented accept wrapper)", m.Len())
	}

	i0 := stateContaining(m, itemset.LR0Item{Rule: rS, Dot: 0})
	if i0 == nil {
		t.Fatal("missing initial state for S -> .a B")
	}
	i1 := stateContaining(m, itemset.LR0Item{Rule: rS, Dot: 1})
	if i1 == nil {
		t.Fatal("missing state for S -> a.B")
	}
	i2 := stateContaining(m, itemset.LR0Item{Rule: rB1, Dot: 1})
	if i2 == nil {
		t.Fatal("missing state for B -> b.")
	}
	i3 := stateContaining(m, itemset.LR0Item{Rule: rB2, Dot: 1})
	if i3 == nil {
		t.Fatal("missing state for B -> c.")
	}
	i4 := stateContaining(m, itemset.LR0Item{Rule: rS, Dot: 2})
	if i4 == nil {
		t.Fatal("missing state for S -> a B.")
	}
}

func TestBuildLookaheadsPropagateToReduceItems(t *testing.T) {
	g, _, _, rB1, rB2 := tinyGrammar()
	m := Build(g)

	i2 := stateContaining(m, itemset.LR0Item{Rule: rB1, Dot: 1})
	la2 := i2.LookaheadOf(itemset.LR0Item{Rule: rB1, Dot: 1})
	if la2.Size() != 1 || !la2.Contains(int(g.EOI())) {
		t.Errorf("B -> b. lookahead = %v, want {EOI}", la2.Items())
	}

	i3 := stateContaining(m, itemset.LR0Item{Rule: rB2, Dot: 1})
	la3 := i3.LookaheadOf(itemset.LR0Item{Rule: rB2, Dot: 1})
	if la3.Size() != 1 || !la3.Contains(int(g.EOI())) {
		t.Errorf("B -> c. lookahead = %v, want {EOI}", la3.Items())
	}
}

func TestBuildAugmentsDeclaredStartSymbol(t *testing.T) {
	g, sN, rS, _, _ := tinyGrammar()
	m := Build(g)

	accept := g.Accept(sN)
	i0 := stateContaining(m, itemset.LR0Item{Rule: rS, Dot: 0})
	acceptState, ok := i0.Next[g.Nonterminal(sN)]
	if !ok {
		t.Fatal("initial state has no goto on S")
	}
	final := m.State(acceptState)
	found := false
	for _, k := range final.Kernel {
		if g.Rule(k.Rule).Reducing() == accept {
			found = true
		}
	}
	if !found {
		t.Fatalf("goto on S should land in the augmented accept state, kernel = %+v", final.Kernel)
	}
}

func TestBuildTransitions(t *testing.T) {
	g, _, rS, _, _ := tinyGrammar()
	m := Build(g)

	i0 := stateContaining(m, itemset.LR0Item{Rule: rS, Dot: 0})
	a := g.Terminal(0)
	i1ID, ok := i0.Next[a]
	if !ok {
		t.Fatal("I0 missing transition on 'a'")
	}
	i1 := m.State(i1ID)
	if _, ok := i1.Set.Get(itemset.LR0Item{Rule: rS, Dot: 1}); !ok {
		t.Fatalf("transition on 'a' landed on unexpected state, kernel = %+v", i1.Kernel)
	}

	b := g.Terminal(1)
	c := g.Terminal(2)
	if _, ok := i1.Next[b]; !ok {
		t.Error("I1 missing transition on 'b'")
	}
	if _, ok := i1.Next[c]; !ok {
		t.Error("I1 missing transition on 'c'")
	}
}
