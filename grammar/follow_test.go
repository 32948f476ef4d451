package grammar

import "testing"

func assertFollow(t *testing.T, g *Grammar, n int, wantEOI bool, want ...ItemID) {
	t.Helper()
	flw := g.Follow(n)
	if flw.EOI != wantEOI {
		t.Errorf("EOI mismatch for nonterminal %d: want %v, got %v", n, wantEOI, flw.EOI)
	}
	if len(flw.Terminals) != len(want) {
		t.Fatalf("FOLLOW(%d) size mismatch: want %v, got %v", n, want, flw.Terminals)
	}
	for _, w := range want {
		if !flw.Terminals[w] {
			t.Errorf("FOLLOW(%d) missing %d: got %v", n, w, flw.Terminals)
		}
	}
}

func TestFollowNonEmptyProductions(t *testing.T) {
	g, _, _, _, add, mul, _, rParen, _ := exprGrammar()

	exprN := g.IDForNonterminal("expr")
	termN := g.IDForNonterminal("term")
	factorN := g.IDForNonterminal("factor")

	assertFollow(t, g, exprN, true, add, rParen)
	assertFollow(t, g, termN, true, add, mul, rParen)
	assertFollow(t, g, factorN, true, add, mul, rParen)
}

func TestFollowEmptyStartProduction(t *testing.T) {
	g := New()
	sN := g.IDForNonterminal("s")
	s := g.Nonterminal(sN)
	g.AddRule(s, nil, nil)
	g.DeclareStart(sN)

	assertFollow(t, g, sN, true)
}

func TestFollowEmptyProduction(t *testing.T) {
	g := New()
	sN := g.IDForNonterminal("s")
	fooN := g.IDForNonterminal("foo")
	s := g.Nonterminal(sN)
	foo := g.Nonterminal(fooN)

	g.AddRule(s, []ItemID{foo}, nil)
	g.AddRule(foo, nil, nil)
	g.DeclareStart(sN)

	assertFollow(t, g, sN, true)
	assertFollow(t, g, fooN, true)
}

func TestFollowStartProductionWithEmptyAlternative(t *testing.T) {
	g := New()
	sN := g.IDForNonterminal("s")
	foo := g.Terminal(0)
	s := g.Nonterminal(sN)

	g.AddRule(s, []ItemID{foo}, nil)
	g.AddRule(s, nil, nil)
	g.DeclareStart(sN)

	assertFollow(t, g, sN, true)
}

func TestFollowProductionWithEmptyAlternative(t *testing.T) {
	g := New()
	sN := g.IDForNonterminal("s")
	fooN := g.IDForNonterminal("foo")
	bar := g.Terminal(0)
	s := g.Nonterminal(sN)
	foo := g.Nonterminal(fooN)

	g.AddRule(s, []ItemID{foo}, nil)
	g.AddRule(foo, []ItemID{bar}, nil)
	g.AddRule(foo, nil, nil)
	g.DeclareStart(sN)

	assertFollow(t, g, sN, true)
	assertFollow(t, g, fooN, true)
}
