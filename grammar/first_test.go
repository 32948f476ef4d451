package grammar

import "testing"

// exprGrammar builds the classic left-recursive expr/term/factor
// grammar used throughout these tests:
//
//	expr   : expr add term | term
//	term   : term mul factor | factor
//	factor : l_paren expr r_paren | id
func exprGrammar() (g *Grammar, expr, term, factor, add, mul, lParen, rParen, id ItemID) {
	g = New()
	exprN := g.IDForNonterminal("expr")
	termN := g.IDForNonterminal("term")
	factorN := g.IDForNonterminal("factor")

	add = g.Terminal(0)
	mul = g.Terminal(1)
	lParen = g.Terminal(2)
	rParen = g.Terminal(3)
	id = g.Terminal(4)

	expr = g.Nonterminal(exprN)
	term = g.Nonterminal(termN)
	factor = g.Nonterminal(factorN)

	g.AddRule(expr, []ItemID{expr, add, term}, nil)
	g.AddRule(expr, []ItemID{term}, nil)
	g.AddRule(term, []ItemID{term, mul, factor}, nil)
	g.AddRule(term, []ItemID{factor}, nil)
	g.AddRule(factor, []ItemID{lParen, expr, rParen}, nil)
	g.AddRule(factor, []ItemID{id}, nil)
	g.DeclareStart(exprN)
	return
}

func assertFirst(t *testing.T, g *Grammar, id ItemID, wantEpsilon bool, want ...ItemID) {
	t.Helper()
	fst := g.First(id)
	if fst.Epsilon != wantEpsilon {
		t.Errorf("epsilon mismatch for item %d: want %v, got %v", id, wantEpsilon, fst.Epsilon)
	}
	if len(fst.Terminals) != len(want) {
		t.Fatalf("FIRST(%d) size mismatch: want %v, got %v", id, want, fst.Terminals)
	}
	for _, w := range want {
		if !fst.Terminals[w] {
			t.Errorf("FIRST(%d) missing %d: got %v", id, w, fst.Terminals)
		}
	}
}

func TestFirstNonEmptyProductions(t *testing.T) {
	g, expr, term, factor, _, _, lParen, _, id := exprGrammar()

	assertFirst(t, g, expr, false, lParen, id)
	assertFirst(t, g, term, false, lParen, id)
	assertFirst(t, g, factor, false, lParen, id)
}

func TestFirstEmptyStartProduction(t *testing.T) {
	g := New()
	sN := g.IDForNonterminal("s")
	s := g.Nonterminal(sN)
	g.AddRule(s, nil, nil)
	g.DeclareStart(sN)

	assertFirst(t, g, s, true)
}

func TestFirstEmptyProduction(t *testing.T) {
	g := New()
	sN := g.IDForNonterminal("s")
	fooN := g.IDForNonterminal("foo")
	bar := g.Terminal(0)

	s := g.Nonterminal(sN)
	foo := g.Nonterminal(fooN)

	g.AddRule(s, []ItemID{foo, bar}, nil)
	g.AddRule(foo, nil, nil)
	g.DeclareStart(sN)

	assertFirst(t, g, s, false, bar)
	assertFirst(t, g, foo, true)
}

func TestFirstStartProductionWithEmptyAlternative(t *testing.T) {
	g := New()
	sN := g.IDForNonterminal("s")
	foo := g.Terminal(0)
	s := g.Nonterminal(sN)

	g.AddRule(s, []ItemID{foo}, nil)
	g.AddRule(s, nil, nil)
	g.DeclareStart(sN)

	assertFirst(t, g, s, true, foo)
}

func TestFirstProductionWithEmptyAlternative(t *testing.T) {
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

	assertFirst(t, g, s, true, bar)
	assertFirst(t, g, foo, true, bar)
}
