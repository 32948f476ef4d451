package table_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nihei9/lrforge/grammar"
	"github.com/nihei9/lrforge/lalr"
	"github.com/nihei9/lrforge/table"
)

// tinyGrammar builds S -> a B ; B -> b | c.
func tinyGrammar() (g *grammar.Grammar, a, b, c grammar.ItemID) {
	g = grammar.New()
	sN := g.IDForNonterminal("s")
	bN := g.IDForNonterminal("b")
	a = g.Terminal(0)
	b = g.Terminal(1)
	c = g.Terminal(2)
	sItem := g.Nonterminal(sN)
	bItem := g.Nonterminal(bN)

	g.AddRule(sItem, []grammar.ItemID{a, bItem}, nil)
	g.AddRule(bItem, []grammar.ItemID{b}, nil)
	g.AddRule(bItem, []grammar.ItemID{c}, nil)
	g.DeclareStart(sN)
	return
}

func TestBuildResolvesShifts(t *testing.T) {
	g, a, b, c := tinyGrammar()
	m := lalr.Build(g)

	tbl, diags := table.Build(g, m, nil)
	require.Empty(t, diags)
	require.Equal(t, m.Len(), tbl.Len())

	i0 := m.State(m.InitialStates()[0])
	act, ok := tbl.State(int(i0.ID)).Lookup(a)
	require.True(t, ok)
	require.Equal(t, table.KindShift, act.Kind)

	i1 := m.State(i0.Next[a])
	actB, ok := tbl.State(int(i1.ID)).Lookup(b)
	require.True(t, ok)
	require.Equal(t, table.KindShift, actB.Kind)
	actC, ok := tbl.State(int(i1.ID)).Lookup(c)
	require.True(t, ok)
	require.Equal(t, table.KindShift, actC.Kind)
}

func TestBuildResolvesFinalAccept(t *testing.T) {
	g, a, b, _ := tinyGrammar()
	m := lalr.Build(g)
	tbl, diags := table.Build(g, m, nil)
	require.Empty(t, diags)

	i0 := m.State(m.InitialStates()[0])
	i1 := m.State(i0.Next[a])
	i2 := m.State(i1.Next[b]) // B -> b.
	actReduceB, ok := tbl.State(int(i2.ID)).Lookup(g.EOI())
	require.True(t, ok)
	require.Equal(t, table.KindReduce, actReduceB.Kind)

	bN := g.IDForNonterminal("b")
	i4 := m.State(i1.Next[g.Nonterminal(bN)]) // S -> a B.
	actReduceS, ok := tbl.State(int(i4.ID)).Lookup(g.EOI())
	require.True(t, ok)
	require.Equal(t, table.KindReduce, actReduceS.Kind)

	sN := g.IDForNonterminal("s")
	i5 := m.State(i0.Next[g.Nonterminal(sN)]) // accept -> S.
	actAccept, ok := tbl.State(int(i5.ID)).Lookup(g.EOI())
	require.True(t, ok)
	require.Equal(t, table.KindOther, actAccept.Kind)
	require.True(t, actAccept.Accept)
}

func TestBuildReportsReduceReduceConflict(t *testing.T) {
	// S -> A | B ; A -> x ; B -> x: two distinct rules reduce on the
	// same lookahead with no shift present to disambiguate.
	g := grammar.New()
	sN := g.IDForNonterminal("s")
	aN := g.IDForNonterminal("a")
	bN := g.IDForNonterminal("b")
	x := g.Terminal(0)
	sItem := g.Nonterminal(sN)
	aItem := g.Nonterminal(aN)
	bItem := g.Nonterminal(bN)

	g.AddRule(sItem, []grammar.ItemID{aItem}, nil)
	g.AddRule(sItem, []grammar.ItemID{bItem}, nil)
	g.AddRule(aItem, []grammar.ItemID{x}, nil)
	g.AddRule(bItem, []grammar.ItemID{x}, nil)
	g.DeclareStart(sN)

	m := lalr.Build(g)
	_, diags := table.Build(g, m, nil)
	require.NotEmpty(t, diags)
}

// weakRewriter relabels every reduce by its configured rule, to
// exercise the rewriter pipeline hook without depending on the rewrite
// package (avoiding an import cycle risk in this test).
type weakRewriter struct{ rule int }

func (r weakRewriter) Rewrite(ctx *table.RewriteContext, symbol grammar.ItemID, actions []table.Action) []table.Action {
	out := make([]table.Action, len(actions))
	for i, a := range actions {
		if a.Kind == table.KindReduce && a.Rule == r.rule {
			a.Kind = table.KindWeakReduce
		}
		out[i] = a
	}
	return out
}

func TestBuildRewriterPipelineRuns(t *testing.T) {
	g, a, _, _ := tinyGrammar()
	m := lalr.Build(g)

	tbl, diags := table.Build(g, m, []table.Rewriter{weakRewriter{rule: 0}})
	require.Empty(t, diags)

	i0 := m.State(m.InitialStates()[0])
	act, ok := tbl.State(int(i0.ID)).Lookup(a)
	require.True(t, ok)
	require.Equal(t, table.KindShift, act.Kind)
}
