package runtime_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nihei9/lrforge/grammar"
	"github.com/nihei9/lrforge/lalr"
	"github.com/nihei9/lrforge/runtime"
	"github.com/nihei9/lrforge/table"
)

// buildGuardTable wires S -> [=> x] x y end to end: the guard probes
// that the next token is x without consuming it, then the outer rule
// shifts x and y for real. Grounded on spec.md's S3/S4 guard examples,
// small enough to hand-verify every probe step.
func buildGuardTable(t *testing.T) (*grammar.Grammar, *table.Table, grammar.ItemID, grammar.ItemID, grammar.ItemID) {
	t.Helper()
	g := grammar.New()
	sN := g.IDForNonterminal("s")
	x := g.Terminal(0)
	y := g.Terminal(1)
	sItem := g.Nonterminal(sN)

	guardItem := g.Guard([]grammar.ItemID{x})
	g.AddRule(sItem, []grammar.ItemID{guardItem, x, y}, nil)
	g.DeclareStart(sN)

	m := lalr.Build(g)
	tbl, diags := table.Build(g, m, nil)
	require.Empty(t, diags)
	return g, tbl, x, y, g.EOI()
}

func TestGuardAcceptsWhenInnerRuleMatches(t *testing.T) {
	g, tbl, x, y, eoi := buildGuardTable(t)
	stream := &sliceStream{lexemes: []runtime.Lexeme{
		{Terminal: x, Text: "x"},
		{Terminal: y, Text: "y"},
		{Terminal: eoi, Text: ""},
	}}
	rec := &recordingActions{}
	sess := runtime.NewSession(g, tbl, stream, rec)

	res := sess.Parse()
	require.Equal(t, runtime.Accept, res.Status)
	require.NoError(t, res.Err)
	require.Equal(t, []string{"shift:x", "shift:y", "reduce", "accept"}, rec.events)
}

func TestGuardRejectsWhenInnerRuleDoesNotMatch(t *testing.T) {
	g, tbl, _, y, eoi := buildGuardTable(t)
	stream := &sliceStream{lexemes: []runtime.Lexeme{
		{Terminal: y, Text: "y"},
		{Terminal: eoi, Text: ""},
	}}
	sess := runtime.NewSession(g, tbl, stream, nil)

	res := sess.Parse()
	require.Equal(t, runtime.Reject, res.Status)
	require.Error(t, res.Err)
}
