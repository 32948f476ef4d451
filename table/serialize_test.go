package table_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nihei9/lrforge/lalr"
	"github.com/nihei9/lrforge/table"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	g, a, b, c := tinyGrammar()
	m := lalr.Build(g)
	want, diags := table.Build(g, m, nil)
	require.Empty(t, diags)

	data := table.Encode(want)
	got, err := table.Decode(data)
	require.NoError(t, err)

	require.Equal(t, want.EOI, got.EOI)
	require.Equal(t, want.EOG, got.EOG)
	require.Equal(t, want.Len(), got.Len())

	for i := 0; i < want.Len(); i++ {
		require.Equal(t, want.State(i).Actions, got.State(i).Actions)
	}

	i0 := m.State(m.InitialStates()[0])
	act, ok := got.State(int(i0.ID)).Lookup(a)
	require.True(t, ok)
	require.Equal(t, table.KindShift, act.Kind)
	_, _ = b, c
}

func TestDecodeRejectsTruncatedData(t *testing.T) {
	g, _, _, _ := tinyGrammar()
	m := lalr.Build(g)
	tbl, _ := table.Build(g, m, nil)

	data := table.Encode(tbl)
	_, err := table.Decode(data[:len(data)-1])
	require.Error(t, err)
}
