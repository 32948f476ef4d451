package rewrite

import (
	"github.com/nihei9/lrforge/grammar"
	"github.com/nihei9/lrforge/table"
)

// Ignore implements spec.md §4.4's ignored-symbol resolution: a
// declared ignored terminal (whitespace, comments) gets an `ignore`
// action wherever the state doesn't already shift it, and any reduce
// it would otherwise trigger becomes weak_reduce so it never outranks
// genuine content.
type Ignore struct {
	IgnoredTerminals map[grammar.ItemID]bool
}

// NewIgnore builds an Ignore rewriter for the given ignored terminal
// item IDs.
func NewIgnore(terminals []grammar.ItemID) *Ignore {
	m := make(map[grammar.ItemID]bool, len(terminals))
	for _, t := range terminals {
		m[t] = true
	}
	return &Ignore{IgnoredTerminals: m}
}

// SeedSymbols reports every declared ignored terminal so table.Build
// visits it even in states where collectRaw proposed no action for it
// at all — that's exactly where the new `ignore` action belongs.
func (r *Ignore) SeedSymbols() []grammar.ItemID {
	out := make([]grammar.ItemID, 0, len(r.IgnoredTerminals))
	for t := range r.IgnoredTerminals {
		out = append(out, t)
	}
	return out
}

func (r *Ignore) Rewrite(ctx *table.RewriteContext, symbol grammar.ItemID, actions []table.Action) []table.Action {
	if !r.IgnoredTerminals[symbol] {
		return actions
	}

	hasShift := false
	out := make([]table.Action, len(actions))
	for i, a := range actions {
		if a.Kind == table.KindShift {
			hasShift = true
		}
		if a.Kind == table.KindReduce {
			a.Kind = table.KindWeakReduce
		}
		out[i] = a
	}
	if !hasShift {
		out = append(out, table.Action{Kind: table.KindIgnore, Symbol: symbol})
	}
	return out
}
