package rewrite

import (
	"github.com/nihei9/lrforge/grammar"
	"github.com/nihei9/lrforge/table"
)

// Weak implements spec.md §4.4's weak-symbol resolution: a weak
// terminal is recognized by the lexer only when the parser state
// explicitly requests it (typically a contextual keyword shadowing an
// identifier). Given a strong->weak-set mapping derived elsewhere from
// the lexer's DFA accept actions (resolving a weak/strong pair by
// picking the lowest symbol id as strong): (a) an action on the strong
// terminal is copied onto any weak companion that has no action of its
// own in this state; (b) a weak terminal's own reduce becomes
// weak_reduce wherever its strong counterpart also has an action, so
// the strong interpretation gets first refusal.
type Weak struct {
	StrongToWeak map[grammar.ItemID][]grammar.ItemID

	weakToStrong map[grammar.ItemID]grammar.ItemID
}

// NewWeak builds a Weak rewriter from the strong->weak companion
// mapping.
func NewWeak(strongToWeak map[grammar.ItemID][]grammar.ItemID) *Weak {
	w := &Weak{StrongToWeak: strongToWeak, weakToStrong: map[grammar.ItemID]grammar.ItemID{}}
	for strong, weaks := range strongToWeak {
		for _, weak := range weaks {
			w.weakToStrong[weak] = strong
		}
	}
	return w
}

// SeedSymbols reports every weak terminal so table.Build visits it even
// in states where collectRaw proposed no action for it at all: clause
// (a) needs to run there too.
func (r *Weak) SeedSymbols() []grammar.ItemID {
	out := make([]grammar.ItemID, 0, len(r.weakToStrong))
	for weak := range r.weakToStrong {
		out = append(out, weak)
	}
	return out
}

// WeakToStrong exposes the derived reverse mapping for table.Build to
// publish on the resulting Table.
func (r *Weak) WeakToStrong() map[grammar.ItemID]grammar.ItemID {
	return r.weakToStrong
}

func (r *Weak) Rewrite(ctx *table.RewriteContext, symbol grammar.ItemID, actions []table.Action) []table.Action {
	strong, isWeak := r.weakToStrong[symbol]
	if !isWeak {
		return actions
	}
	strongActions := ctx.Raw[strong]

	if len(actions) == 0 {
		if len(strongActions) == 0 {
			return actions
		}
		return append([]table.Action(nil), strongActions...)
	}

	if len(strongActions) == 0 {
		return actions
	}
	out := make([]table.Action, len(actions))
	for i, a := range actions {
		if a.Kind == table.KindReduce {
			a.Kind = table.KindWeakReduce
		}
		out[i] = a
	}
	return out
}
