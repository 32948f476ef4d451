package table

import (
	"fmt"
	"sort"

	"github.com/nihei9/lrforge/grammar"
	"github.com/nihei9/lrforge/internal/diag"
	"github.com/nihei9/lrforge/lalr"
)

// RewriteContext gives a Rewriter the grammar and automaton context it
// needs to decide how to narrow a state/symbol's proposed actions down
// to one. Raw is the full pre-rewrite snapshot of every symbol's
// proposed actions in this state, for rewriters (e.g. the weak-symbol
// rewriter) whose decision for one symbol depends on what was proposed
// for another.
type RewriteContext struct {
	Grammar *grammar.Grammar
	Machine *lalr.Machine
	State   *lalr.State
	Raw     map[grammar.ItemID][]Action
}

// Rewriter inspects the actions currently proposed for `symbol` in the
// state ctx.State and returns the actions that should remain. A
// Rewriter that sees nothing to do should return `actions` unchanged.
// The pipeline runs in registration order and feeds each rewriter's
// output to the next, so later rewriters (e.g. the LR(1) disambiguator)
// see whatever earlier ones (ignored/weak symbols, conflict attributes,
// precedence) already resolved.
type Rewriter interface {
	Rewrite(ctx *RewriteContext, symbol grammar.ItemID, actions []Action) []Action
}

// SymbolSeeder lets a Rewriter declare symbols it cares about even in a
// state where collectRaw proposed nothing at all for them (e.g. a
// declared-ignored terminal the state has no shift for): Build seeds an
// empty slot for each one before the rewrite pass runs, so the
// Rewriter still gets a Rewrite call for it.
type SymbolSeeder interface {
	SeedSymbols() []grammar.ItemID
}

// WeakMapper lets the weak-symbol Rewriter publish the strong->weak
// terminal mapping it derived (spec.md §4.4, "Weak symbols") so Build
// can record it on the resulting Table for a runtime driver to consult.
type WeakMapper interface {
	WeakToStrong() map[grammar.ItemID]grammar.ItemID
}

// Build synthesizes the raw action/goto table from m (spec.md §4.3.4),
// runs `rewriters` over every state/symbol pair (including the empty
// slots seeded for SymbolSeeder symbols), and returns the resolved
// table plus any conflict that survived the whole pipeline unresolved.
//
// Grounded on vartan/grammar/parsing_table_builder.go's genActionTable/
// genGoToTable, generalized from vartan's single baked-in resolution
// rule (shift wins, first reduce wins) to a pluggable rewriter chain.
func Build(g *grammar.Grammar, m *lalr.Machine, rewriters []Rewriter) (*Table, []*diag.Diagnostic) {
	t := &Table{EOI: g.EOI(), EOG: g.EOG(), WeakToStrong: map[grammar.ItemID]grammar.ItemID{}}

	var seeds []grammar.ItemID
	for _, rw := range rewriters {
		if ss, ok := rw.(SymbolSeeder); ok {
			seeds = append(seeds, ss.SeedSymbols()...)
		}
		if wm, ok := rw.(WeakMapper); ok {
			for weak, strong := range wm.WeakToStrong() {
				t.WeakToStrong[weak] = strong
			}
		}
	}

	states := m.States()
	t.States = make([]StateTable, len(states))

	var diags []*diag.Diagnostic
	for _, s := range states {
		raw := collectRaw(g, m, s)
		for _, sym := range seeds {
			if _, ok := raw[sym]; !ok {
				raw[sym] = nil
			}
		}

		ctx := &RewriteContext{Grammar: g, Machine: m, State: s, Raw: raw}
		var resolved []Action
		for symbol, actions := range raw {
			actions = dedupe(actions)
			for _, rw := range rewriters {
				actions = rw.Rewrite(ctx, symbol, actions)
			}
			switch {
			case len(actions) == 0:
			case len(actions) == 1:
				resolved = append(resolved, actions[0])
			default:
				resolved = append(resolved, pickByPriority(actions))
				diags = append(diags, conflictDiagnostic(g, int(s.ID), symbol, actions))
			}
		}
		sort.Slice(resolved, func(i, j int) bool { return resolved[i].Symbol < resolved[j].Symbol })
		t.States[s.ID] = StateTable{Actions: resolved}
	}

	return t, diags
}

// collectRaw synthesizes every action a state's closure and transitions
// propose before any rewriting: a shift per dotted real terminal; for a
// dotted guard, both a zero-width divert keyed on the guard item's own
// id (advancing past the placeholder in the outer rule once a probe
// matches) and a guard probe keyed on every terminal in FIRST of the
// guard's inner rule, targeting the guard's dedicated start state
// (spec.md §4.3.4); a reduce (or accept, for a guard's own completion
// or the augmented start-symbol wrapper lalr.Build seeds every initial
// state from) per lookahead terminal of each at-end item; and a goto
// per transition on a nonterminal or EBNF composite.
func collectRaw(g *grammar.Grammar, m *lalr.Machine, s *lalr.State) map[grammar.ItemID][]Action {
	raw := map[grammar.ItemID][]Action{}

	for _, item := range s.Set.Items() {
		if !item.AtEnd(g) {
			x := item.DottedItem(g)
			it := g.Item(x)
			if !it.IsTerminal() {
				continue
			}
			target, ok := s.Next[x]
			if !ok {
				continue
			}
			if it.Kind() != grammar.KindGuard {
				raw[x] = append(raw[x], Action{Kind: KindShift, Symbol: x, State: int(target)})
				continue
			}
			raw[x] = append(raw[x], Action{Kind: KindDivert, Symbol: x, State: int(target)})
			guardRule := it.Rule()
			if guardState, ok := m.GuardStateID(guardRule); ok {
				for t := range g.First(x).Terminals {
					raw[t] = append(raw[t], Action{Kind: KindGuard, Symbol: t, State: int(guardState), Rule: int(guardRule)})
				}
			}
			continue
		}

		rule := g.Rule(item.Rule)
		reducingKind := g.Item(rule.Reducing()).Kind()
		accept := reducingKind == grammar.KindAccept || reducingKind == grammar.KindGuard
		item.Lookahead.Each(func(la int) {
			sym := grammar.ItemID(la)
			if accept {
				raw[sym] = append(raw[sym], Action{Kind: KindOther, Symbol: sym, Rule: int(item.Rule), Accept: true})
			} else {
				raw[sym] = append(raw[sym], Action{Kind: KindReduce, Symbol: sym, Rule: int(item.Rule)})
			}
		})
	}

	for x, target := range s.Next {
		it := g.Item(x)
		if it.IsTerminal() {
			continue
		}
		raw[x] = append(raw[x], Action{Kind: KindGoto, Symbol: x, State: int(target)})
	}

	return raw
}

func dedupe(actions []Action) []Action {
	out := make([]Action, 0, len(actions))
	for _, a := range actions {
		dup := false
		for _, b := range out {
			if a == b {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, a)
		}
	}
	return out
}

// pickByPriority resolves multiple proposed actions down to one,
// chaining the rest onto Fallback in priority order so a runtime guard
// probe that rejects can retry the next-best action instead of failing
// the parse outright.
func pickByPriority(actions []Action) Action {
	sorted := append([]Action(nil), actions...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Kind.Priority() < sorted[j].Kind.Priority() })
	for i := len(sorted) - 1; i > 0; i-- {
		next := sorted[i]
		sorted[i-1].Fallback = &next
	}
	return sorted[0]
}

func conflictDiagnostic(g *grammar.Grammar, state int, symbol grammar.ItemID, actions []Action) *diag.Diagnostic {
	name := symbolName(g, symbol)
	hasGuard, hasShift, hasReduce := false, false, false
	for _, a := range actions {
		switch a.Kind {
		case KindGuard:
			hasGuard = true
		case KindShift, KindDivert:
			hasShift = true
		case KindReduce, KindWeakReduce:
			hasReduce = true
		}
	}
	switch {
	case hasGuard && len(actions) > 1:
		return diag.ClashingGuards(state, name)
	case hasShift && hasReduce:
		return diag.ShiftReduceConflict(state, name)
	default:
		return diag.ReduceReduceConflict(state, name)
	}
}

func symbolName(g *grammar.Grammar, id grammar.ItemID) string {
	it := g.Item(id)
	if it.Kind() == grammar.KindNonterminal {
		if name, ok := g.NonterminalName(it.Symbol()); ok {
			return name
		}
	}
	return fmt.Sprintf("%s#%d", it.Kind(), it.Symbol())
}
