package rewrite

import (
	"github.com/nihei9/lrforge/grammar"
	"github.com/nihei9/lrforge/table"
)

// Disposition is a grammar author's explicit instruction for resolving
// a shift/reduce conflict that names a particular rule.
type Disposition int

const (
	DispositionNone Disposition = iota
	DispositionPreferShift
	DispositionPreferReduce
)

// Attribute resolves a shift/reduce conflict using a per-rule
// disposition declared directly on the reducing rule.
//
// Known gap: a disposition is looked up by the rule's own ID only. A
// rule reached solely through one branch of an ebnf_alternative doesn't
// inherit a disposition declared on the alternative item that owns it —
// attributes don't propagate through alternatives, so a grammar that
// wants a disposition on every branch must declare it on each rule
// individually.
type Attribute struct {
	Rules map[int]Disposition
}

func (r *Attribute) Rewrite(ctx *table.RewriteContext, symbol grammar.ItemID, actions []table.Action) []table.Action {
	if len(actions) < 2 {
		return actions
	}
	var shift, reduce []table.Action
	for _, a := range actions {
		switch a.Kind {
		case table.KindShift, table.KindDivert, table.KindGuard:
			shift = append(shift, a)
		case table.KindReduce, table.KindWeakReduce:
			reduce = append(reduce, a)
		default:
			return actions
		}
	}
	if len(shift) == 0 || len(reduce) == 0 {
		return actions
	}
	for _, red := range reduce {
		switch r.Rules[red.Rule] {
		case DispositionPreferReduce:
			return []table.Action{red}
		case DispositionPreferShift:
			if len(shift) == 1 {
				return shift
			}
		}
	}
	return actions
}
