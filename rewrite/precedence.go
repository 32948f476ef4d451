package rewrite

import (
	"github.com/nihei9/lrforge/grammar"
	"github.com/nihei9/lrforge/table"
)

// Associativity resolves a same-level precedence tie.
type Associativity int

const (
	AssocNone Associativity = iota
	AssocLeft
	AssocRight
)

// PrecedenceLevels is the abstract hook a grammar author plugs in to
// declare operator precedence/associativity: implementations typically
// wrap a table built from `%left`/`%right`-style directives parsed out
// of a grammar source file, which is outside this package's scope.
type PrecedenceLevels interface {
	TerminalLevel(symbol grammar.ItemID) (level int, assoc Associativity, ok bool)
	RuleLevel(rule int) (level int, ok bool)
}

// Precedence resolves a shift/reduce conflict by comparing the shifted
// terminal's declared level against the reducing rule's declared level,
// falling back to associativity on a tie.
type Precedence struct {
	Levels PrecedenceLevels
}

func (r *Precedence) Rewrite(ctx *table.RewriteContext, symbol grammar.ItemID, actions []table.Action) []table.Action {
	if r.Levels == nil || len(actions) != 2 {
		return actions
	}
	var shift, reduce *table.Action
	for i := range actions {
		switch actions[i].Kind {
		case table.KindShift, table.KindDivert:
			shift = &actions[i]
		case table.KindReduce:
			reduce = &actions[i]
		}
	}
	if shift == nil || reduce == nil {
		return actions
	}
	shiftLevel, assoc, ok := r.Levels.TerminalLevel(symbol)
	if !ok {
		return actions
	}
	ruleLevel, ok := r.Levels.RuleLevel(reduce.Rule)
	if !ok {
		return actions
	}
	switch {
	case shiftLevel > ruleLevel:
		return []table.Action{*shift}
	case shiftLevel < ruleLevel:
		return []table.Action{*reduce}
	case assoc == AssocLeft:
		return []table.Action{*reduce}
	case assoc == AssocRight:
		return []table.Action{*shift}
	default:
		return actions
	}
}
