package grammar

import "github.com/cnf/structhash"

// Rule is an ordered sequence of items together with a reducing item
// (spec.md §3, "Rules"). The reducing item is typically a nonterminal,
// but the initialization rule synthesized per start symbol reduces to
// the start symbol's Accept item, and a guard's body rule reduces to a
// guard item — both are used downstream as accept signals (spec.md
// §4.3.4).
//
// Each position in Items may carry an opaque attribute Key, read back
// through KeyAt. A zero Key means "not specified". No rewriter reads
// these keys: rewrite.Attribute resolves conflicts from dispositions
// declared per rule id instead.
type Rule struct {
	id       RuleID
	items    []ItemID
	reducing ItemID
	keys     []int
}

// ID returns the interned identifier of this rule.
func (r Rule) ID() RuleID { return r.id }

// Items returns the rule's right-hand side, in order. May be empty
// (an epsilon production).
func (r Rule) Items() []ItemID { return r.items }

// Len returns len(Items()).
func (r Rule) Len() int { return len(r.items) }

// Reducing returns the item a complete parse of this rule reduces to.
func (r Rule) Reducing() ItemID { return r.reducing }

// KeyAt returns the attribute key at rule position i, or 0
// ("not-specified") if none was set.
func (r Rule) KeyAt(i int) int {
	if i < 0 || i >= len(r.keys) {
		return 0
	}
	return r.keys[i]
}

// IsEmpty reports whether this is an epsilon rule.
func (r Rule) IsEmpty() bool { return len(r.items) == 0 }

func ruleKey(reducing ItemID, items []ItemID) string {
	shape := struct {
		Reducing ItemID
		Items    []ItemID
	}{reducing, items}
	key, err := structhash.Hash(shape, 1)
	if err != nil {
		panic(err)
	}
	return key
}
