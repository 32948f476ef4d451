package grammar

import (
	"fmt"

	"github.com/cnf/structhash"
)

// Kind distinguishes the polymorphic item variants described by the
// grammar model: plain terminals and nonterminals, the two sentinels
// (end-of-input, end-of-guard), epsilon, guards, and the four EBNF
// composite constructs.
type Kind int

const (
	KindInvalid Kind = iota
	KindTerminal
	KindNonterminal
	KindEmpty
	KindEOI
	KindEOG
	KindGuard
	KindAccept
	KindEBNFOptional
	KindEBNFRepeatOneOrMore
	KindEBNFRepeatZeroOrMore
	KindEBNFAlternative
)

func (k Kind) String() string {
	switch k {
	case KindTerminal:
		return "terminal"
	case KindNonterminal:
		return "nonterminal"
	case KindEmpty:
		return "empty"
	case KindEOI:
		return "eoi"
	case KindEOG:
		return "eog"
	case KindGuard:
		return "guard"
	case KindAccept:
		return "accept"
	case KindEBNFOptional:
		return "ebnf_optional"
	case KindEBNFRepeatOneOrMore:
		return "ebnf_repeat_one_or_more"
	case KindEBNFRepeatZeroOrMore:
		return "ebnf_repeat_zero_or_more"
	case KindEBNFAlternative:
		return "ebnf_alternative"
	default:
		return "invalid"
	}
}

// ItemID is the grammar-assigned integer identifier of an interned item.
// id <-> Item is a bijection: identical items (same kind, same payload)
// always resolve to the same ID.
type ItemID int

// NilItem is never a valid interned item; it is returned by lookups that
// fail.
const NilItem ItemID = -1

// RuleID is the grammar-assigned integer identifier of an interned rule.
type RuleID int

// NilRule is never a valid interned rule.
const NilRule RuleID = -1

// Item is a polymorphic grammar symbol. Exactly the fields relevant to
// its Kind are meaningful; the rest are zero. A terminal/nonterminal
// carries a Symbol number local to its namespace (terminals and
// nonterminals are numbered independently). A guard owns a single
// sub-rule (Sub); each of the four EBNF composites owns one
// self-reducing sub-rule per branch (Alts).
type Item struct {
	id     ItemID
	kind   Kind
	symbol int
	sub    RuleID
	alts   []RuleID
}

// ID returns the interned identifier of this item.
func (it Item) ID() ItemID { return it.id }

// Kind returns the item's variant.
func (it Item) Kind() Kind { return it.kind }

// Symbol returns the terminal or nonterminal number this item carries.
// It is meaningless for any other Kind.
func (it Item) Symbol() int { return it.symbol }

// Rule returns the sub-rule owned by a guard item. It is NilRule for
// any other Kind; the EBNF composites keep theirs in Alternatives.
func (it Item) Rule() RuleID { return it.sub }

// Alternatives returns the sub-rules owned by an EBNF composite item
// (optional, either repeat, or alternative).
func (it Item) Alternatives() []RuleID { return it.alts }

// IsTerminal reports whether dotting on this item in an LR item means
// the parser must shift (or probe a guard).
func (it Item) IsTerminal() bool {
	return it.kind == KindTerminal || it.kind == KindGuard
}

// GeneratesTransition reports whether an item on which the dot sits
// causes a state transition when the dot advances past it. The only
// item that does not is `empty`: epsilon never demands a transition
// (spec.md §4.1, "closure contract" for `empty`).
func (it Item) GeneratesTransition() bool {
	return it.kind != KindEmpty
}

// itemKey returns the content-address of an item: two items with equal
// kind and equal structural payload must produce the same key so that
// interning can deduplicate them (spec.md §3 invariants). The actual
// digest is produced by structhash, mirroring the content-hashing
// technique gorgo's Earley table builder uses to key memoized states
// (github.com/npillmayer/gorgo/lr/earley, hash()).
func itemKey(kind Kind, symbol int, sub RuleID, alts []RuleID) string {
	shape := struct {
		Kind   Kind
		Symbol int
		Sub    RuleID
		Alts   []RuleID
	}{kind, symbol, sub, alts}
	key, err := structhash.Hash(shape, 1)
	if err != nil {
		// structhash only fails on unhashable types; our shape is
		// entirely plain value types, so this can't happen.
		panic(fmt.Sprintf("grammar: failed to hash item shape: %v", err))
	}
	return key
}
