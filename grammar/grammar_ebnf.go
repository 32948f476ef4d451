package grammar

import (
	"fmt"

	"github.com/cnf/structhash"
)

// Guards and the three EBNF repeat/optional constructs own sub-rules
// that reduce back to the very item that owns them: a completed guard
// sub-rule signals acceptance (spec.md §4.3.4), and a completed
// optional/repeat sub-rule triggers the same goto transition a plain
// nonterminal reduction would. That self-reference means the item's ID
// must exist before its rules can be built, so construction is two
// phase: reserveComposite interns a placeholder keyed on the construct's
// structural shape (so two occurrences of the same `rule?` share an
// item), then the caller builds the self-reducing rule(s) and patches
// them onto the reserved item.

func compositeKey(kind Kind, sequences [][]ItemID) string {
	shape := struct {
		Kind Kind
		Seqs [][]ItemID
	}{kind, sequences}
	key, err := structhash.Hash(shape, 1)
	if err != nil {
		panic(fmt.Sprintf("grammar: failed to hash composite shape: %v", err))
	}
	return key
}

func (g *Grammar) reserveComposite(kind Kind, sequences [][]ItemID) (ItemID, bool) {
	key := compositeKey(kind, sequences)
	if id, ok := g.itemByID[key]; ok {
		return id, false
	}
	id := ItemID(len(g.items))
	g.items = append(g.items, Item{id: id, kind: kind, sub: NilRule})
	g.itemByID[key] = id
	return id, true
}

// selfRule interns a rule reducing to a guard or EBNF item. Unlike
// AddRule it never registers under a nonterminal: guards and EBNF
// composites aren't looked up by name.
func (g *Grammar) selfRule(reducing ItemID, items []ItemID) RuleID {
	return g.internRule(reducing, items, nil)
}

// Guard interns (or retrieves) a guard item embedding the sub-parser
// defined by `items`.
func (g *Grammar) Guard(items []ItemID) ItemID {
	id, isNew := g.reserveComposite(KindGuard, [][]ItemID{items})
	if !isNew {
		return id
	}
	rule := g.selfRule(id, items)
	it := g.items[id]
	it.sub = rule
	g.items[id] = it
	g.clearCaches()
	return id
}

// EBNFOptional interns `items?` as a pseudo-nonterminal with two
// self-reducing rules: one matching items, one matching nothing.
func (g *Grammar) EBNFOptional(items []ItemID) ItemID {
	id, isNew := g.reserveComposite(KindEBNFOptional, [][]ItemID{items, nil})
	if !isNew {
		return id
	}
	content := g.selfRule(id, items)
	empty := g.selfRule(id, nil)
	it := g.items[id]
	it.alts = []RuleID{content, empty}
	g.items[id] = it
	g.clearCaches()
	return id
}

// EBNFRepeatOneOrMore interns `items+` as a left-recursive
// pseudo-nonterminal: N -> items | N items.
func (g *Grammar) EBNFRepeatOneOrMore(items []ItemID) ItemID {
	id, isNew := g.reserveComposite(KindEBNFRepeatOneOrMore, [][]ItemID{items})
	if !isNew {
		return id
	}
	base := g.selfRule(id, items)
	rec := g.selfRule(id, append([]ItemID{id}, items...))
	it := g.items[id]
	it.alts = []RuleID{base, rec}
	g.items[id] = it
	g.clearCaches()
	return id
}

// EBNFRepeatZeroOrMore interns `items*`: N -> ε | N items.
func (g *Grammar) EBNFRepeatZeroOrMore(items []ItemID) ItemID {
	id, isNew := g.reserveComposite(KindEBNFRepeatZeroOrMore, [][]ItemID{items, nil})
	if !isNew {
		return id
	}
	empty := g.selfRule(id, nil)
	rec := g.selfRule(id, append([]ItemID{id}, items...))
	it := g.items[id]
	it.alts = []RuleID{rec, empty}
	g.items[id] = it
	g.clearCaches()
	return id
}

// EBNFAlternative interns `(seq1 | seq2 | ...)`, flattening any operand
// that is itself directly an existing alternative item (spec.md §4.1,
// "flatten alternatives nested directly inside alternatives to reduce
// state count").
func (g *Grammar) EBNFAlternative(sequences [][]ItemID) ItemID {
	flat := g.flattenAlternatives(sequences)
	id, isNew := g.reserveComposite(KindEBNFAlternative, flat)
	if !isNew {
		return id
	}
	alts := make([]RuleID, 0, len(flat))
	for _, seq := range flat {
		alts = append(alts, g.selfRule(id, seq))
	}
	it := g.items[id]
	it.alts = alts
	g.items[id] = it
	g.clearCaches()
	return id
}

func (g *Grammar) flattenAlternatives(sequences [][]ItemID) [][]ItemID {
	flat := make([][]ItemID, 0, len(sequences))
	work := append([][]ItemID(nil), sequences...)
	for len(work) > 0 {
		seq := work[0]
		work = work[1:]
		if len(seq) == 1 {
			if it := g.items[seq[0]]; it.kind == KindEBNFAlternative {
				nested := make([][]ItemID, 0, len(it.alts))
				for _, rid := range it.alts {
					nested = append(nested, g.rules[rid].items)
				}
				work = append(nested, work...)
				continue
			}
		}
		flat = append(flat, seq)
	}
	return flat
}
