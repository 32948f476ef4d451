// Package grammar implements the context-free grammar representation
// described in spec.md §3–§4.1: polymorphic, interned items (terminals,
// nonterminals, epsilon, the EOI/EOG sentinels, guards, and the four
// EBNF composite constructs), interned rules built from them, and a
// Grammar container that caches FIRST/FOLLOW over the whole rule set.
//
// The package is modeled on vartan/grammar's symbol table and
// production set (github.com/nihei9/vartan/grammar/{symbol,production}.go),
// generalized from vartan's flat terminal/nonterminal symbol to the
// tagged-union Item spec.md calls for (see DESIGN.md).
package grammar

import "fmt"

// Grammar is an interning arena: items and rules are owned here and
// referred to everywhere else by ID, which keeps the item/rule graph
// acyclic even though EBNF items own sub-rules and rules reference
// items including EBNF items (spec.md §9, "Graph ownership").
type Grammar struct {
	items    []Item
	itemByID map[string]ItemID

	rules    []Rule
	ruleByID map[string]RuleID

	nontermNames []string
	nameToNonterm map[string]int
	rulesByNonterm map[int][]RuleID

	starts map[int]bool

	emptyItem ItemID
	eoiItem   ItemID
	eogItem   ItemID

	firstCache  map[ItemID]*FirstSet
	followCache map[int]*FollowSet
	followDone  bool
}

// New creates an empty grammar. The three sentinel items (empty, EOI,
// EOG) are interned immediately so downstream code can depend on their
// IDs existing from the start.
func New() *Grammar {
	g := &Grammar{
		itemByID:       map[string]ItemID{},
		ruleByID:       map[string]RuleID{},
		nameToNonterm:  map[string]int{},
		rulesByNonterm: map[int][]RuleID{},
		starts:         map[int]bool{},
		firstCache:     map[ItemID]*FirstSet{},
		followCache:    map[int]*FollowSet{},
	}
	g.emptyItem = g.intern(KindEmpty, 0, NilRule, nil)
	g.eoiItem = g.intern(KindEOI, 0, NilRule, nil)
	g.eogItem = g.intern(KindEOG, 0, NilRule, nil)
	return g
}

// Empty, EOI and EOG return the grammar's singleton sentinel items.
func (g *Grammar) Empty() ItemID { return g.emptyItem }
func (g *Grammar) EOI() ItemID   { return g.eoiItem }
func (g *Grammar) EOG() ItemID   { return g.eogItem }

// Item resolves an interned item by ID. Panics on an ID this grammar
// never assigned; callers are expected to only ever hold IDs this
// grammar handed out.
func (g *Grammar) Item(id ItemID) Item {
	return g.items[id]
}

// Rule resolves an interned rule by ID.
func (g *Grammar) Rule(id RuleID) Rule {
	return g.rules[id]
}

// ItemCount returns the number of interned items, i.e. one past the
// highest valid ItemID. Callers that need a sentinel value guaranteed
// to never collide with a real item (the LALR builder's dummy
// propagation marker) use this as that value.
func (g *Grammar) ItemCount() int {
	return len(g.items)
}

func (g *Grammar) intern(kind Kind, symbol int, sub RuleID, alts []RuleID) ItemID {
	key := itemKey(kind, symbol, sub, alts)
	if id, ok := g.itemByID[key]; ok {
		return id
	}
	id := ItemID(len(g.items))
	g.items = append(g.items, Item{id: id, kind: kind, symbol: symbol, sub: sub, alts: alts})
	g.itemByID[key] = id
	return id
}

// Terminal interns (or retrieves) the item for terminal number t.
func (g *Grammar) Terminal(t int) ItemID {
	return g.intern(KindTerminal, t, NilRule, nil)
}

// Nonterminal interns (or retrieves) the item for nonterminal number n.
func (g *Grammar) Nonterminal(n int) ItemID {
	return g.intern(KindNonterminal, n, NilRule, nil)
}

// Accept interns (or retrieves) the augmented item wrapping declared
// start nonterminal n. lalr.Build seeds n's initial state from the
// single rule accept -> n rather than from n's own rules directly, so
// a reduction back to this item unambiguously means the parse is
// complete even if n is also reachable (and reducible) from somewhere
// else in the grammar — the classical augmented-grammar technique.
func (g *Grammar) Accept(n int) ItemID {
	return g.intern(KindAccept, n, NilRule, nil)
}

// internRule interns a rule (spec.md §3, "Rules are also interned:
// identical rules share an identifier within a grammar").
func (g *Grammar) internRule(reducing ItemID, items []ItemID, keys []int) RuleID {
	key := ruleKey(reducing, items)
	if id, ok := g.ruleByID[key]; ok {
		return id
	}
	id := RuleID(len(g.rules))
	g.rules = append(g.rules, Rule{id: id, items: items, reducing: reducing, keys: keys})
	g.ruleByID[key] = id
	return id
}

// AddRule interns a rule producing `reducing` from `items`, with an
// optional per-position attribute key (nil means "not specified" for
// every position). It both returns the rule and registers it under the
// reducing nonterminal if the reducing item is a nonterminal.
func (g *Grammar) AddRule(reducing ItemID, items []ItemID, keys []int) RuleID {
	id := g.internRule(reducing, items, keys)
	red := g.items[reducing]
	if red.kind == KindNonterminal {
		if existing := g.rulesByNonterm[red.symbol]; !containsRule(existing, id) {
			g.rulesByNonterm[red.symbol] = append(existing, id)
		}
	}
	g.clearCaches()
	return id
}

func containsRule(rs []RuleID, id RuleID) bool {
	for _, r := range rs {
		if r == id {
			return true
		}
	}
	return false
}

// IDForNonterminal gets or creates the nonterminal numbered by name: the
// first call for a given name assigns a fresh number (spec.md §4.1,
// "id_for_nonterminal: get-or-create").
func (g *Grammar) IDForNonterminal(name string) int {
	if n, ok := g.nameToNonterm[name]; ok {
		return n
	}
	n := len(g.nontermNames)
	g.nontermNames = append(g.nontermNames, name)
	g.nameToNonterm[name] = n
	return n
}

// NonterminalName returns the name registered for nonterminal number n.
func (g *Grammar) NonterminalName(n int) (string, bool) {
	if n < 0 || n >= len(g.nontermNames) {
		return "", false
	}
	return g.nontermNames[n], true
}

// RulesForNonterminal returns the productions currently defining n.
func (g *Grammar) RulesForNonterminal(n int) []RuleID {
	return g.rulesByNonterm[n]
}

// DeclareStart marks nonterminal n as a start symbol usable by the
// builder (spec.md §4.3.1 iterates "each declared start nonterminal").
func (g *Grammar) DeclareStart(n int) {
	g.starts[n] = true
}

// StartSymbols returns the nonterminal numbers declared as starts, in
// the order IDForNonterminal first saw them.
func (g *Grammar) StartSymbols() []int {
	var out []int
	for n := range g.nontermNames {
		if g.starts[n] {
			out = append(out, n)
		}
	}
	return out
}

// IdentifierForItem returns id such that g.Item(id) == it's canonical
// interned form; for an item already obtained from this grammar this is
// simply it.ID(), preserved here to spell out the bijection spec.md §8
// tests: "identifier_for_item(item_with_identifier(id)) == id".
func (g *Grammar) IdentifierForItem(id ItemID) ItemID { return id }

// IdentifierForRule is the rule analogue of IdentifierForItem.
func (g *Grammar) IdentifierForRule(id RuleID) RuleID { return id }

// ClearCaches invalidates the FIRST/FOLLOW caches. Mandatory before
// querying First/Follow again after mutating rules (spec.md §4.1).
func (g *Grammar) ClearCaches() {
	g.clearCaches()
}

func (g *Grammar) clearCaches() {
	g.firstCache = map[ItemID]*FirstSet{}
	g.followCache = map[int]*FollowSet{}
	g.followDone = false
}

func (g *Grammar) String() string {
	return fmt.Sprintf("grammar{items=%d rules=%d nonterminals=%d}", len(g.items), len(g.rules), len(g.nontermNames))
}
