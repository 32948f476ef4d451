package grammar

// FirstSet is the result of a FIRST query: the terminals (by item ID)
// that can begin a derivation, plus whether the derivation can also be
// empty (spec.md §3, "FIRST(X) is the set of terminals (plus ε if X is
// nullable)...").
//
// Adapted from vartan/grammar/first.go's firstEntry/firstSet, generalized
// from a flat terminal-symbol set to a set of item IDs so that EOI/EOG
// participate in lookahead computations the same way ordinary terminals
// do, and extended with the EBNF composite semantics spec.md §4.1 adds
// on top of plain nonterminal expansion.
type FirstSet struct {
	Terminals map[ItemID]bool
	Epsilon   bool
}

func newFirstSet() *FirstSet {
	return &FirstSet{Terminals: map[ItemID]bool{}}
}

func (s *FirstSet) add(id ItemID) bool {
	if s.Terminals[id] {
		return false
	}
	s.Terminals[id] = true
	return true
}

func (s *FirstSet) addEpsilon() bool {
	if s.Epsilon {
		return false
	}
	s.Epsilon = true
	return true
}

func (s *FirstSet) mergeTerminals(other *FirstSet) bool {
	changed := false
	for id := range other.Terminals {
		if s.add(id) {
			changed = true
		}
	}
	return changed
}

// First computes FIRST(item) to fixpoint, lazily caching the result
// (spec.md §4.1, "Cache lifecycle: populated lazily on first query").
func (g *Grammar) First(id ItemID) *FirstSet {
	if cached, ok := g.firstCache[id]; ok {
		return cached
	}
	// One fixpoint pass computes FIRST for every item at once rather
	// than per-item recursion: nonterminals can be mutually recursive,
	// and EBNF sub-rules can reach back into their enclosing
	// nonterminal.
	g.computeAllFirst()
	return g.firstCache[id]
}

func (g *Grammar) computeAllFirst() {
	for _, it := range g.items {
		if _, ok := g.firstCache[it.id]; ok {
			continue
		}
		s := newFirstSet()
		switch it.kind {
		case KindTerminal, KindEOI, KindEOG:
			s.add(it.id)
		case KindEmpty:
			s.addEpsilon()
		}
		g.firstCache[it.id] = s
	}

	for {
		changed := false
		for _, it := range g.items {
			s := g.firstCache[it.id]
			switch it.kind {
			case KindNonterminal:
				for _, rid := range g.rulesByNonterm[it.symbol] {
					rs := g.firstOfSequence(g.rules[rid].items, 0)
					if s.mergeTerminals(rs) {
						changed = true
					}
					if rs.Epsilon && s.addEpsilon() {
						changed = true
					}
				}
			case KindGuard:
				rs := g.firstOfSequence(g.rules[it.sub].items, 0)
				if s.mergeTerminals(rs) {
					changed = true
				}
				if rs.Epsilon && s.addEpsilon() {
					changed = true
				}
			case KindEBNFOptional, KindEBNFRepeatOneOrMore, KindEBNFRepeatZeroOrMore, KindEBNFAlternative:
				// Every branch, including the empty one on optional/
				// zero-or-more, is an explicit self-reducing rule in
				// Alts, so a plain union over Alts already accounts for
				// nullability; no special-casing needed here.
				for _, rid := range it.alts {
					rs := g.firstOfSequence(g.rules[rid].items, 0)
					if s.mergeTerminals(rs) {
						changed = true
					}
					if rs.Epsilon && s.addEpsilon() {
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}
}

// firstOfSequence computes FIRST of items[offset:] — what a dot sitting
// just before offset would see next (spec.md §4.1's "FIRST of the
// symbols after the dot"). An empty remaining sequence is nullable by
// definition.
func (g *Grammar) firstOfSequence(items []ItemID, offset int) *FirstSet {
	out := newFirstSet()
	if offset >= len(items) {
		out.addEpsilon()
		return out
	}
	for _, id := range items[offset:] {
		part := g.First(id)
		out.mergeTerminals(part)
		if !part.Epsilon {
			return out
		}
	}
	out.addEpsilon()
	return out
}
