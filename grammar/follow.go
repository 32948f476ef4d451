package grammar

// FollowSet is the result of a FOLLOW query: the terminals that can
// appear immediately after a nonterminal in some sentential form, plus
// whether the nonterminal can be followed directly by end-of-input
// (spec.md §3, "FOLLOW(X)...").
//
// Adapted from vartan/grammar/follow.go's followEntry/followSet: same
// single dataflow pass over every rule, generalized to item IDs and to
// EBNF composites (an ebnf_alternative's sub-rules each contribute to
// their shared enclosing FOLLOW the same way a nonterminal's rules do).
type FollowSet struct {
	Terminals map[ItemID]bool
	EOI       bool
}

func newFollowSet() *FollowSet {
	return &FollowSet{Terminals: map[ItemID]bool{}}
}

func (s *FollowSet) add(id ItemID) bool {
	if s.Terminals[id] {
		return false
	}
	s.Terminals[id] = true
	return true
}

func (s *FollowSet) addEOI() bool {
	if s.EOI {
		return false
	}
	s.EOI = true
	return true
}

func (s *FollowSet) mergeFirst(fst *FirstSet) bool {
	changed := false
	for id := range fst.Terminals {
		if s.add(id) {
			changed = true
		}
	}
	return changed
}

func (s *FollowSet) mergeFollow(other *FollowSet) bool {
	changed := false
	for id := range other.Terminals {
		if s.add(id) {
			changed = true
		}
	}
	if other.EOI && s.addEOI() {
		changed = true
	}
	return changed
}

// Follow computes FOLLOW(nonterminal n), computed once per grammar via
// dataflow and cached until the next ClearCaches (spec.md §4.1).
func (g *Grammar) Follow(n int) *FollowSet {
	if !g.followDone {
		g.computeAllFollow()
	}
	if s, ok := g.followCache[n]; ok {
		return s
	}
	return newFollowSet()
}

func (g *Grammar) computeAllFollow() {
	for n := range g.nontermNames {
		if _, ok := g.followCache[n]; !ok {
			g.followCache[n] = newFollowSet()
		}
	}
	for n := range g.starts {
		g.followCache[n].addEOI()
	}

	for {
		changed := false
		for _, rule := range g.rules {
			g.followRule(rule, &changed)
		}
		if !changed {
			break
		}
	}
	g.followDone = true
}

// followRule contributes every occurrence of a nonterminal inside
// rule.Items (and, transitively, inside that rule's EBNF sub-rules) to
// the running FOLLOW sets: local FIRST-of-the-rest feeds the occurrence
// directly, and FOLLOW(lhs) propagates through when the rest is
// nullable — exactly vartan/grammar/follow.go's genFollowEntry, run
// here over a rule's contained items rather than only its top-level
// rhs so EBNF sub-rules get the same treatment.
func (g *Grammar) followRule(rule Rule, changed *bool) {
	lhs := g.items[rule.reducing]
	var lhsFollow *FollowSet
	if lhs.kind == KindNonterminal {
		lhsFollow = g.followCache[lhs.symbol]
	}
	g.followSequence(rule.items, lhsFollow, changed)
}

func (g *Grammar) followSequence(items []ItemID, tailFollow *FollowSet, changed *bool) {
	for i, id := range items {
		it := g.items[id]
		rest := g.firstOfSequence(items, i+1)

		switch it.kind {
		case KindNonterminal:
			e := g.followCache[it.symbol]
			if e.mergeFirst(rest) {
				*changed = true
			}
			if rest.Epsilon && tailFollow != nil {
				if e.mergeFollow(tailFollow) {
					*changed = true
				}
			}
		case KindGuard:
			var innerTail *FollowSet
			if rest.Epsilon {
				innerTail = tailFollow
			}
			g.followSequence(g.rules[it.sub].items, followFromFirst(rest, innerTail), changed)
		case KindEBNFOptional, KindEBNFRepeatOneOrMore, KindEBNFRepeatZeroOrMore, KindEBNFAlternative:
			var innerTail *FollowSet
			if rest.Epsilon {
				innerTail = tailFollow
			}
			for _, rid := range it.alts {
				g.followSequence(g.rules[rid].items, followFromFirst(rest, innerTail), changed)
			}
		}
	}
}

// followFromFirst materializes a FollowSet view of "whatever follows
// this sub-rule inside its parent": the parent's local FIRST-of-the-rest
// plus (if the parent's rest is nullable) the parent's own tail follow.
func followFromFirst(rest *FirstSet, tail *FollowSet) *FollowSet {
	out := newFollowSet()
	out.mergeFirst(rest)
	if tail != nil {
		out.mergeFollow(tail)
	}
	return out
}
