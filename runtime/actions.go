package runtime

import "github.com/nihei9/lrforge/grammar"

// ParseActions lets an embedding application observe shifts and
// reduces as they happen, generalized from driver/parser.go's
// semanticFrame-building shift/reduce hooks (which hardcode CST/AST
// construction) into an arbitrary callback a caller supplies.
type ParseActions interface {
	Shift(lexeme Lexeme)
	Reduce(rule int, lhs grammar.ItemID, handleLen int)
	Accept()
}

// NoopActions implements ParseActions with no side effects, for
// callers that only want a yes/no parse result.
type NoopActions struct{}

func (NoopActions) Shift(Lexeme)                    {}
func (NoopActions) Reduce(int, grammar.ItemID, int) {}
func (NoopActions) Accept()                         {}
