// Package runtime is the table-driven LR parser that consumes a
// table.Table and a grammar.Grammar built ahead of time (spec.md §6).
// It generalizes vartan/driver/parser.go's stack-based Parse loop from
// a single flat action array to the sorted per-state table.StateTable,
// and adds the two pieces that driver's plain LALR never needed: guard
// probing and the can_reduce shadow-stack query.
package runtime

import "github.com/nihei9/lrforge/grammar"

// Lexeme is one token the driver consumes: a terminal item plus
// whatever positional/text metadata an embedding application wants for
// diagnostics or semantic actions.
type Lexeme struct {
	Terminal grammar.ItemID
	Text     string
	Row, Col int
}

// LexemeStream supplies lexemes on demand. Next returns a lexeme whose
// Terminal is the grammar's EOI item exactly once, at the end of input,
// the same end-of-stream signal driver's maleeni-backed lexer hands
// back as tok.EOF.
type LexemeStream interface {
	Next() (Lexeme, error)
}
