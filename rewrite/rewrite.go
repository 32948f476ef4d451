// Package rewrite implements the pluggable conflict-resolution passes
// table.Build runs over a state/symbol's proposed actions before
// falling back to priority order and a recorded diagnostic (spec.md
// §4.3.4): ignored symbols, weak symbols, user-declared conflict
// attributes, operator precedence, and a last-resort LR(1)
// disambiguation of whatever reduce/reduce ambiguity survives.
//
// Grounded on vartan/grammar/parsing_table_builder.go, which folds
// exactly this sequence of resolution rules (directive-declared
// associativity/precedence, then a fixed shift-wins default) into its
// single-pass table builder; this package pulls each rule out into its
// own table.Rewriter so they can be composed, reordered, or omitted
// per grammar.
package rewrite
