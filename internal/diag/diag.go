// Package diag collects the diagnostics the grammar compiler and
// runtime driver raise: undefined nonterminals, missing start symbols,
// unresolved LALR conflicts, clashing guards, and parse rejection
// (spec.md §7). It also exposes the package's tracer, following the
// tracer()-accessor idiom of github.com/npillmayer/gorgo's lr package
// (github.com/npillmayer/schuko/gtrace).
package diag

import "fmt"

// Kind classifies a Diagnostic.
type Kind int

const (
	KindUndefinedNonterminal Kind = iota
	KindNoStartSymbols
	KindShiftReduceConflict
	KindReduceReduceConflict
	KindClashingGuards
	KindParseReject
)

func (k Kind) String() string {
	switch k {
	case KindUndefinedNonterminal:
		return "undefined-nonterminal"
	case KindNoStartSymbols:
		return "no-start-symbols"
	case KindShiftReduceConflict:
		return "shift/reduce-conflict"
	case KindReduceReduceConflict:
		return "reduce/reduce-conflict"
	case KindClashingGuards:
		return "clashing-guards"
	case KindParseReject:
		return "parse-reject"
	default:
		return "unknown"
	}
}

// Diagnostic is a single compiler or runtime finding. State and Row are
// both optional context: State identifies the LALR state a conflict was
// found in (-1 if not applicable), Row is a source row for diagnostics
// tied to input text (0 if not applicable), adapted from error/
// error.go's SpecError{Cause, Row}.
type Diagnostic struct {
	Kind    Kind
	Message string
	State   int
	Row     int
}

func (d *Diagnostic) Error() string {
	switch {
	case d.State >= 0 && d.Row > 0:
		return fmt.Sprintf("%s: state %d, row %d: %s", d.Kind, d.State, d.Row, d.Message)
	case d.State >= 0:
		return fmt.Sprintf("%s: state %d: %s", d.Kind, d.State, d.Message)
	case d.Row > 0:
		return fmt.Sprintf("%s: row %d: %s", d.Kind, d.Row, d.Message)
	default:
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
}

func UndefinedNonterminal(name string) *Diagnostic {
	return &Diagnostic{Kind: KindUndefinedNonterminal, Message: fmt.Sprintf("nonterminal %q is used but never defined", name), State: -1}
}

func NoStartSymbols() *Diagnostic {
	return &Diagnostic{Kind: KindNoStartSymbols, Message: "grammar declares no start symbols", State: -1}
}

func ShiftReduceConflict(state int, symbol string) *Diagnostic {
	return &Diagnostic{Kind: KindShiftReduceConflict, Message: fmt.Sprintf("shift/reduce conflict on %s", symbol), State: state}
}

func ReduceReduceConflict(state int, symbol string) *Diagnostic {
	return &Diagnostic{Kind: KindReduceReduceConflict, Message: fmt.Sprintf("reduce/reduce conflict on %s", symbol), State: state}
}

func ClashingGuards(state int, symbol string) *Diagnostic {
	return &Diagnostic{Kind: KindClashingGuards, Message: fmt.Sprintf("multiple guards claim the same lookahead on %s", symbol), State: state}
}

func ParseReject(row int, message string) *Diagnostic {
	return &Diagnostic{Kind: KindParseReject, Message: message, State: -1, Row: row}
}
