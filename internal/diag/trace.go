package diag

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the package's syntax tracer, following gorgo/lr's T()
// accessor idiom rather than threading a logger through every function
// signature.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}
