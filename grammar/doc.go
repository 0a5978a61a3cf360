// Package grammar performs the semantic analysis of a parsed grammar
// specification and constructs the LALR(1) parsing tables and the
// tokenizer automaton.
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces the table construction passes.
func tracer() tracing.Trace {
	return tracing.Select("parsepact.grammar")
}
