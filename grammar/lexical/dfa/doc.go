// Package dfa constructs a deterministic finite automaton from regex
// syntax trees using the follow-position construction. The automaton
// simultaneously recognizes multiple tokens and reports the matching
// token identifier.
package dfa

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces the DFA construction passes.
func tracer() tracing.Trace {
	return tracing.Select("parsepact.dfa")
}
