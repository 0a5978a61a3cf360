package parser

import (
	"github.com/parsepact/parsepact/driver/lexer"
)

// SemanticActionSet receives the parse events. The driver is a pure
// function of (artifact, input); the embedder dispatches semantic
// routines from these hooks.
type SemanticActionSet interface {
	// Shift runs when the driver consumes a terminal.
	Shift(tok *lexer.Token)

	// Reduce runs when the driver replaces the RHS of a production
	// on the stack with its LHS. action is the production's tag, or
	// the empty string for untagged productions.
	Reduce(prod int, action string)

	// Accept runs when the driver accepts the input.
	Accept()
}
