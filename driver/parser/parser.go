package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/parsepact/parsepact/driver/lexer"
	"github.com/parsepact/parsepact/spec"
)

// SyntaxError is returned when the input does not conform to the
// grammar.
type SyntaxError struct {
	Row      int
	Col      int
	Message  string
	Expected []string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v:%v: %v", e.Row, e.Col, e.Message)
	if len(e.Expected) > 0 {
		fmt.Fprintf(&b, "; expected: %v", strings.Join(e.Expected, ", "))
	}
	return b.String()
}

// Parser drives the shift/reduce loop over a compiled grammar. The
// artifact is shared read-only; each Parser owns its own state stack,
// so concurrent parses with distinct Parser values are safe.
type Parser struct {
	g          *spec.CompiledGrammar
	lex        *lexer.Lexer
	semAct     SemanticActionSet
	stateStack []int
	synErrs    []*SyntaxError
}

type ParserOption func(p *Parser) error

// WithSemanticAction sets the callback set receiving parse events.
func WithSemanticAction(semAct SemanticActionSet) ParserOption {
	return func(p *Parser) error {
		p.semAct = semAct
		return nil
	}
}

func NewParser(g *spec.CompiledGrammar, src io.Reader, opts ...ParserOption) (*Parser, error) {
	lex, err := lexer.NewLexer(g, src)
	if err != nil {
		return nil, err
	}
	p := &Parser{
		g:   g,
		lex: lex,
	}
	for _, opt := range opts {
		err := opt(p)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Parse consumes tokens, consults the table and shifts or reduces
// until the accept action fires or a syntax error occurs.
func (p *Parser) Parse() error {
	p.stateStack = p.stateStack[:0]
	p.synErrs = nil
	// State 0 is the initial state of the LR automaton.
	p.push(0)

	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	for {
		if tok.Invalid {
			return &SyntaxError{
				Row:     tok.Row,
				Col:     tok.Col,
				Message: fmt.Sprintf("unrecognized input %q", tok.Lexeme),
			}
		}

		kind, target, ok := p.g.FindTransition(p.top(), tok.Symbol)
		if !ok {
			synErr := &SyntaxError{
				Row:      tok.Row,
				Col:      tok.Col,
				Message:  fmt.Sprintf("unexpected token %v", tok),
				Expected: p.expectedTerminals(),
			}
			p.synErrs = append(p.synErrs, synErr)
			if !p.trapError() {
				return synErr
			}
			tok, err = p.skipToActionable(tok)
			if err != nil {
				return err
			}
			if tok == nil {
				return synErr
			}
			continue
		}

		switch kind {
		case spec.ActionKindShift:
			p.push(target)
			if p.semAct != nil {
				p.semAct.Shift(tok)
			}
			tok, err = p.lex.Next()
			if err != nil {
				return err
			}
		case spec.ActionKindReduce:
			err := p.reduce(target)
			if err != nil {
				return err
			}
		case spec.ActionKindAccept:
			if p.semAct != nil {
				p.semAct.Accept()
			}
			return nil
		}
	}
}

func (p *Parser) reduce(prod int) error {
	rhsLen := len(p.g.ProductionRHS(prod))
	p.stateStack = p.stateStack[:len(p.stateStack)-rhsLen]

	if p.semAct != nil {
		p.semAct.Reduce(prod, p.g.ProductionAction(prod))
	}

	lhs := p.g.ProductionLHS(prod)
	kind, target, ok := p.g.FindTransition(p.top(), lhs)
	if !ok || kind != spec.ActionKindShift {
		return fmt.Errorf("missing goto transition for %v in state %v", p.g.SymbolName(lhs), p.top())
	}
	p.push(target)
	return nil
}

// trapError pops states until one can shift the error pseudo-symbol,
// then shifts it. The error token never comes from the tokenizer; it
// is injected here.
func (p *Parser) trapError() bool {
	for len(p.stateStack) > 0 {
		kind, target, ok := p.g.FindTransition(p.top(), p.g.ErrorSymbol)
		if ok && kind == spec.ActionKindShift {
			p.push(target)
			return true
		}
		p.stateStack = p.stateStack[:len(p.stateStack)-1]
	}
	return false
}

// skipToActionable discards input until a token the current state has
// an action for. A nil token means recovery failed at the end of the
// input.
func (p *Parser) skipToActionable(tok *lexer.Token) (*lexer.Token, error) {
	for {
		if !tok.Invalid {
			if _, _, ok := p.g.FindTransition(p.top(), tok.Symbol); ok {
				return tok, nil
			}
		}
		if tok.EOF {
			return nil, nil
		}
		var err error
		tok, err = p.lex.Next()
		if err != nil {
			return nil, err
		}
	}
}

// SyntaxErrors returns the syntax errors found so far, including the
// ones recovered from.
func (p *Parser) SyntaxErrors() []*SyntaxError {
	return p.synErrs
}

func (p *Parser) push(state int) {
	p.stateStack = append(p.stateStack, state)
}

func (p *Parser) top() int {
	return p.stateStack[len(p.stateStack)-1]
}

// expectedTerminals lists the terminals the current state has an
// action for.
func (p *Parser) expectedTerminals() []string {
	var expected []string
	for _, sym := range p.g.StateTransitionSymbols(p.top()) {
		kind := p.g.SymbolKind(sym)
		if kind != spec.SymbolKindTerminal && kind != spec.SymbolKindEnd {
			continue
		}
		expected = append(expected, p.g.SymbolName(sym))
	}
	return expected
}
