package lexer

import (
	"fmt"
	"io"

	"github.com/parsepact/parsepact/spec"
)

// Token represents a lexeme matched by the tokenizer automaton.
type Token struct {
	// Symbol is the terminal symbol id reported by the automaton,
	// or the end symbol for the EOF token.
	Symbol int

	// Lexeme is the matched prefix of the input.
	Lexeme []byte

	// Row and Col are 1-based and point at the first character of
	// the lexeme.
	Row int
	Col int

	EOF     bool
	Invalid bool
}

// Lexer tokenizes an input stream with the compiled DFA. Whitespace
// tokens are consumed and never surface; the error pseudo-symbol is
// not part of the automaton and is never produced.
type Lexer struct {
	g   *spec.CompiledGrammar
	src []byte
	ptr int
	row int
	col int
}

func NewLexer(g *spec.CompiledGrammar, src io.Reader) (*Lexer, error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return &Lexer{
		g:   g,
		src: b,
		row: 1,
		col: 1,
	}, nil
}

// Next returns the next non-whitespace token.
func (l *Lexer) Next() (*Token, error) {
	for {
		tok, err := l.lex()
		if err != nil {
			return nil, err
		}
		if !tok.EOF && !tok.Invalid && tok.Symbol == l.g.WhitespaceSymbol {
			continue
		}
		return tok, nil
	}
}

// lex follows the longest transition chain from the current position.
// The matcher keeps running as long as transitions exist; it does not
// stop at the first accepting state. If the chain ends in an accepting
// state the consumed prefix is the token; otherwise the lexeme is
// reported invalid, with no fallback to a shorter accepting prefix.
func (l *Lexer) lex() (*Token, error) {
	d := l.g.DFA
	state := d.InitialState
	start := l.ptr
	row := l.row
	col := l.col

	if l.ptr >= len(l.src) {
		return &Token{
			Symbol: l.g.EndSymbol,
			Row:    row,
			Col:    col,
			EOF:    true,
		}, nil
	}

	for {
		var c byte
		if l.ptr < len(l.src) {
			c = l.src[l.ptr]
		}

		next, ok := l.findTransition(state, c)
		if ok {
			state = next
			l.consume()
			continue
		}

		if d.Accepting[state] && l.ptr > start {
			return &Token{
				Symbol: d.Tokens[state],
				Lexeme: l.src[start:l.ptr],
				Row:    row,
				Col:    col,
			}, nil
		}
		if l.ptr < len(l.src) {
			l.consume()
		}
		return &Token{
			Lexeme:  l.src[start:l.ptr],
			Row:     row,
			Col:     col,
			Invalid: true,
		}, nil
	}
}

func (l *Lexer) findTransition(state int, c byte) (int, bool) {
	d := l.g.DFA
	for i := d.TransitionsBegin[state]; i < len(d.From) && d.From[i] == state; i++ {
		if d.Lo[i] <= int(c) && int(c) < d.Hi[i] {
			return d.Next[i], true
		}
	}
	return 0, false
}

func (l *Lexer) consume() {
	if l.ptr >= len(l.src) {
		return
	}
	if l.src[l.ptr] == '\n' {
		l.row++
		l.col = 1
	} else {
		l.col++
	}
	l.ptr++
}

func (t *Token) String() string {
	if t.EOF {
		return "<eof>"
	}
	if t.Invalid {
		return fmt.Sprintf("invalid %q", t.Lexeme)
	}
	return fmt.Sprintf("%q (symbol %v)", t.Lexeme, t.Symbol)
}
