package spec

import (
	"errors"
	"testing"

	verr "github.com/parsepact/parsepact/error"
)

func TestParse(t *testing.T) {
	src := `
// A toy expression grammar.
calc {
    %whitespace "[ \t]+";
    %left '+' '-';
    %left '*';

    /* productions */
    expr: expr '+' expr [add]
        | expr '*' expr %precedence '*' [mul]
        | int [num]
        | error ';' [recover]
        ;
    int: "[0-9]+";
}
`
	root, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if root.Name != "calc" {
		t.Fatalf("want grammar name calc, got %v", root.Name)
	}
	if len(root.Whitespaces) != 1 || len(root.Whitespaces[0].Patterns) != 1 || root.Whitespaces[0].Patterns[0] != `[ \t]+` {
		t.Fatalf("unexpected whitespace statements: %+v", root.Whitespaces)
	}

	if len(root.AssocDecls) != 2 {
		t.Fatalf("want 2 associativity declarations, got %v", len(root.AssocDecls))
	}
	if root.AssocDecls[0].Assoc != AssocKindLeft || len(root.AssocDecls[0].Symbols) != 2 {
		t.Fatalf("unexpected first declaration: %+v", root.AssocDecls[0])
	}
	if root.AssocDecls[0].Symbols[0].Kind != SymbolNodeKindLiteral || root.AssocDecls[0].Symbols[0].Text != "+" {
		t.Fatalf("unexpected symbol: %+v", root.AssocDecls[0].Symbols[0])
	}

	if len(root.Productions) != 2 {
		t.Fatalf("want 2 production statements, got %v", len(root.Productions))
	}
	expr := root.Productions[0]
	if expr.LHS != "expr" || len(expr.Alternatives) != 4 {
		t.Fatalf("unexpected production: %+v", expr)
	}
	if expr.Alternatives[0].Action != "add" {
		t.Fatalf("want action add, got %q", expr.Alternatives[0].Action)
	}
	if expr.Alternatives[1].PrecSym == nil || expr.Alternatives[1].PrecSym.Text != "*" {
		t.Fatalf("want precedence anchor *, got %+v", expr.Alternatives[1].PrecSym)
	}
	if len(expr.Alternatives[2].Elements) != 1 || expr.Alternatives[2].Elements[0].Kind != SymbolNodeKindID {
		t.Fatalf("unexpected alternative: %+v", expr.Alternatives[2])
	}
	if expr.Alternatives[3].Elements[0].Kind != SymbolNodeKindError {
		t.Fatalf("the error keyword must map to the error symbol node: %+v", expr.Alternatives[3])
	}

	intProd := root.Productions[1]
	if len(intProd.Alternatives) != 1 || intProd.Alternatives[0].Elements[0].Kind != SymbolNodeKindPattern {
		t.Fatalf("unexpected production: %+v", intProd)
	}
}

func TestParseEmptyAlternative(t *testing.T) {
	root, err := Parse(`g { list: list 'x' | ; }`)
	if err != nil {
		t.Fatal(err)
	}
	alts := root.Productions[0].Alternatives
	if len(alts) != 2 {
		t.Fatalf("want 2 alternatives, got %v", len(alts))
	}
	if len(alts[1].Elements) != 0 {
		t.Fatalf("the second alternative must be empty, got %+v", alts[1])
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		want    *SyntaxError
	}{
		{
			caption: "no grammar name",
			src:     `{ a: 'x'; }`,
			want:    synErrNoGrammarName,
		},
		{
			caption: "no grammar body",
			src:     `g`,
			want:    synErrNoGrammarBody,
		},
		{
			caption: "missing closing brace",
			src:     `g { a: 'x';`,
			want:    synErrUnclosedGrammar,
		},
		{
			caption: "missing semicolon",
			src:     `g { a: 'x' }`,
			want:    synErrNoSemicolon,
		},
		{
			caption: "missing semicolon after associativity",
			src:     `g { %left 'x' a: 'x'; }`,
			want:    synErrNoSemicolon,
		},
		{
			caption: "missing action identifier",
			src:     `g { a: 'x' []; }`,
			want:    synErrNoActionID,
		},
		{
			caption: "missing action closing bracket",
			src:     `g { a: 'x' [act; }`,
			want:    synErrUnclosedAction,
		},
		{
			caption: "missing precedence symbol",
			src:     `g { a: 'x' %precedence; }`,
			want:    synErrNoPrecedenceSym,
		},
		{
			caption: "trailing text",
			src:     `g { a: 'x'; } leftover`,
			want:    synErrUnexpectedToken,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			_, err := Parse(tt.src)
			if err == nil {
				t.Fatalf("an error must occur")
			}
			specErr := &verr.SpecError{}
			if !errors.As(err, &specErr) {
				t.Fatalf("want a SpecError, got %T (%v)", err, err)
			}
			if specErr.Cause != tt.want {
				t.Fatalf("want %v, got %v", tt.want, specErr.Cause)
			}
		})
	}
}

func TestParseLocatedErrors(t *testing.T) {
	_, err := Parse("g {\n  a: 'x'\n}")
	specErr := &verr.SpecError{}
	if !errors.As(err, &specErr) {
		t.Fatalf("want a SpecError, got %v", err)
	}
	if specErr.Row != 3 {
		t.Fatalf("the error must point at row 3, got %v", specErr.Row)
	}
}

func TestParseUnterminatedPattern(t *testing.T) {
	_, err := Parse("g { a: 'x\n'; }")
	if err == nil {
		t.Fatalf("an unterminated literal must be fatal")
	}
}
