package parser

import (
	"errors"
	"testing"
)

// flatten returns the leaf ranges of t in left-to-right order.
func flatten(t Tree) []charRange {
	if from, to, ok := t.Range(); ok {
		return []charRange{{from: from, to: to}}
	}
	if c, ok := t.Optional(); ok {
		return flatten(c)
	}
	if c, ok := t.Repeatable(); ok {
		return flatten(c)
	}
	if c, ok := t.OneOrMore(); ok {
		return flatten(c)
	}
	if l, r, ok := t.Concatenation(); ok {
		return append(flatten(l), flatten(r)...)
	}
	if l, r, ok := t.Alternatives(); ok {
		return append(flatten(l), flatten(r)...)
	}
	return nil
}

func TestParseRegexStructure(t *testing.T) {
	t.Run("single char", func(t *testing.T) {
		tree, err := ParseRegex("a")
		if err != nil {
			t.Fatal(err)
		}
		from, to, ok := tree.Range()
		if !ok || from != 'a' || to != 'a'+1 {
			t.Fatalf("want [a, b), got [%v, %v) (%v)", from, to, ok)
		}
	})

	t.Run("concatenation", func(t *testing.T) {
		tree, err := ParseRegex("ab")
		if err != nil {
			t.Fatal(err)
		}
		if _, _, ok := tree.Concatenation(); !ok {
			t.Fatalf("want a concatenation, got %v", tree)
		}
		leaves := flatten(tree)
		if len(leaves) != 2 || leaves[0].from != 'a' || leaves[1].from != 'b' {
			t.Fatalf("unexpected leaves: %v", leaves)
		}
	})

	t.Run("alternation binds weaker than concatenation", func(t *testing.T) {
		tree, err := ParseRegex("ab|c")
		if err != nil {
			t.Fatal(err)
		}
		l, r, ok := tree.Alternatives()
		if !ok {
			t.Fatalf("want an alternation at the top, got %v", tree)
		}
		if _, _, ok := l.Concatenation(); !ok {
			t.Fatalf("want a concatenation on the left, got %v", l)
		}
		if from, _, ok := r.Range(); !ok || from != 'c' {
			t.Fatalf("want c on the right, got %v", r)
		}
	})

	t.Run("postfix operators", func(t *testing.T) {
		tree, err := ParseRegex("a?")
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := tree.Optional(); !ok {
			t.Fatalf("want an option node, got %v", tree)
		}

		tree, err = ParseRegex("a*")
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := tree.Repeatable(); !ok {
			t.Fatalf("want a repeat node, got %v", tree)
		}

		tree, err = ParseRegex("a+")
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := tree.OneOrMore(); !ok {
			t.Fatalf("want a one-or-more node, got %v", tree)
		}
	})

	t.Run("group", func(t *testing.T) {
		tree, err := ParseRegex("(a|b)c")
		if err != nil {
			t.Fatal(err)
		}
		l, _, ok := tree.Concatenation()
		if !ok {
			t.Fatalf("want a concatenation, got %v", tree)
		}
		if _, _, ok := l.Alternatives(); !ok {
			t.Fatalf("want the group content on the left, got %v", l)
		}
	})

	t.Run("dot excludes the null char", func(t *testing.T) {
		tree, err := ParseRegex(".")
		if err != nil {
			t.Fatal(err)
		}
		from, to, ok := tree.Range()
		if !ok || from != 1 || to != charMax {
			t.Fatalf("want [1, %v), got [%v, %v)", charMax, from, to)
		}
	})

	t.Run("escaped metacharacter", func(t *testing.T) {
		tree, err := ParseRegex(`\+`)
		if err != nil {
			t.Fatal(err)
		}
		from, _, ok := tree.Range()
		if !ok || from != '+' {
			t.Fatalf("want +, got %v", tree)
		}
	})

	t.Run("escaped control char", func(t *testing.T) {
		tree, err := ParseRegex(`\n`)
		if err != nil {
			t.Fatal(err)
		}
		from, _, ok := tree.Range()
		if !ok || from != '\n' {
			t.Fatalf("want LF, got %v", tree)
		}
	})
}

func TestParseRegexBracket(t *testing.T) {
	tests := []struct {
		caption string
		pattern string
		want    []charRange
	}{
		{
			caption: "single chars",
			pattern: "[acb]",
			want:    []charRange{{'a', 'd'}},
		},
		{
			caption: "range is inclusive",
			pattern: "[0-9]",
			want:    []charRange{{'0', '9' + 1}},
		},
		{
			caption: "leading hyphen is literal",
			pattern: "[-x]",
			want:    []charRange{{'-', '-' + 1}, {'x', 'x' + 1}},
		},
		{
			caption: "trailing hyphen is literal",
			pattern: "[x-]",
			want:    []charRange{{'-', '-' + 1}, {'x', 'x' + 1}},
		},
		{
			caption: "negation covers the complement",
			pattern: "[^h]",
			want:    []charRange{{1, 'h'}, {'h' + 1, charMax}},
		},
		{
			caption: "posix class",
			pattern: "[[:digit:]x]",
			want:    []charRange{{'0', '9' + 1}, {'x', 'x' + 1}},
		},
		{
			caption: "word class",
			pattern: "[[:word:]]",
			want:    []charRange{{'0', '9' + 1}, {'A', 'Z' + 1}, {'_', '_' + 1}, {'a', 'z' + 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			tree, err := ParseRegex(tt.pattern)
			if err != nil {
				t.Fatal(err)
			}
			got := flatten(tree)
			if len(got) != len(tt.want) {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("want %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestParseRegexErrors(t *testing.T) {
	tests := []struct {
		pattern string
		want    error
	}{
		{pattern: "", want: synErrEmptyPattern},
		{pattern: "[abc", want: synErrBracketUnclosed},
		{pattern: "+", want: synErrInvalidPattern},
		{pattern: "(a", want: synErrInvalidPattern},
		{pattern: "a)", want: synErrInvalidPattern},
	}
	for _, tt := range tests {
		_, err := ParseRegex(tt.pattern)
		if !errors.Is(err, tt.want) {
			t.Errorf("%q: want %v, got %v", tt.pattern, tt.want, err)
		}
	}
}

func TestGenLiteralTree(t *testing.T) {
	tree, err := GenLiteralTree(`a+\n`)
	if err != nil {
		t.Fatal(err)
	}
	leaves := flatten(tree)
	want := []byte{'a', '+', '\n'}
	if len(leaves) != len(want) {
		t.Fatalf("want %v leaves, got %v", len(want), leaves)
	}
	for i, c := range want {
		if leaves[i].from != c || leaves[i].to != c+1 {
			t.Fatalf("leaf %v: want %q, got %v", i, c, leaves[i])
		}
	}

	if _, err := GenLiteralTree(""); !errors.Is(err, synErrEmptyPattern) {
		t.Fatalf("an empty literal must be rejected, got %v", err)
	}
}
