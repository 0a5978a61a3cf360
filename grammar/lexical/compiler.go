package lexical

import (
	"fmt"

	"github.com/parsepact/parsepact/grammar/lexical/dfa"
	"github.com/parsepact/parsepact/grammar/lexical/parser"
)

// Compile builds the combined automaton recognizing every entry.
// Entry order is significant: when multiple tokens accept the same
// longest prefix, the entry compiled first wins.
func Compile(entries []*Entry) (*dfa.DFA, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("the lexical specification must have at least one entry")
	}

	var trees []*dfa.TokenTree
	for _, e := range entries {
		var t parser.Tree
		var err error
		if e.Literal {
			t, err = parser.GenLiteralTree(e.Pattern)
		} else {
			t, err = parser.ParseRegex(e.Pattern)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern %q: %w", e.Pattern, err)
		}
		trees = append(trees, &dfa.TokenTree{
			Token: e.Token,
			Tree:  t,
		})
	}

	st, err := dfa.GenSyntaxTree(trees)
	if err != nil {
		return nil, err
	}
	return dfa.GenDFA(st)
}
