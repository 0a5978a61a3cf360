package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/parsepact/parsepact/driver/lexer"
	"github.com/parsepact/parsepact/driver/parser"
	"github.com/parsepact/parsepact/spec"
)

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar.json> [input]",
		Short:   "Parse an input stream and print the shift and reduction sequence",
		Example: `  parsepact parse grammar.json input.txt`,
		Args:    cobra.RangeArgs(1, 2),
		RunE:    runParse,
	}
	rootCmd.AddCommand(cmd)
}

// printingSemanticActionSet writes every shift and every tagged
// reduction to the output.
type printingSemanticActionSet struct {
	w io.Writer
	g *spec.CompiledGrammar
}

func (a *printingSemanticActionSet) Shift(tok *lexer.Token) {
	fmt.Fprintf(a.w, "shift %q\n", tok.Lexeme)
}

func (a *printingSemanticActionSet) Reduce(prod int, action string) {
	lhs := a.g.SymbolName(a.g.ProductionLHS(prod))
	if action != "" {
		fmt.Fprintf(a.w, "reduce %v [%v]\n", lhs, action)
		return
	}
	fmt.Fprintf(a.w, "reduce %v\n", lhs)
}

func (a *printingSemanticActionSet) Accept() {
	fmt.Fprintln(a.w, "accept")
}

func runParse(cmd *cobra.Command, args []string) error {
	b, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	cg := &spec.CompiledGrammar{}
	err = json.Unmarshal(b, cg)
	if err != nil {
		return fmt.Errorf("invalid compiled grammar: %w", err)
	}

	var src io.Reader = os.Stdin
	if len(args) > 1 {
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}

	p, err := parser.NewParser(cg, src, parser.WithSemanticAction(&printingSemanticActionSet{
		w: os.Stdout,
		g: cg,
	}))
	if err != nil {
		return err
	}
	return p.Parse()
}
