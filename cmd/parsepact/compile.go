package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/parsepact/parsepact/grammar"
	"github.com/parsepact/parsepact/spec"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	output *string
	report *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile",
		Short:   "Compile a grammar into a parsing table",
		Example: `  parsepact compile grammar.pact -o grammar.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	compileFlags.report = cmd.Flags().StringP("report", "r", "", "write a description of the generated tables to a file")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	var src []byte
	var err error
	if len(args) > 0 {
		src, err = os.ReadFile(args[0])
	} else {
		src, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return err
	}

	var opts []grammar.CompileOption
	if *compileFlags.report != "" {
		opts = append(opts, grammar.EnableReporting())
	}

	cg, report, err := compileSource(string(src), opts...)
	if err != nil {
		return err
	}

	out, err := json.Marshal(cg)
	if err != nil {
		return err
	}
	if *compileFlags.output != "" {
		err = os.WriteFile(*compileFlags.output, out, 0600)
	} else {
		_, err = fmt.Fprintln(os.Stdout, string(out))
	}
	if err != nil {
		return err
	}

	if *compileFlags.report != "" {
		rep, err := json.Marshal(report)
		if err != nil {
			return err
		}
		err = os.WriteFile(*compileFlags.report, rep, 0600)
		if err != nil {
			return err
		}
	}
	return nil
}

func compileSource(src string, opts ...grammar.CompileOption) (*spec.CompiledGrammar, *spec.Report, error) {
	root, err := spec.Parse(src)
	if err != nil {
		return nil, nil, err
	}
	b := &grammar.GrammarBuilder{
		AST: root,
	}
	gram, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	return grammar.Compile(gram, opts...)
}
