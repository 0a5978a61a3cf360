package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "parsepact",
	Short: "Generate a tokenizer DFA and an LALR(1) parsing table from a grammar",
	Long: `parsepact compiles a grammar annotated with token regexes, precedence,
associativity, whitespace rules and action tags into a portable artifact
holding a tokenizer DFA and an LALR(1) shift/reduce table, and can drive
the generated parser over an input stream.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	return rootCmd.Execute()
}
