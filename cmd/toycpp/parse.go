package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/toycpp/toycpp/grammar"
	"github.com/toycpp/toycpp/lexer"
	"github.com/toycpp/toycpp/parser"
)

var parseFlags = struct {
	grammar *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <source file>",
		Short:   "Parse a source file with the grammar-driven front-end and print the tree",
		Example: `  toycpp parse -g grammar.rule main.cpp`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.grammar = cmd.Flags().StringP("grammar", "g", "grammar.rule", "grammar file")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	g, err := grammar.Load(*parseFlags.grammar)
	if err != nil {
		return err
	}
	table, err := grammar.BuildParseTable(g)
	if err != nil {
		return err
	}

	srcPath := args[0]
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("cannot read the source file %s: %w", srcPath, err)
	}

	tree, err := parser.Parse(table, lexer.New(srcPath, string(src)))
	if err != nil {
		return err
	}

	parser.PrintTree(os.Stdout, tree)
	return nil
}
