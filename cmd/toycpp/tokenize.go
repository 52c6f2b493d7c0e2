package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/toycpp/toycpp/lexer"
)

func init() {
	cmd := &cobra.Command{
		Use:     "tokenize <file>",
		Short:   "Print the token stream of a file",
		Example: `  toycpp tokenize main.cpp`,
		Args:    cobra.ExactArgs(1),
		RunE:    runTokenize,
	}
	rootCmd.AddCommand(cmd)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read the file %s: %w", path, err)
	}

	lex := lexer.New(path, string(src))
	for {
		tok, err := lex.Next()
		if err != nil {
			return err
		}
		fmt.Printf("%v:%v: %v %q\n", tok.Loc.StartLine, tok.Loc.StartCol, tok.Kind, tok.Lexeme)
		if tok.Kind == lexer.Eof {
			return nil
		}
	}
}
