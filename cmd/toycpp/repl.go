package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/toycpp/toycpp/grammar"
	"github.com/toycpp/toycpp/lexer"
	"github.com/toycpp/toycpp/parser"
)

var replFlags = struct {
	grammar *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Inspect token streams and parse trees interactively",
		Long: `repl reads lines of source text. Every line is tokenized and its token
stream printed; when a grammar is loaded, the line is also parsed and the
resulting tree rendered. Quit with <ctrl>D or 'quit'.`,
		Args: cobra.NoArgs,
		RunE: runRepl,
	}
	replFlags.grammar = cmd.Flags().StringP("grammar", "g", "", "grammar file to parse lines with")
	rootCmd.AddCommand(cmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	initDisplay()

	var table *grammar.Table
	if *replFlags.grammar != "" {
		g, err := grammar.Load(*replFlags.grammar)
		if err != nil {
			return err
		}
		table, err = grammar.BuildParseTable(g)
		if err != nil {
			return err
		}
	}

	pterm.Info.Println("Welcome to the toycpp REPL")
	pterm.Info.Println("Quit with <ctrl>D")

	rl, err := readline.New("toycpp> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if line == "quit" {
			break
		}

		if err := showTokens(line); err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if table != nil {
			showTree(table, line)
		}
	}
	fmt.Println("Good bye!")
	return nil
}

func showTokens(line string) error {
	lex := lexer.New("<repl>", line)
	var b strings.Builder
	for {
		tok, err := lex.Next()
		if err != nil {
			return err
		}
		if tok.Kind == lexer.Eof {
			break
		}
		fmt.Fprintf(&b, " %v<%s>", tok.Kind, tok.Lexeme)
	}
	fmt.Printf("tokens:%s\n", b.String())
	return nil
}

func showTree(table *grammar.Table, line string) {
	tree, err := parser.Parse(table, lexer.New("<repl>", line))
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}

	root := pterm.NewTreeFromLeveledList(leveledNodes(tree, nil, 0))
	pterm.DefaultTree.WithRoot(root).Render()
}

func leveledNodes(node *parser.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	text := node.Name
	if node.Terminal {
		text = "'" + node.Name + "'"
	}
	ll = append(ll, pterm.LeveledListItem{Level: level, Text: text})
	for _, child := range node.Children {
		ll = leveledNodes(child, ll, level+1)
	}
	return ll
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
