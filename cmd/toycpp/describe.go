package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/toycpp/toycpp/grammar"
)

var describeFlags = struct {
	states *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "describe <grammar file>",
		Short:   "Print the FIRST/FOLLOW sets and state table of a grammar",
		Example: `  toycpp describe grammar.rule`,
		Args:    cobra.ExactArgs(1),
		RunE:    runDescribe,
	}
	describeFlags.states = cmd.Flags().Bool("states", true, "include the state table")
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	g, err := grammar.Load(args[0])
	if err != nil {
		return err
	}

	longest := 0
	for _, name := range g.Names() {
		if len(name) > longest {
			longest = len(name)
		}
	}

	fst := grammar.GenFirstSets(g)
	fmt.Println("===================================")
	fmt.Println("FIRST sets:")
	for _, name := range fst.Names() {
		fmt.Printf("  %-*s = %s\n", longest+8, "FIRST("+name+")", targetList(fst.First(name)))
	}

	flw := grammar.GenFollowSets(g, fst)
	fmt.Println("===================================")
	fmt.Println("FOLLOW sets:")
	for _, name := range flw.Names() {
		fmt.Printf("  %-*s = %s\n", longest+9, "FOLLOW("+name+")", targetList(flw.Follow(name)))
	}

	if !*describeFlags.states {
		return nil
	}

	table, err := grammar.BuildParseTable(g)
	if err != nil {
		return err
	}
	fmt.Println("===================================")
	table.Dump(os.Stdout)
	return nil
}

func targetList(targets []grammar.Target) string {
	s := "{"
	for i, t := range targets {
		if i > 0 {
			s += ", "
		}
		s += t.String()
	}
	return s + "}"
}
