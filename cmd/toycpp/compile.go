package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/toycpp/toycpp/ast"
	"github.com/toycpp/toycpp/codegen"
	"github.com/toycpp/toycpp/grammar"
	"github.com/toycpp/toycpp/lexer"
	"github.com/toycpp/toycpp/parser"
)

const defaultOutputPath = "/tmp/toycpp_output.asm"

var compileFlags = struct {
	grammar    *string
	output     *string
	check      *bool
	noAssemble *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile <source file>",
		Short:   "Compile a source file to a FASM ELF64 executable",
		Example: `  toycpp compile main.cpp`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCompile,
	}
	compileFlags.grammar = cmd.Flags().StringP("grammar", "g", "grammar.rule", "grammar file for the front-end check")
	compileFlags.output = cmd.Flags().StringP("output", "o", defaultOutputPath, "assembly output path")
	compileFlags.check = cmd.Flags().Bool("check", false, "run the grammar-driven parser over the source first")
	compileFlags.noAssemble = cmd.Flags().Bool("no-assemble", false, "write the assembly but do not invoke fasm")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	srcPath := args[0]
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("cannot read the source file %s: %w", srcPath, err)
	}

	if *compileFlags.check {
		g, err := grammar.Load(*compileFlags.grammar)
		if err != nil {
			return err
		}
		table, err := grammar.BuildParseTable(g)
		if err != nil {
			return err
		}
		if _, err := parser.Parse(table, lexer.New(srcPath, string(src))); err != nil {
			return err
		}
	}

	prog, err := ast.Parse(lexer.New(srcPath, string(src)))
	if err != nil {
		return err
	}

	assembly, err := codegen.Compile(prog)
	if err != nil {
		return err
	}

	outPath := *compileFlags.output
	if err := os.WriteFile(outPath, []byte(assembly), 0644); err != nil {
		return fmt.Errorf("cannot write the assembly to %s: %w", outPath, err)
	}

	if *compileFlags.noAssemble {
		return nil
	}

	fasm := exec.Command("fasm", outPath, "executable")
	fasm.Stdout = os.Stdout
	fasm.Stderr = os.Stderr
	if err := fasm.Run(); err != nil {
		return fmt.Errorf("fasm failed: %w", err)
	}
	return nil
}
