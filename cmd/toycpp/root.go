package main

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	trace *string
}{}

var rootCmd = &cobra.Command{
	Use:   "toycpp",
	Short: "Compile a toy C dialect to FASM ELF64 assembly",
	Long: `toycpp is a small ahead-of-time compiler for a C-like toy language.
Its front-end is grammar-driven: a grammar file is turned into an LR parse
table at startup, and a shift/reduce parser produces the concrete parse tree.
A companion path lowers the source to flat-assembler (FASM) ELF64 output.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		gtrace.SyntaxTracer = gologadapter.New()
		tracing.Select("toycpp.grammar").SetTraceLevel(tracing.TraceLevelFromString(*rootFlags.trace))
		tracing.Select("toycpp.parser").SetTraceLevel(tracing.TraceLevelFromString(*rootFlags.trace))
		tracing.Select("toycpp.codegen").SetTraceLevel(tracing.TraceLevelFromString(*rootFlags.trace))
	},
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().String("trace", "Error", "trace level [Debug|Info|Error]")
}

func Execute() error {
	return rootCmd.Execute()
}
