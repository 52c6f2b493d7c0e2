package error

import (
	"fmt"
	"strings"
)

// Process exit codes for the fatal error classes.
const (
	ExitFailure         = 1
	ExitGrammarSyntax   = 1
	ExitUnresolvedRules = 2
	ExitReduceReduce    = 3
	ExitParse           = 4
)

// CompileError is a fatal, located diagnostic. It carries the source span the
// error refers to and the process exit code its error class maps to.
type CompileError struct {
	Cause error

	File       string
	StartLine  int
	StartCol   int
	EndLine    int
	EndCol     int
	SourceLine string

	Code int
}

func (e *CompileError) Error() string {
	var b strings.Builder
	if e.File != "" {
		fmt.Fprintf(&b, "%v:", e.File)
	}
	if e.StartLine != 0 {
		fmt.Fprintf(&b, "%v:%v:", e.StartLine, e.StartCol)
	}
	if b.Len() > 0 {
		b.WriteString(" ")
	}
	fmt.Fprintf(&b, "error: %v", e.Cause)

	if e.SourceLine != "" {
		fmt.Fprintf(&b, "\n  %v\n  %v", e.SourceLine, e.caret())
	}

	return b.String()
}

func (e *CompileError) Unwrap() error {
	return e.Cause
}

// caret builds the underline row for the offending span. Columns are 1-based;
// the end column is exclusive.
func (e *CompileError) caret() string {
	start := e.StartCol - 1
	end := e.EndCol - 1
	if e.EndLine != e.StartLine || end <= start {
		end = start + 1
	}
	if start > len(e.SourceLine) {
		start = len(e.SourceLine)
	}
	if end > len(e.SourceLine)+1 {
		end = len(e.SourceLine) + 1
	}

	var b strings.Builder
	for i := 0; i < start; i++ {
		b.WriteByte(' ')
	}
	for i := start; i < end; i++ {
		b.WriteByte('^')
	}
	return b.String()
}

// ExitCode maps an error to the process exit code it demands. Any error that
// is not a CompileError exits with the generic failure code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	for err != nil {
		if cerr, ok := err.(*CompileError); ok && cerr.Code != 0 {
			return cerr.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return ExitFailure
}
