package error

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCompileErrorFormat(t *testing.T) {
	err := &CompileError{
		Cause:      errors.New("unexpected token"),
		File:       "main.cpp",
		StartLine:  3,
		StartCol:   5,
		EndLine:    3,
		EndCol:     11,
		SourceLine: "    return 0;",
		Code:       ExitParse,
	}

	got := err.Error()
	if !strings.HasPrefix(got, "main.cpp:3:5: error: unexpected token") {
		t.Fatalf("unexpected header: %v", got)
	}
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("want a three-line report, got %v", got)
	}
	if lines[1] != "      return 0;" {
		t.Fatalf("unexpected source line: %q", lines[1])
	}
	if lines[2] != "      ^^^^^^" {
		t.Fatalf("unexpected caret row: %q", lines[2])
	}
}

func TestCompileErrorWithoutLocation(t *testing.T) {
	err := &CompileError{Cause: errors.New("boom")}
	if err.Error() != "error: boom" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		caption string
		err     error
		want    int
	}{
		{caption: "nil means success", err: nil, want: 0},
		{caption: "a plain error is a generic failure", err: errors.New("x"), want: ExitFailure},
		{caption: "a compile error carries its code", err: &CompileError{Cause: errors.New("x"), Code: ExitReduceReduce}, want: ExitReduceReduce},
		{
			caption: "a wrapped compile error still carries its code",
			err:     fmt.Errorf("outer: %w", &CompileError{Cause: errors.New("x"), Code: ExitUnresolvedRules}),
			want:    ExitUnresolvedRules,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
		})
	}
}
