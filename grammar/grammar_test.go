package grammar

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	cerr "github.com/toycpp/toycpp/error"
)

func TestParse(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		check   func(t *testing.T, g *Grammar)
	}{
		{
			caption: "two rules with terminal classes and literals",
			src:     `program -> function ; function -> BasicType Identifier '(' ')' '{' '}' ;`,
			check: func(t *testing.T, g *Grammar) {
				if len(g.Names()) != 2 {
					t.Fatalf("want 2 rules, got %v", len(g.Names()))
				}
				program, _ := g.Rule("program")
				if len(program.Alternatives) != 1 {
					t.Fatalf("want 1 alternative, got %v", len(program.Alternatives))
				}
				want := Alternative{NewNonTerminalTarget("function")}
				if len(program.Alternatives[0]) != 1 || program.Alternatives[0][0] != want[0] {
					t.Fatalf("unexpected program alternative: %v", program.Alternatives[0])
				}
				function, _ := g.Rule("function")
				alt := function.Alternatives[0]
				if len(alt) != 6 {
					t.Fatalf("want 6 targets, got %v", len(alt))
				}
				if alt[0] != NewTerminalTarget(TermBasicType) || alt[1] != NewTerminalTarget(TermIdentifier) {
					t.Fatalf("unexpected leading targets: %v", alt[:2])
				}
				if alt[2] != NewLiteralTarget("(") || alt[5] != NewLiteralTarget("}") {
					t.Fatalf("unexpected literal targets: %v", alt[2:])
				}
			},
		},
		{
			caption: "Empty makes an empty alternative",
			src:     `program -> list Eof ; list -> list Identifier | Empty ;`,
			check: func(t *testing.T, g *Grammar) {
				list, _ := g.Rule("list")
				if len(list.Alternatives) != 2 {
					t.Fatalf("want 2 alternatives, got %v", len(list.Alternatives))
				}
				if len(list.Alternatives[1]) != 0 {
					t.Fatalf("want an empty alternative, got %v", list.Alternatives[1])
				}
				if !list.allowsEmpty() {
					t.Fatal("list must allow the empty alternative")
				}
			},
		},
		{
			caption: "forward references resolve",
			src:     `program -> stmt ; stmt -> 'x' ;`,
			check: func(t *testing.T, g *Grammar) {
				if _, ok := g.Rule("stmt"); !ok {
					t.Fatal("stmt must be defined")
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			teardown := gotestingadapter.QuickConfig(t, "toycpp.grammar")
			defer teardown()

			g, err := Parse("test.rule", tt.src)
			if err != nil {
				t.Fatal(err)
			}
			tt.check(t, g)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		caption  string
		src      string
		want     error
		wantCode int
	}{
		{
			caption:  "an unresolved rule is fatal",
			src:      `program -> missing ;`,
			want:     ErrUnresolvedRule,
			wantCode: cerr.ExitUnresolvedRules,
		},
		{
			caption:  "a stray token inside a rule body is fatal",
			src:      `program -> stmt + ;`,
			want:     ErrGrammarSyntax,
			wantCode: cerr.ExitGrammarSyntax,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			teardown := gotestingadapter.QuickConfig(t, "toycpp.grammar")
			defer teardown()

			_, err := Parse("test.rule", tt.src)
			if !errors.Is(err, tt.want) {
				t.Fatalf("want %v, got %v", tt.want, err)
			}
			if code := cerr.ExitCode(err); code != tt.wantCode {
				t.Fatalf("want exit code %v, got %v", tt.wantCode, code)
			}
		})
	}
}

func TestUnresolvedRulesAreAllReported(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "toycpp.grammar")
	defer teardown()

	_, err := Parse("test.rule", `program -> foo bar ;`)
	var unresolved *UnresolvedRuleError
	if !errors.As(err, &unresolved) {
		t.Fatalf("want an UnresolvedRuleError, got %v", err)
	}
	if len(unresolved.Names) != 2 || unresolved.Names[0] != "foo" || unresolved.Names[1] != "bar" {
		t.Fatalf("unexpected unresolved names: %v", unresolved.Names)
	}
}

func TestTargetEquality(t *testing.T) {
	if NewLiteralTarget("+") != NewLiteralTarget("+") {
		t.Fatal("equal literals must compare equal")
	}
	if NewLiteralTarget("+") == NewLiteralTarget("-") {
		t.Fatal("different literals must compare unequal")
	}
	if NewTerminalTarget(TermEof) != NewTerminalTarget(TermEof) {
		t.Fatal("equal terminal classes must compare equal")
	}
	if NewNonTerminalTarget("expr") == NewLiteralTarget("expr") {
		t.Fatal("a rule reference never equals a literal")
	}

	// Identifier-class targets carry their payload in the comparison, so a
	// keyword-like identifier is distinguishable from the bare class.
	keywordish := Target{Type: TargetTerminal, Token: TermIdentifier, Str: "override"}
	if keywordish == NewTerminalTarget(TermIdentifier) {
		t.Fatal("an identifier with a payload must not equal the bare class")
	}
}
