package grammar

import (
	"testing"
)

type firstExpectation struct {
	lhs      string
	targets  []Target
	nullable bool
}

func TestGenFirstSets(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		first   []firstExpectation
	}{
		{
			caption: "a nullable rule passes FIRST through to its successor",
			src:     `S -> A 'b' ; A -> 'a' | Empty ;`,
			first: []firstExpectation{
				{lhs: "S", targets: []Target{NewLiteralTarget("b"), NewLiteralTarget("a")}},
				{lhs: "A", targets: []Target{NewLiteralTarget("a")}, nullable: true},
			},
		},
		{
			caption: "left recursion does not loop",
			src:     `expr -> expr '+' term | term ; term -> IntegerLiteral | Identifier ;`,
			first: []firstExpectation{
				{lhs: "expr", targets: []Target{
					NewTerminalTarget(TermIntegerLiteral),
					NewTerminalTarget(TermIdentifier),
				}},
				{lhs: "term", targets: []Target{
					NewTerminalTarget(TermIntegerLiteral),
					NewTerminalTarget(TermIdentifier),
				}},
			},
		},
		{
			caption: "chained dependencies propagate transitively",
			src:     `a -> b ; b -> c ; c -> 'x' ;`,
			first: []firstExpectation{
				{lhs: "a", targets: []Target{NewLiteralTarget("x")}},
				{lhs: "b", targets: []Target{NewLiteralTarget("x")}},
				{lhs: "c", targets: []Target{NewLiteralTarget("x")}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g, err := Parse("test.rule", tt.src)
			if err != nil {
				t.Fatal(err)
			}
			fst := GenFirstSets(g)

			for _, want := range tt.first {
				got := fst.First(want.lhs)
				if !sameTargets(got, want.targets) {
					t.Fatalf("FIRST(%v): want %v, got %v", want.lhs, want.targets, got)
				}
				if fst.Nullable(want.lhs) != want.nullable {
					t.Fatalf("nullable(%v): want %v, got %v", want.lhs, want.nullable, fst.Nullable(want.lhs))
				}
			}
		})
	}
}

func TestFirstContainsOnlyTerminals(t *testing.T) {
	g, err := Parse("test.rule", `S -> A 'b' ; A -> B | Empty ; B -> Identifier ;`)
	if err != nil {
		t.Fatal(err)
	}
	fst := GenFirstSets(g)
	for _, name := range fst.Names() {
		for _, target := range fst.First(name) {
			if !target.IsTerminal() {
				t.Fatalf("FIRST(%v) contains the non-terminal %v", name, target)
			}
		}
	}
}

func TestGenFirstSetsIsIdempotent(t *testing.T) {
	src := `S -> A 'b' | S 'c' ; A -> 'a' | Empty ;`
	g, err := Parse("test.rule", src)
	if err != nil {
		t.Fatal(err)
	}
	a := GenFirstSets(g)
	b := GenFirstSets(g)
	for _, name := range g.Names() {
		if !sameTargets(a.First(name), b.First(name)) {
			t.Fatalf("FIRST(%v) differs across runs: %v vs %v", name, a.First(name), b.First(name))
		}
		if a.Nullable(name) != b.Nullable(name) {
			t.Fatalf("nullable(%v) differs across runs", name)
		}
	}
}

// sameTargets compares two target lists as sets.
func sameTargets(got, want []Target) bool {
	if len(got) != len(want) {
		return false
	}
	for _, w := range want {
		found := false
		for _, g := range got {
			if g == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
