package grammar

import (
	"testing"
)

func TestDottedItem(t *testing.T) {
	g, err := Parse("test.rule", `program -> expr Eof ; expr -> 'a' ;`)
	if err != nil {
		t.Fatal(err)
	}

	it := DottedItem{RuleName: "program", Alt: 0, Dot: 0}
	if _, ok := it.BeforeDot(g); ok {
		t.Fatal("no target before the dot at position 0")
	}
	after, ok := it.AfterDot(g)
	if !ok || after != NewNonTerminalTarget("expr") {
		t.Fatalf("want expr after the dot, got %v", after)
	}

	it = it.advanced()
	before, ok := it.BeforeDot(g)
	if !ok || before != NewNonTerminalTarget("expr") {
		t.Fatalf("want expr before the dot, got %v", before)
	}
	after, ok = it.AfterDot(g)
	if !ok || after != NewTerminalTarget(TermEof) {
		t.Fatalf("want Eof after the dot, got %v", after)
	}

	it = it.advanced()
	if _, ok := it.AfterDot(g); ok {
		t.Fatal("no target after the dot at the end")
	}
	if !it.Reducible(g) {
		t.Fatal("an item with the dot at the end is reducible")
	}
}

func TestItemSetDeduplicates(t *testing.T) {
	s := newItemSet()
	it := DottedItem{RuleName: "expr", Alt: 0, Dot: 1}
	if !s.add(it) {
		t.Fatal("first insertion must report a change")
	}
	if s.add(it) {
		t.Fatal("second insertion must not report a change")
	}
	if s.size() != 1 {
		t.Fatalf("want size 1, got %v", s.size())
	}
}

func TestItemSetIdentity(t *testing.T) {
	a := newItemSet(
		DottedItem{RuleName: "expr", Alt: 0, Dot: 0},
		DottedItem{RuleName: "term", Alt: 1, Dot: 2},
	)
	b := newItemSet(
		DottedItem{RuleName: "term", Alt: 1, Dot: 2},
		DottedItem{RuleName: "expr", Alt: 0, Dot: 0},
	)
	c := newItemSet(
		DottedItem{RuleName: "expr", Alt: 0, Dot: 0},
	)

	if !a.equal(b) || a.fingerprint() != b.fingerprint() {
		t.Fatal("sets with the same items must be equal regardless of insertion order")
	}
	if a.equal(c) || a.fingerprint() == c.fingerprint() {
		t.Fatal("sets with different items must not be equal")
	}

	// Insertion order is still observable through traversal.
	items := b.items()
	if items[0].RuleName != "term" {
		t.Fatalf("unexpected traversal order: %v", items)
	}
}
