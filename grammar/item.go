package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/linkedhashset"
)

// DottedItem is a rule alternative annotated with a parsing position. The
// alternative is referenced by its index within the rule, so items stay valid
// references into the grammar without aliasing it.
type DottedItem struct {
	RuleName string
	Alt      int
	Dot      int
}

func (it DottedItem) alternative(g *Grammar) Alternative {
	rule, ok := g.Rule(it.RuleName)
	if !ok {
		return nil
	}
	return rule.Alternatives[it.Alt]
}

// AfterDot returns the target immediately after the dot, if any.
func (it DottedItem) AfterDot(g *Grammar) (Target, bool) {
	alt := it.alternative(g)
	if it.Dot >= len(alt) {
		return Target{}, false
	}
	return alt[it.Dot], true
}

// BeforeDot returns the target immediately before the dot, if any.
func (it DottedItem) BeforeDot(g *Grammar) (Target, bool) {
	if it.Dot < 1 {
		return Target{}, false
	}
	return it.alternative(g)[it.Dot-1], true
}

// Reducible reports whether the dot sits at the end of the alternative.
func (it DottedItem) Reducible(g *Grammar) bool {
	return it.Dot >= len(it.alternative(g))
}

// advanced returns the item with the dot moved one target to the right.
func (it DottedItem) advanced() DottedItem {
	return DottedItem{RuleName: it.RuleName, Alt: it.Alt, Dot: it.Dot + 1}
}

func (it DottedItem) Describe(g *Grammar) string {
	var b strings.Builder
	b.WriteString(it.RuleName + " ->")
	alt := it.alternative(g)
	for i, t := range alt {
		if i == it.Dot {
			b.WriteString(" .")
		}
		b.WriteString(" " + t.String())
	}
	if it.Dot >= len(alt) {
		b.WriteString(" .")
	}
	return b.String()
}

// itemSet is an insertion-ordered, de-duplicated collection of dotted items.
// Two item sets are equal iff they contain the same items; insertion order is
// preserved for traversal but carries no meaning for equality.
type itemSet struct {
	set *linkedhashset.Set
}

func newItemSet(items ...DottedItem) *itemSet {
	s := &itemSet{set: linkedhashset.New()}
	for _, it := range items {
		s.add(it)
	}
	return s
}

func (s *itemSet) add(it DottedItem) bool {
	if s.set.Contains(it) {
		return false
	}
	s.set.Add(it)
	return true
}

func (s *itemSet) contains(it DottedItem) bool {
	return s.set.Contains(it)
}

func (s *itemSet) size() int {
	return s.set.Size()
}

func (s *itemSet) items() []DottedItem {
	values := s.set.Values()
	items := make([]DottedItem, len(values))
	for i, v := range values {
		items[i] = v.(DottedItem)
	}
	return items
}

func (s *itemSet) equal(other *itemSet) bool {
	if s.size() != other.size() {
		return false
	}
	for _, it := range s.items() {
		if !other.contains(it) {
			return false
		}
	}
	return true
}

// fingerprint is the structural identity of an item set: the hash of its
// items in a canonical order. Equal sets fingerprint identically no matter
// their insertion order.
func (s *itemSet) fingerprint() string {
	items := s.items()
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.RuleName != b.RuleName {
			return a.RuleName < b.RuleName
		}
		if a.Alt != b.Alt {
			return a.Alt < b.Alt
		}
		return a.Dot < b.Dot
	})
	return fmt.Sprintf("%x", structhash.Sha1(struct {
		Items []DottedItem
	}{Items: items}, 1))
}
