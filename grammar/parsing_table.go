package grammar

import (
	"fmt"
	"io"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// StartRuleName is the synthetic augmented start non-terminal. Reducing it
// accepts the input.
const StartRuleName = "T"

// startTargetName is the rule the augmented start production derives.
const startTargetName = "program"

// Reduction replaces the topmost PopCount stack entries by the named
// non-terminal. PopCount equals the length of the reduced alternative.
type Reduction struct {
	PopCount int
	RuleName string
}

// ParseRules is the action row of one state: where each target shifts to,
// and which reductions the state offers.
type ParseRules struct {
	State      int
	Shifts     *linkedhashmap.Map // Target -> int, in first-seen order
	Reductions []Reduction
}

// ShiftTo returns the successor state for a target, if the state shifts on
// it.
func (r *ParseRules) ShiftTo(target Target) (int, bool) {
	v, ok := r.Shifts.Get(target)
	if !ok {
		return 0, false
	}
	return v.(int), true
}

// Table is the parse table of a grammar: one ParseRules row per state of the
// canonical item-set collection. It is built once and read-only afterwards.
type Table struct {
	States  []*ParseRules
	grammar *Grammar
	sets    []*itemSet
}

// Grammar returns the grammar the table was built from, including the
// augmented start rule.
func (t *Table) Grammar() *Grammar {
	return t.grammar
}

// BuildParseTable constructs the canonical collection of item sets and the
// shift/reduce table over it.
//
// The construction starts from the closure of the augmented start item and
// expands states in creation order. For every target after a dot, the dot is
// advanced on all matching items and the closure of the result either reuses
// an existing state with the same items or becomes a new one. Items and
// successor targets are always iterated in insertion order, so the numbering
// of states is reproducible for a given grammar.
func BuildParseTable(g *Grammar) (*Table, error) {
	if _, ok := g.Rule(startTargetName); !ok {
		return nil, fmt.Errorf("the grammar does not define the rule %q", startTargetName)
	}
	if _, ok := g.Rule(StartRuleName); !ok {
		g.add(&Rule{
			Name:         StartRuleName,
			Alternatives: []Alternative{{NewNonTerminalTarget(startTargetName)}},
		})
	}

	tracer().Debugf("building the parse table")

	table := &Table{grammar: g}
	stateNums := map[string]int{}

	initial := closure(g, newItemSet(DottedItem{RuleName: StartRuleName}))
	table.sets = []*itemSet{initial}
	stateNums[initial.fingerprint()] = 0

	for i := 0; i < len(table.sets); i++ {
		state := table.sets[i]
		rules := &ParseRules{
			State:  i,
			Shifts: linkedhashmap.New(),
		}

		// Successor targets in order of first appearance after a dot, and
		// reductions for every item with the dot at the end.
		nextTargets := newTargetSet()
		for _, it := range state.items() {
			target, ok := it.AfterDot(g)
			if !ok {
				addReduction(rules, Reduction{
					PopCount: len(it.alternative(g)),
					RuleName: it.RuleName,
				})
				continue
			}
			nextTargets.add(target)
		}

		for _, target := range nextTargets.targets() {
			kernel := newItemSet()
			for _, it := range state.items() {
				if after, ok := it.AfterDot(g); ok && after == target {
					kernel.add(it.advanced())
				}
			}
			next := closure(g, kernel)

			fp := next.fingerprint()
			num, known := stateNums[fp]
			if !known {
				num = len(table.sets)
				stateNums[fp] = num
				table.sets = append(table.sets, next)
			}
			rules.Shifts.Put(target, num)
		}

		tracer().Debugf("state %d: %d items, %d shifts, %d reductions",
			i, state.size(), rules.Shifts.Size(), len(rules.Reductions))
		table.States = append(table.States, rules)
	}

	return table, nil
}

// closure expands an item set with an item for every alternative of every
// non-terminal that appears immediately after a dot, repeatedly, until
// nothing new is added. The input set is extended in place and returned.
func closure(g *Grammar, set *itemSet) *itemSet {
	items := set.items()
	for n := 0; n < len(items); n++ {
		target, ok := items[n].AfterDot(g)
		if !ok || target.IsTerminal() {
			continue
		}

		rule, ok := g.Rule(target.Str)
		if !ok {
			continue
		}
		for alt := range rule.Alternatives {
			it := DottedItem{RuleName: rule.Name, Alt: alt}
			if set.add(it) {
				items = append(items, it)
			}
		}
	}
	return set
}

func addReduction(rules *ParseRules, r Reduction) {
	for _, have := range rules.Reductions {
		if have == r {
			return
		}
	}
	rules.Reductions = append(rules.Reductions, r)
}

// Dump writes a readable rendering of every state, its items, its shifts,
// and its reductions.
func (t *Table) Dump(w io.Writer) {
	for i, rules := range t.States {
		fmt.Fprintf(w, "[---------------= %d =---------------]\n", i)
		for _, it := range t.sets[i].items() {
			fmt.Fprintf(w, "%v\n", it.Describe(t.grammar))
		}
		if rules.Shifts.Size() > 0 {
			fmt.Fprintln(w, "Shifts:")
			it := rules.Shifts.Iterator()
			for it.Next() {
				fmt.Fprintf(w, "  See %v? SHIFT and goto state %d\n", it.Key().(Target), it.Value().(int))
			}
		}
		if len(rules.Reductions) > 0 {
			fmt.Fprintln(w, "Reductions:")
			for _, r := range rules.Reductions {
				fmt.Fprintf(w, "  REDUCE %d -> %s\n", r.PopCount, r.RuleName)
			}
		}
	}
}

// StateItems exposes the items of a state for inspection.
func (t *Table) StateItems(state int) []DottedItem {
	if state < 0 || state >= len(t.sets) {
		return nil
	}
	return t.sets[state].items()
}
