package grammar

import (
	"strings"
)

// FirstSet holds, for every non-terminal, the set of terminal targets that
// may begin one of its derivations, plus whether the non-terminal has an
// empty alternative.
type FirstSet struct {
	sets     map[string]*targetSet
	nullable map[string]bool
	order    []string
}

// First returns FIRST(name) in insertion order.
func (f *FirstSet) First(name string) []Target {
	s, ok := f.sets[name]
	if !ok {
		return nil
	}
	return s.targets()
}

// Nullable reports whether the non-terminal derives the empty string via one
// of its own alternatives.
func (f *FirstSet) Nullable(name string) bool {
	return f.nullable[name]
}

// Names lists the non-terminals in rule definition order.
func (f *FirstSet) Names() []string {
	return f.order
}

func (f *FirstSet) String() string {
	var b strings.Builder
	for _, name := range f.order {
		b.WriteString("FIRST(" + name + ") = {")
		for i, t := range f.First(name) {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(t.String())
		}
		b.WriteString("}\n")
	}
	return b.String()
}

// GenFirstSets computes the FIRST sets of a grammar.
//
// Seeding walks every alternative left to right: a terminal is added and
// ends the walk, a non-terminal contributes a dependency edge and ends the
// walk unless it allows the empty alternative. The dependency edges are then
// propagated to the least fixed point; re-running the loop on the result
// changes nothing.
func GenFirstSets(g *Grammar) *FirstSet {
	fst := &FirstSet{
		sets:     map[string]*targetSet{},
		nullable: map[string]bool{},
		order:    g.Names(),
	}
	deps := newDependencyGraph()

	for _, name := range g.Names() {
		rule, _ := g.Rule(name)
		set := newTargetSet()
		fst.sets[name] = set

		for _, alt := range rule.Alternatives {
			if len(alt) == 0 {
				fst.nullable[name] = true
				continue
			}
			for _, t := range alt {
				if t.IsTerminal() {
					set.add(t)
					break
				}

				// Never record a dependency of a rule on itself.
				if t.Str != name {
					deps.add(name, t.Str)
				}

				dep, ok := g.Rule(t.Str)
				if !ok || !dep.allowsEmpty() {
					break
				}
			}
		}
	}

	for {
		more := false
		for _, edge := range deps.edges() {
			if fst.sets[edge.from].merge(fst.sets[edge.to]) {
				more = true
			}
		}
		if !more {
			break
		}
	}

	return fst
}

// dependencyGraph records set-inclusion edges in first-seen order.
type dependencyGraph struct {
	seen  map[dependency]struct{}
	order []dependency
}

type dependency struct {
	from string
	to   string
}

func newDependencyGraph() *dependencyGraph {
	return &dependencyGraph{seen: map[dependency]struct{}{}}
}

func (d *dependencyGraph) add(from, to string) {
	e := dependency{from: from, to: to}
	if _, ok := d.seen[e]; ok {
		return
	}
	d.seen[e] = struct{}{}
	d.order = append(d.order, e)
}

func (d *dependencyGraph) edges() []dependency {
	return d.order
}
