package grammar

import (
	"strings"
)

// FollowSet holds, for every non-terminal, the set of terminal targets that
// may appear immediately after one of its derivations.
type FollowSet struct {
	sets  map[string]*targetSet
	order []string
}

// Follow returns FOLLOW(name) in insertion order.
func (f *FollowSet) Follow(name string) []Target {
	s, ok := f.sets[name]
	if !ok {
		return nil
	}
	return s.targets()
}

// Names lists the non-terminals in rule definition order.
func (f *FollowSet) Names() []string {
	return f.order
}

func (f *FollowSet) String() string {
	var b strings.Builder
	for _, name := range f.order {
		b.WriteString("FOLLOW(" + name + ") = {")
		for i, t := range f.Follow(name) {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(t.String())
		}
		b.WriteString("}\n")
	}
	return b.String()
}

// GenFollowSets computes the FOLLOW sets of a grammar from its FIRST sets.
//
// For every occurrence of a non-terminal N inside an alternative of a rule R,
// the targets after the occurrence are walked left to right: a terminal joins
// FOLLOW(N) and ends the walk; an occurrence of N itself ends the walk (the
// outer iteration visits it in its own right); any other non-terminal T
// contributes FIRST(T) and, unless T allows the empty alternative, ends the
// walk. When the walk falls off the end of the alternative, FOLLOW(N) gains a
// dependency on FOLLOW(R). Dependencies then propagate to the fixed point.
func GenFollowSets(g *Grammar, fst *FirstSet) *FollowSet {
	flw := &FollowSet{
		sets:  map[string]*targetSet{},
		order: g.Names(),
	}
	deps := newDependencyGraph()

	for _, name := range g.Names() {
		flw.sets[name] = newTargetSet()
	}

	for _, name := range g.Names() {
		set := flw.sets[name]

		for _, ruleName := range g.Names() {
			rule, _ := g.Rule(ruleName)

			for _, alt := range rule.Alternatives {
				for i, t := range alt {
					if t.IsTerminal() || t.Str != name {
						continue
					}

					if i == len(alt)-1 {
						deps.add(name, ruleName)
						continue
					}

					for j := i + 1; j < len(alt); j++ {
						next := alt[j]

						if next.IsTerminal() {
							set.add(next)
							break
						}
						if next.Str == name {
							// The outer iteration handles this occurrence.
							break
						}

						for _, ft := range fst.First(next.Str) {
							set.add(ft)
						}

						dep, ok := g.Rule(next.Str)
						if !ok || !dep.allowsEmpty() {
							break
						}
						if j == len(alt)-1 {
							deps.add(name, ruleName)
						}
					}
				}
			}
		}
	}

	for {
		more := false
		for _, edge := range deps.edges() {
			if flw.sets[edge.from].merge(flw.sets[edge.to]) {
				more = true
			}
		}
		if !more {
			break
		}
	}

	return flw
}
