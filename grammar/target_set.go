package grammar

import (
	"github.com/emirpasic/gods/sets/linkedhashset"
)

// targetSet is an insertion-ordered set of targets. Iteration order is the
// order of first insertion, which keeps every enumeration over the set
// deterministic.
type targetSet struct {
	set *linkedhashset.Set
}

func newTargetSet(targets ...Target) *targetSet {
	s := &targetSet{set: linkedhashset.New()}
	for _, t := range targets {
		s.add(t)
	}
	return s
}

// add reports whether the target was not present before.
func (s *targetSet) add(t Target) bool {
	if s.set.Contains(t) {
		return false
	}
	s.set.Add(t)
	return true
}

// merge unions another set into this one and reports whether anything was
// added.
func (s *targetSet) merge(other *targetSet) bool {
	if other == nil {
		return false
	}
	changed := false
	for _, t := range other.targets() {
		if s.add(t) {
			changed = true
		}
	}
	return changed
}

func (s *targetSet) contains(t Target) bool {
	return s.set.Contains(t)
}

func (s *targetSet) size() int {
	return s.set.Size()
}

func (s *targetSet) targets() []Target {
	values := s.set.Values()
	targets := make([]Target, len(values))
	for i, v := range values {
		targets[i] = v.(Target)
	}
	return targets
}
