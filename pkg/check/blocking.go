package check

import (
	"github.com/causallab/dagcheck/pkg/causal"
	"github.com/causallab/dagcheck/pkg/causal/paths"
)

// ConditioningSet is a set of canonical variable names being conditioned on.
type ConditioningSet map[string]bool

// NewConditioningSet canonicalizes names into a ConditioningSet.
func NewConditioningSet(names []string) ConditioningSet {
	set := make(ConditioningSet, len(names))
	for _, n := range names {
		set[causal.CanonicalName(n)] = true
	}
	return set
}

// Blocked decides whether a path is blocked by the conditioning set, per
// the collider-aware blocking rule (Pearl's d-separation restricted to the
// two-endpoint case):
//
// The path is blocked iff, among its interior nodes,
//
//	(a) some chain/fork node is in the conditioning set, or
//	(b) some collider node, together with all of its descendants in the full
//	    directed graph, is entirely absent from the conditioning set.
//
// With an empty conditioning set only collider-containing paths are blocked.
func Blocked(g *causal.Graph, p paths.Path, cond ConditioningSet) bool {
	for i := 1; i < len(p.Nodes)-1; i++ {
		node := p.Nodes[i]
		if p.IsCollider(i) {
			if !colliderOpened(g, node, cond) {
				return true
			}
		} else if cond[node] {
			return true
		}
	}
	return false
}

// colliderOpened reports whether conditioning opened the collider: the
// collider itself or any of its descendants is in the conditioning set.
func colliderOpened(g *causal.Graph, collider string, cond ConditioningSet) bool {
	if cond[collider] {
		return true
	}
	if len(cond) == 0 {
		return false
	}
	for desc := range g.Descendants(collider) {
		if cond[desc] {
			return true
		}
	}
	return false
}
