package check

import (
	"slices"

	"github.com/causallab/dagcheck/pkg/causal"
)

// FindCycle runs depth-first cycle detection over the directed graph.
// It returns the first cycle found, as a closed ordered sequence of
// variables (first and last element identical), and true. Traversal visits
// variables in declaration order, so the result is deterministic for a
// given graph. Returns nil, false for acyclic graphs.
func FindCycle(g *causal.Graph) ([]string, bool) {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, g.VariableCount())
	var stack []string
	var cycle []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		color[id] = gray
		stack = append(stack, id)
		for _, child := range g.Children(id) {
			switch color[child] {
			case white:
				if dfs(child) {
					return true
				}
			case gray:
				// Back edge: the cycle is the stack segment from the first
				// occurrence of child, closed by child itself.
				at := slices.Index(stack, child)
				cycle = append(slices.Clone(stack[at:]), child)
				return true
			}
		}
		color[id] = black
		stack = stack[:len(stack)-1]
		return false
	}

	for _, name := range g.Names() {
		if color[name] == white && dfs(name) {
			return cycle, true
		}
	}
	return nil, false
}

// checkAcyclicity wraps FindCycle as a DAG-01 issue.
func checkAcyclicity(g *causal.Graph) []Issue {
	cycle, found := FindCycle(g)
	if !found {
		return nil
	}
	return []Issue{{
		Rule:     RuleAcyclicity,
		Severity: SeverityCritical,
		Message:  "causal structure contains a cycle: " + joinArrow(cycle),
		Path:     cycle,
	}}
}

func joinArrow(nodes []string) string {
	out := ""
	for i, n := range nodes {
		if i > 0 {
			out += " -> "
		}
		out += n
	}
	return out
}
