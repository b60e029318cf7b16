package check

import (
	"fmt"

	"github.com/causallab/dagcheck/pkg/causal"
)

// CheckRoles cross-checks declared variable roles against structural
// position:
//
//   - confounder: directed edges into both the treatment and the outcome
//   - mediator: lies on a directed path from treatment to outcome
//   - collider: two or more parents
//
// Mismatches are MEDIUM DAG-04 issues - informational, never blocking,
// since role declarations are advisory annotations. Confounder and mediator
// checks require a declared treatment and outcome and are skipped
// otherwise. Variables in other roles (treatment, outcome, instrument,
// other) have no structural requirement here.
func CheckRoles(g *causal.Graph, treatment, outcome string) []Issue {
	t := causal.CanonicalName(treatment)
	y := causal.CanonicalName(outcome)
	hasEndpoints := t != "" && y != ""

	var issues []Issue
	mismatch := func(v *causal.Variable, format string, args ...any) {
		issues = append(issues, Issue{
			Rule:      RuleRoleConsistency,
			Severity:  SeverityMedium,
			Message:   fmt.Sprintf("variable %s declared %s but %s", v.Name, v.Role, fmt.Sprintf(format, args...)),
			Variables: []string{v.Name},
		})
	}

	for _, v := range g.Variables() {
		switch v.Role {
		case causal.RoleConfounder:
			if !hasEndpoints {
				continue
			}
			if !g.HasEdge(v.Name, t) || !g.HasEdge(v.Name, y) {
				mismatch(v, "lacks directed edges into both treatment %s and outcome %s", t, y)
			}
		case causal.RoleMediator:
			if !hasEndpoints {
				continue
			}
			if !onDirectedPath(g, t, v.Name, y) {
				mismatch(v, "does not lie on a directed path from treatment %s to outcome %s", t, y)
			}
		case causal.RoleCollider:
			if g.InDegree(v.Name) < 2 {
				mismatch(v, "has fewer than two parents")
			}
		}
	}
	return issues
}

// onDirectedPath reports whether mid lies strictly between from and to on
// some directed path: from reaches mid, and mid reaches to.
func onDirectedPath(g *causal.Graph, from, mid, to string) bool {
	if mid == from || mid == to {
		return false
	}
	return g.Descendants(from)[mid] && g.Descendants(mid)[to]
}
