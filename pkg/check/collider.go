package check

import (
	"fmt"
	"slices"
	"strings"

	"github.com/causallab/dagcheck/pkg/causal"
)

// ScanColliderConditioning scans the adjustment set for variables that are
// structural colliders: two or more incoming edges. Conditioning on such a
// variable opens a spurious association between its parents, independent of
// whether the set satisfies the backdoor criterion for some treatment and
// outcome pair. Each hit is a HIGH DAG-03 issue naming the collider and its
// parents.
func ScanColliderConditioning(g *causal.Graph, adjustment []string) []Issue {
	var issues []Issue
	for _, name := range canonicalNames(adjustment) {
		parents := g.Parents(name)
		if len(parents) < 2 {
			continue
		}
		sorted := slices.Clone(parents)
		slices.Sort(sorted)
		issues = append(issues, Issue{
			Rule:     RuleColliderConditioning,
			Severity: SeverityHigh,
			Message: fmt.Sprintf("conditioning on collider %s opens a spurious association between its parents {%s}",
				name, strings.Join(sorted, ", ")),
			Variables: append([]string{name}, sorted...),
		})
	}
	return issues
}
