package check

import (
	"fmt"
	"slices"
	"strings"

	"github.com/causallab/dagcheck/pkg/causal"
	"github.com/causallab/dagcheck/pkg/causal/paths"
)

// BackdoorResult is the outcome of a backdoor-criterion check.
type BackdoorResult struct {
	// Satisfied is true iff every backdoor path is blocked and the
	// adjustment set contains no descendant of the treatment.
	Satisfied bool

	// BackdoorPaths are all treatment-outcome paths whose first edge points
	// into the treatment.
	BackdoorPaths []paths.Path

	// Unblocked are the backdoor paths the adjustment set fails to block.
	Unblocked []paths.Path

	// DescendantsInSet are adjustment-set members that descend from the
	// treatment, each a criterion violation on its own.
	DescendantsInSet []string
}

// BackdoorPaths enumerates the backdoor paths from treatment to outcome:
// skeleton paths whose first edge points into the treatment. Paths leaving
// the treatment along a directed edge carry the causal effect itself and
// are excluded.
func BackdoorPaths(g *causal.Graph, treatment, outcome string, maxDepth int) []paths.Path {
	all := paths.NewSkeleton(g).Enumerate(treatment, outcome, maxDepth)
	backdoor := make([]paths.Path, 0, len(all))
	for _, p := range all {
		if p.IntoStart() {
			backdoor = append(backdoor, p)
		}
	}
	return backdoor
}

// CheckBackdoor decides whether the adjustment set satisfies the backdoor
// criterion for (treatment, outcome) and returns the structured result.
func CheckBackdoor(g *causal.Graph, treatment, outcome string, adjustment []string, maxDepth int) BackdoorResult {
	cond := NewConditioningSet(adjustment)
	res := BackdoorResult{
		BackdoorPaths: BackdoorPaths(g, treatment, outcome, maxDepth),
	}

	desc := g.Descendants(treatment)
	for _, name := range sortedSet(cond) {
		if desc[name] {
			res.DescendantsInSet = append(res.DescendantsInSet, name)
		}
	}

	for _, p := range res.BackdoorPaths {
		if !Blocked(g, p, cond) {
			res.Unblocked = append(res.Unblocked, p)
		}
	}

	res.Satisfied = len(res.Unblocked) == 0 && len(res.DescendantsInSet) == 0
	return res
}

// checkBackdoor wraps CheckBackdoor as DAG-02 issues: one HIGH issue per
// adjustment variable descending from the treatment, one HIGH issue per
// unblocked backdoor path.
func checkBackdoor(g *causal.Graph, treatment, outcome string, adjustment []string, maxDepth int) []Issue {
	res := CheckBackdoor(g, treatment, outcome, adjustment, maxDepth)

	var issues []Issue
	for _, name := range res.DescendantsInSet {
		issues = append(issues, Issue{
			Rule:     RuleBackdoorCriterion,
			Severity: SeverityHigh,
			Message: fmt.Sprintf("adjustment variable %s is a descendant of treatment %s",
				name, causal.CanonicalName(treatment)),
			Variables: []string{name},
		})
	}
	for _, p := range res.Unblocked {
		issues = append(issues, Issue{
			Rule:     RuleBackdoorCriterion,
			Severity: SeverityHigh,
			Message: fmt.Sprintf("backdoor path %s is not blocked by adjustment set {%s}",
				p, strings.Join(canonicalNames(adjustment), ", ")),
			Path: slices.Clone(p.Nodes),
		})
	}
	return issues
}

func sortedSet(set ConditioningSet) []string {
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func canonicalNames(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = causal.CanonicalName(n)
	}
	slices.Sort(out)
	return out
}
