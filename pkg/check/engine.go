package check

import (
	"fmt"
	"slices"

	"github.com/causallab/dagcheck/pkg/causal"
	"github.com/causallab/dagcheck/pkg/errors"
)

// Request describes one validation run over a sealed causal graph.
type Request struct {
	// Graph is the immutable scenario graph. Required.
	Graph *causal.Graph

	// Treatment and Outcome name the causal query endpoints. Both may be
	// empty, in which case the backdoor criterion is not evaluated and role
	// checks that need endpoints are skipped.
	Treatment string
	Outcome   string

	// Adjustment is the claimed adjustment set (variable names, any case).
	Adjustment []string

	// Undeclared lists variables the parser auto-created without a declared
	// role; each becomes a LOW VAR-01 issue.
	Undeclared []string

	// MaxPathDepth caps path enumeration; <= 0 means the node count.
	MaxPathDepth int
}

// Report is the aggregated, ordered validation report for one scenario.
type Report struct {
	ScenarioID  string `json:"scenario_id,omitempty" bson:"scenario_id,omitempty"`
	Fingerprint string `json:"fingerprint" bson:"fingerprint"`

	// Issues are sorted by severity, then rule id, then discovery order.
	Issues []Issue `json:"issues" bson:"issues"`

	// Passed is true iff no CRITICAL or HIGH issue is present.
	Passed bool `json:"passed" bson:"passed"`

	// Indeterminate lists rule ids whose results could not be determined -
	// path-dependent rules on a cyclic graph have no defined answer.
	Indeterminate []string `json:"indeterminate,omitempty" bson:"indeterminate,omitempty"`

	// Stats summarizes the validated structure.
	Stats Stats `json:"stats" bson:"stats"`
}

// Stats summarizes the validated graph.
type Stats struct {
	Variables     int `json:"variables" bson:"variables"`
	Edges         int `json:"edges" bson:"edges"`
	BackdoorPaths int `json:"backdoor_paths" bson:"backdoor_paths"`
}

// HasIssue reports whether the report contains an issue with the rule id.
func (r *Report) HasIssue(rule string) bool {
	for _, is := range r.Issues {
		if is.Rule == rule {
			return true
		}
	}
	return false
}

// IssuesByRule returns the report's issues carrying the given rule id.
func (r *Report) IssuesByRule(rule string) []Issue {
	var out []Issue
	for _, is := range r.Issues {
		if is.Rule == rule {
			out = append(out, is)
		}
	}
	return out
}

// Evaluate runs every checker against the request's graph snapshot and
// aggregates the findings into one ordered report.
//
// Order of operations: dangling-reference validation (hard error), then
// acyclicity. A cycle is a CRITICAL DAG-01 issue; the engine still runs
// role consistency but marks the path-dependent rules (DAG-02, DAG-03)
// indeterminate, since a cyclic graph has no well-defined backdoor paths.
//
// Evaluate never mutates the graph and holds no state across calls, so it
// is safe to run concurrently over independent scenarios.
func Evaluate(req Request) (*Report, error) {
	g := req.Graph
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidScenario, "validation request has no graph")
	}
	if err := validateReferences(req); err != nil {
		return nil, err
	}

	treatment := causal.CanonicalName(req.Treatment)
	outcome := causal.CanonicalName(req.Outcome)

	report := &Report{
		Fingerprint: g.Fingerprint(),
		Stats: Stats{
			Variables: g.VariableCount(),
			Edges:     g.EdgeCount(),
		},
	}

	var issues []Issue

	cycleIssues := checkAcyclicity(g)
	issues = append(issues, cycleIssues...)
	cyclic := len(cycleIssues) > 0

	if cyclic {
		report.Indeterminate = []string{RuleBackdoorCriterion, RuleColliderConditioning}
	} else {
		if treatment != "" && outcome != "" {
			report.Stats.BackdoorPaths = len(BackdoorPaths(g, treatment, outcome, req.MaxPathDepth))
			issues = append(issues, checkBackdoor(g, treatment, outcome, req.Adjustment, req.MaxPathDepth)...)
		}
		issues = append(issues, ScanColliderConditioning(g, req.Adjustment)...)
	}

	issues = append(issues, CheckRoles(g, treatment, outcome)...)

	for _, name := range req.Undeclared {
		issues = append(issues, Issue{
			Rule:     RuleUndeclaredVariable,
			Severity: SeverityLow,
			Message: fmt.Sprintf("variable %s appears in the structure but has no declared role (defaulted to other)",
				causal.CanonicalName(name)),
			Variables: []string{causal.CanonicalName(name)},
		})
	}

	sortIssues(issues)
	report.Issues = issues
	report.Passed = MaxSeverity(issues) < SeverityHigh
	return report, nil
}

// validateReferences rejects scenario-level references to variables absent
// from the graph. These are hard DANGLING_REFERENCE errors, not issues: the
// scenario cannot be meaningfully validated against them.
func validateReferences(req Request) error {
	missing := func(kind, name string) error {
		return errors.New(errors.ErrCodeDanglingReference, "%s variable %s is not part of the causal structure",
			kind, causal.CanonicalName(name))
	}
	if req.Treatment != "" && !req.Graph.HasVariable(req.Treatment) {
		return missing("treatment", req.Treatment)
	}
	if req.Outcome != "" && !req.Graph.HasVariable(req.Outcome) {
		return missing("outcome", req.Outcome)
	}
	if req.Treatment != "" && req.Outcome != "" &&
		causal.CanonicalName(req.Treatment) == causal.CanonicalName(req.Outcome) {
		return errors.New(errors.ErrCodeInvalidScenario, "treatment and outcome must be distinct variables")
	}
	for _, name := range slices.Compact(canonicalNames(req.Adjustment)) {
		if !req.Graph.HasVariable(name) {
			return missing("adjustment", name)
		}
	}
	return nil
}
