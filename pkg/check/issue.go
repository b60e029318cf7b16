package check

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Rule identifiers for validation issues.
const (
	RuleAcyclicity           = "DAG-01"
	RuleBackdoorCriterion    = "DAG-02"
	RuleColliderConditioning = "DAG-03"
	RuleRoleConsistency      = "DAG-04"
	RuleUndeclaredVariable   = "VAR-01"
)

// Severity grades a validation issue. Higher values are more severe.
type Severity int

// Severity levels, ordered LOW < MEDIUM < HIGH < CRITICAL.
const (
	SeverityLow Severity = iota + 1
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityLow:      "LOW",
	SeverityMedium:   "MEDIUM",
	SeverityHigh:     "HIGH",
	SeverityCritical: "CRITICAL",
}

// String returns the canonical upper-case severity name.
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SEVERITY(%d)", int(s))
}

// MarshalJSON encodes the severity as its canonical name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a severity from its canonical name.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for sev, n := range severityNames {
		if n == name {
			*s = sev
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", name)
}

// Issue is a single validation finding. Issues are pure values: they never
// mutate the graph they describe.
type Issue struct {
	Rule     string   `json:"rule" bson:"rule"`
	Severity Severity `json:"severity" bson:"severity"`
	Message  string   `json:"message" bson:"message"`

	// Variables names the offending variables, if any.
	Variables []string `json:"variables,omitempty" bson:"variables,omitempty"`

	// Path names the offending path as an ordered variable sequence, if any.
	Path []string `json:"path,omitempty" bson:"path,omitempty"`
}

// sortIssues orders issues by severity (CRITICAL first), then rule id, then
// discovery order. The sort is stable, so discovery order is preserved
// within each (severity, rule) group.
func sortIssues(issues []Issue) {
	slices.SortStableFunc(issues, func(a, b Issue) int {
		if a.Severity != b.Severity {
			return int(b.Severity) - int(a.Severity)
		}
		switch {
		case a.Rule < b.Rule:
			return -1
		case a.Rule > b.Rule:
			return 1
		}
		return 0
	})
}

// MaxSeverity returns the highest severity present, or 0 for no issues.
func MaxSeverity(issues []Issue) Severity {
	var maxSev Severity
	for _, is := range issues {
		if is.Severity > maxSev {
			maxSev = is.Severity
		}
	}
	return maxSev
}
