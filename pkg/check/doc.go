// Package check implements the causal DAG validation rules.
//
// The engine runs a fixed set of checkers over one immutable
// [github.com/causallab/dagcheck/pkg/causal.Graph] snapshot:
//
//   - DAG-01 acyclicity (CRITICAL): depth-first cycle detection
//   - DAG-02 backdoor criterion (HIGH): every backdoor path from treatment
//     to outcome must be blocked by the adjustment set, which must not
//     contain a descendant of the treatment
//   - DAG-03 collider conditioning (HIGH): adjustment-set members with two
//     or more parents open spurious associations when conditioned on
//   - DAG-04 role consistency (MEDIUM): declared roles cross-checked
//     against structural position
//   - VAR-01 undeclared variables (LOW): edge-referenced variables missing
//     from the role map
//
// Findings are soft: they are collected as [Issue] values, never raised as
// errors. The only hard errors are dangling references (treatment, outcome,
// or adjustment members naming variables absent from the graph). A cyclic
// graph does not abort validation, but path-dependent rules (DAG-02,
// DAG-03) are marked indeterminate on the report rather than producing
// false positives or negatives.
package check
