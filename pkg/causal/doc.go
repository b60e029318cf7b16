// Package causal provides the directed causal graph model that all
// validation checks operate on.
//
// A [Graph] owns the variables and directed edges of one scenario. It is
// mutable only while being built (typically by the notation parser in
// [github.com/causallab/dagcheck/pkg/causal/notation]); calling [Graph.Seal]
// freezes it for the lifetime of validation. Validation never mutates a
// sealed graph, which is what makes batch validation embarrassingly
// parallel.
//
// # Variables and Roles
//
// Every variable carries a declared [Role] (treatment, outcome, confounder,
// mediator, collider, instrument, or other). Roles are advisory annotations
// supplied by the caller - the engine never derives them, it only checks
// them against structural position.
//
// # Identity
//
// Variable names are case- and surrounding-whitespace-insensitive.
// CanonicalName produces the canonical form; the first-seen original
// spelling is preserved as the display label.
//
// # Example
//
//	g := causal.NewGraph()
//	g.AddVariable(causal.Variable{Name: "Z", Role: causal.RoleConfounder})
//	g.AddVariable(causal.Variable{Name: "X", Role: causal.RoleTreatment})
//	g.AddVariable(causal.Variable{Name: "Y", Role: causal.RoleOutcome})
//	g.AddEdge("Z", "X")
//	g.AddEdge("Z", "Y")
//	g.AddEdge("X", "Y")
//	g.Seal()
package causal
