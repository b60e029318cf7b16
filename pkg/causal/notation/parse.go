// Package notation parses the compact arrow notation for causal structures.
//
// A structure string is a comma- or newline-separated list of edge tokens.
// Each token is two or more variable names joined by the directed arrow
// "->". Chain tokens expand to consecutive edges:
//
//	"Z -> X, Z -> Y, X -> Y"
//	"X -> M -> Y\nU -> X\nU -> Y"
//
// Whitespace around names and token case are normalized before comparison,
// so "x ->  y" and "X -> Y" produce identical graphs. Variables referenced
// in edges but absent from the caller's role map are still created with role
// "other" - incomplete annotation is tolerated, not rejected - and reported
// back via [Result.Undeclared] so the validation engine can raise a LOW
// issue.
package notation

import (
	"maps"
	"slices"
	"strings"

	"github.com/causallab/dagcheck/pkg/causal"
	"github.com/causallab/dagcheck/pkg/errors"
)

// Arrow is the directed edge token of the notation.
const Arrow = "->"

// Result is the outcome of parsing a structure string.
type Result struct {
	// Graph is the constructed, sealed causal graph.
	Graph *causal.Graph

	// Undeclared lists canonical names of variables that were referenced in
	// edges but missing from the declared role map, in first-seen order.
	Undeclared []string
}

// Parse converts a compact causal-notation string plus the caller-declared
// variable roles into a sealed [causal.Graph].
//
// Role map keys are matched case-insensitively against edge names. Role
// values that do not name a known role are treated as "other".
//
// Parse fails with an ErrCodeMalformedStructure error identifying the
// offending token when the notation cannot be understood: empty structure,
// tokens without an arrow, empty names, or self-loops.
func Parse(structure string, roles map[string]string) (Result, error) {
	tokens := splitTokens(structure)
	if len(tokens) == 0 {
		return Result{}, errors.New(errors.ErrCodeMalformedStructure, "empty causal structure")
	}

	declared := make(map[string]causal.Role, len(roles))
	for name, role := range roles {
		canon := causal.CanonicalName(name)
		if canon == "" {
			return Result{}, errors.New(errors.ErrCodeInvalidVariable, "role map contains an empty variable name")
		}
		r, _ := causal.ParseRole(role)
		declared[canon] = r
	}

	g := causal.NewGraph()
	var undeclared []string

	ensure := func(raw string) (string, error) {
		if err := errors.ValidateVariableName(raw); err != nil {
			return "", err
		}
		canon := causal.CanonicalName(raw)
		if g.HasVariable(canon) {
			return canon, nil
		}
		role, ok := declared[canon]
		if !ok {
			role = causal.RoleOther
			undeclared = append(undeclared, canon)
		}
		v := causal.Variable{Name: raw, Role: role, Declared: ok}
		if err := g.AddVariable(v); err != nil {
			return "", errors.Wrap(errors.ErrCodeMalformedStructure, err, "variable %q", raw)
		}
		return canon, nil
	}

	for _, tok := range tokens {
		names := strings.Split(tok, Arrow)
		if len(names) < 2 {
			return Result{}, errors.New(errors.ErrCodeMalformedStructure, "token %q has no %q arrow", tok, Arrow)
		}

		prev := ""
		for i, raw := range names {
			canon, err := ensure(raw)
			if err != nil {
				return Result{}, errors.Wrap(errors.ErrCodeMalformedStructure, err, "token %q", tok)
			}
			if i == 0 {
				prev = canon
				continue
			}
			if err := g.AddEdge(prev, canon); err != nil {
				return Result{}, errors.Wrap(errors.ErrCodeMalformedStructure, err, "token %q", tok)
			}
			prev = canon
		}
	}

	// Declared-but-unreferenced variables still belong to the graph: a role
	// map may annotate isolated variables. Sorted for deterministic
	// declaration order.
	for _, name := range slices.Sorted(maps.Keys(declared)) {
		if !g.HasVariable(name) {
			if err := g.AddVariable(causal.Variable{Name: name, Role: declared[name], Declared: true}); err != nil {
				return Result{}, errors.Wrap(errors.ErrCodeInvalidVariable, err, "declared variable %q", name)
			}
		}
	}

	g.Seal()
	return Result{Graph: g, Undeclared: undeclared}, nil
}

// splitTokens breaks a structure string into edge tokens on commas,
// semicolons, and newlines, dropping empty entries.
func splitTokens(structure string) []string {
	fields := strings.FieldsFunc(structure, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n' || r == '\r'
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := strings.TrimSpace(f); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
