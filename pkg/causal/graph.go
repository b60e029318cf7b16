package causal

import (
	"errors"
	"slices"
	"strings"
)

var (
	// ErrInvalidVariableName is returned by [Graph.AddVariable] when the
	// variable name is empty after normalization.
	ErrInvalidVariableName = errors.New("variable name must not be empty")

	// ErrDuplicateVariable is returned by [Graph.AddVariable] when a variable
	// with the same canonical name already exists in the graph.
	ErrDuplicateVariable = errors.New("duplicate variable")

	// ErrUnknownSourceVariable is returned by [Graph.AddEdge] when the
	// source variable does not exist in the graph.
	ErrUnknownSourceVariable = errors.New("unknown source variable")

	// ErrUnknownTargetVariable is returned by [Graph.AddEdge] when the
	// target variable does not exist in the graph.
	ErrUnknownTargetVariable = errors.New("unknown target variable")

	// ErrSelfLoop is returned by [Graph.AddEdge] when source and target
	// name the same variable. Self-loops are never valid causal edges.
	ErrSelfLoop = errors.New("self-loop edge")

	// ErrGraphSealed is returned by [Graph.AddVariable] and [Graph.AddEdge]
	// after [Graph.Seal] has been called. A sealed graph is read-only for
	// the lifetime of validation.
	ErrGraphSealed = errors.New("graph is sealed")
)

// CanonicalName returns the canonical form of a variable name: trimmed of
// surrounding whitespace and upper-cased. Two names that canonicalize to the
// same string identify the same variable.
func CanonicalName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Variable is a named node in the causal graph with a declared role.
// Label preserves the first-seen original spelling for display; Name is
// always canonical. Declared reports whether the caller supplied a role for
// the variable or it was auto-created from an edge reference.
type Variable struct {
	Name     string // canonical identifier
	Label    string // original spelling as first seen in the input
	Role     Role   // declared role (advisory)
	Declared bool   // false when auto-created with RoleOther
}

// Edge is an ordered pair denoting "From causally influences To".
// Both endpoints are canonical variable names.
type Edge struct {
	From string
	To   string
}

// Graph is the directed causal graph for one scenario.
//
// A Graph is mutable only during construction; call [Graph.Seal] once built.
// It is not safe for concurrent mutation, but a sealed Graph may be read
// from any number of goroutines.
type Graph struct {
	vars     map[string]*Variable
	order    []string // canonical names in declaration order
	edges    []Edge
	edgeSet  map[Edge]bool
	outgoing map[string][]string // children in insertion order
	incoming map[string][]string // parents in insertion order
	sealed   bool
}

// NewGraph creates an empty causal graph.
func NewGraph() *Graph {
	return &Graph{
		vars:     make(map[string]*Variable),
		edgeSet:  make(map[Edge]bool),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddVariable adds a variable to the graph. The name is canonicalized; the
// original spelling is kept as the label when none is set. Returns
// ErrInvalidVariableName for empty names, ErrDuplicateVariable when the
// canonical name is already present, or ErrGraphSealed after Seal.
func (g *Graph) AddVariable(v Variable) error {
	if g.sealed {
		return ErrGraphSealed
	}
	label := v.Label
	if label == "" {
		label = strings.TrimSpace(v.Name)
	}
	name := CanonicalName(v.Name)
	if name == "" {
		return ErrInvalidVariableName
	}
	if _, exists := g.vars[name]; exists {
		return ErrDuplicateVariable
	}
	if v.Role == "" {
		v.Role = RoleOther
	}
	v.Name = name
	v.Label = label
	g.vars[name] = &v
	g.order = append(g.order, name)
	return nil
}

// AddEdge adds the directed edge from→to between existing variables.
// Endpoint names are canonicalized before lookup. A duplicate edge is a
// no-op rather than an error, to tolerate redundant notation. Returns
// ErrSelfLoop when both endpoints are the same variable,
// ErrUnknownSourceVariable / ErrUnknownTargetVariable for missing
// endpoints, or ErrGraphSealed after Seal.
func (g *Graph) AddEdge(from, to string) error {
	if g.sealed {
		return ErrGraphSealed
	}
	src, dst := CanonicalName(from), CanonicalName(to)
	if src == dst {
		return ErrSelfLoop
	}
	if _, ok := g.vars[src]; !ok {
		return ErrUnknownSourceVariable
	}
	if _, ok := g.vars[dst]; !ok {
		return ErrUnknownTargetVariable
	}
	e := Edge{From: src, To: dst}
	if g.edgeSet[e] {
		return nil
	}
	g.edgeSet[e] = true
	g.edges = append(g.edges, e)
	g.outgoing[src] = append(g.outgoing[src], dst)
	g.incoming[dst] = append(g.incoming[dst], src)
	return nil
}

// Seal freezes the graph. Subsequent AddVariable/AddEdge calls fail with
// ErrGraphSealed. Sealing an already sealed graph is a no-op.
func (g *Graph) Seal() { g.sealed = true }

// Sealed reports whether the graph has been frozen.
func (g *Graph) Sealed() bool { return g.sealed }

// Variable returns the variable with the given (canonicalized) name.
func (g *Graph) Variable(name string) (*Variable, bool) {
	v, ok := g.vars[CanonicalName(name)]
	return v, ok
}

// HasVariable reports whether a variable exists in the graph.
func (g *Graph) HasVariable(name string) bool {
	_, ok := g.vars[CanonicalName(name)]
	return ok
}

// Variables returns all variables in declaration order.
func (g *Graph) Variables() []*Variable {
	out := make([]*Variable, len(g.order))
	for i, name := range g.order {
		out[i] = g.vars[name]
	}
	return out
}

// Names returns the canonical variable names in declaration order.
func (g *Graph) Names() []string { return slices.Clone(g.order) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// HasEdge reports whether the directed edge from→to exists.
func (g *Graph) HasEdge(from, to string) bool {
	return g.edgeSet[Edge{From: CanonicalName(from), To: CanonicalName(to)}]
}

// VariableCount returns the number of variables in the graph.
func (g *Graph) VariableCount() int { return len(g.vars) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the targets of this variable's outgoing edges, in
// insertion order. The returned slice is a read-only view.
func (g *Graph) Children(name string) []string {
	return g.outgoing[CanonicalName(name)]
}

// Parents returns the sources of this variable's incoming edges, in
// insertion order. The returned slice is a read-only view.
func (g *Graph) Parents(name string) []string {
	return g.incoming[CanonicalName(name)]
}

// InDegree returns the number of incoming edges, 0 for unknown variables.
func (g *Graph) InDegree(name string) int { return len(g.incoming[CanonicalName(name)]) }

// OutDegree returns the number of outgoing edges, 0 for unknown variables.
func (g *Graph) OutDegree(name string) int { return len(g.outgoing[CanonicalName(name)]) }

// Descendants returns the set of variables reachable from name along
// directed edges, excluding name itself. Works on cyclic graphs too (the
// traversal tracks visited nodes).
func (g *Graph) Descendants(name string) map[string]bool {
	start := CanonicalName(name)
	desc := make(map[string]bool)
	stack := slices.Clone(g.outgoing[start])
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if desc[n] || n == start {
			continue
		}
		desc[n] = true
		stack = append(stack, g.outgoing[n]...)
	}
	return desc
}

// IsDescendant reports whether candidate is reachable from ancestor along
// directed edges.
func (g *Graph) IsDescendant(ancestor, candidate string) bool {
	return g.Descendants(ancestor)[CanonicalName(candidate)]
}
