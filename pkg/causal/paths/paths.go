// Package paths enumerates simple paths over the undirected skeleton of a
// causal graph.
//
// The skeleton has an edge X–Y iff X→Y or Y→X exists in the directed graph.
// Each enumerated [Path] records, per step, which way the original directed
// edge pointed, which is what lets the blocking evaluator classify interior
// nodes as colliders or chain/fork nodes.
//
// Scenario graphs are small (typically at most eight variables), so full
// simple-path enumeration by depth-first search with visited-set rollback is
// tractable. An optional depth cap bounds the search on larger inputs.
package paths

import (
	"slices"
	"strings"

	"github.com/causallab/dagcheck/pkg/causal"
)

// Direction records the orientation of the original directed edge
// underlying one skeleton step.
type Direction int

const (
	// Forward means the directed edge points along the path:
	// Nodes[i] → Nodes[i+1].
	Forward Direction = iota
	// Backward means the directed edge points against the path:
	// Nodes[i] ← Nodes[i+1].
	Backward
)

// Path is a simple path v0…vn over the skeleton. Dirs has one entry per
// step: Dirs[i] orients the edge between Nodes[i] and Nodes[i+1].
type Path struct {
	Nodes []string
	Dirs  []Direction
}

// Len returns the number of steps (edges) on the path.
func (p Path) Len() int { return len(p.Dirs) }

// IsCollider reports whether the interior node at index i is a collider on
// this path: both adjacent path edges point into it (→ v ←).
// Endpoints are never colliders; i must satisfy 0 < i < len(Nodes)-1.
func (p Path) IsCollider(i int) bool {
	if i <= 0 || i >= len(p.Nodes)-1 {
		return false
	}
	return p.Dirs[i-1] == Forward && p.Dirs[i] == Backward
}

// IntoStart reports whether the first edge of the path points into the
// starting node. This is the defining test for a backdoor path when the
// start is the treatment.
func (p Path) IntoStart() bool {
	return len(p.Dirs) > 0 && p.Dirs[0] == Backward
}

// String renders the path with its edge orientations, e.g. "X <- U -> Y".
func (p Path) String() string {
	if len(p.Nodes) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(p.Nodes[0])
	for i, d := range p.Dirs {
		if d == Forward {
			sb.WriteString(" -> ")
		} else {
			sb.WriteString(" <- ")
		}
		sb.WriteString(p.Nodes[i+1])
	}
	return sb.String()
}

// Skeleton is the undirected adjacency view of a causal graph, built once
// per graph in O(E) and reused for every endpoint pair.
type Skeleton struct {
	graph     *causal.Graph
	neighbors map[string][]string
}

// NewSkeleton derives the undirected skeleton of g. Neighbor lists are
// sorted so path enumeration order is deterministic.
func NewSkeleton(g *causal.Graph) *Skeleton {
	adj := make(map[string]map[string]bool)
	link := func(a, b string) {
		if adj[a] == nil {
			adj[a] = make(map[string]bool)
		}
		adj[a][b] = true
	}
	for _, e := range g.Edges() {
		link(e.From, e.To)
		link(e.To, e.From)
	}

	neighbors := make(map[string][]string, len(adj))
	for n, set := range adj {
		ns := make([]string, 0, len(set))
		for m := range set {
			ns = append(ns, m)
		}
		slices.Sort(ns)
		neighbors[n] = ns
	}
	return &Skeleton{graph: g, neighbors: neighbors}
}

// Neighbors returns the skeleton neighbors of a node, sorted by name.
func (s *Skeleton) Neighbors(name string) []string {
	return s.neighbors[causal.CanonicalName(name)]
}

// Enumerate finds all simple paths (no repeated nodes) between from and to,
// annotated with original edge directions. maxDepth caps the number of steps
// per path; a value <= 0 means the graph's node count, which admits every
// simple path. Returns nil when either endpoint is missing or from == to.
func (s *Skeleton) Enumerate(from, to string, maxDepth int) []Path {
	start := causal.CanonicalName(from)
	goal := causal.CanonicalName(to)
	if start == goal || !s.graph.HasVariable(start) || !s.graph.HasVariable(goal) {
		return nil
	}
	if maxDepth <= 0 {
		maxDepth = s.graph.VariableCount()
	}

	var (
		out     []Path
		nodes   = []string{start}
		dirs    []Direction
		visited = map[string]bool{start: true}
	)

	var dfs func(current string)
	dfs = func(current string) {
		if len(dirs) >= maxDepth {
			return
		}
		for _, next := range s.neighbors[current] {
			if visited[next] {
				continue
			}
			dir := Backward
			if s.graph.HasEdge(current, next) {
				dir = Forward
			}
			nodes = append(nodes, next)
			dirs = append(dirs, dir)
			if next == goal {
				out = append(out, Path{
					Nodes: slices.Clone(nodes),
					Dirs:  slices.Clone(dirs),
				})
			} else {
				visited[next] = true
				dfs(next)
				delete(visited, next)
			}
			nodes = nodes[:len(nodes)-1]
			dirs = dirs[:len(dirs)-1]
		}
	}
	dfs(start)
	return out
}

// Between is a convenience wrapper that builds the skeleton and enumerates
// all simple paths between two nodes with the default depth bound.
func Between(g *causal.Graph, from, to string) []Path {
	return NewSkeleton(g).Enumerate(from, to, 0)
}
