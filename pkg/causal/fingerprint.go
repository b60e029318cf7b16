package causal

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"
)

// Fingerprint returns a stable structural hash of the graph: a SHA-256 over
// the sorted variable/role list and the sorted edge list. Two graphs built
// from notation variants (different token order, whitespace, case) produce
// the same fingerprint.
//
// Fingerprints key cached validation results. They deliberately ignore
// scenario identity and display labels - the structure is the only input
// that affects validation.
func (g *Graph) Fingerprint() string {
	var sb strings.Builder

	names := slices.Clone(g.order)
	slices.Sort(names)
	for _, name := range names {
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(string(g.vars[name].Role))
		sb.WriteByte(';')
	}

	edges := make([]string, len(g.edges))
	for i, e := range g.edges {
		edges[i] = e.From + ">" + e.To
	}
	slices.Sort(edges)
	sb.WriteByte('|')
	sb.WriteString(strings.Join(edges, ";"))

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}
