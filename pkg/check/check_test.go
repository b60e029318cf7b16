package check

import (
	"testing"

	"github.com/causallab/dagcheck/pkg/causal"
	"github.com/causallab/dagcheck/pkg/causal/notation"
)

// parseGraph builds a sealed graph from arrow notation for tests.
func parseGraph(t *testing.T, structure string, roles map[string]string) *causal.Graph {
	t.Helper()
	res, err := notation.Parse(structure, roles)
	if err != nil {
		t.Fatalf("Parse(%q): %v", structure, err)
	}
	return res.Graph
}

// cyclicGraph builds an unparsed graph containing a directed cycle.
// The notation parser would accept it too; built directly for clarity.
func cyclicGraph(t *testing.T, names []string, edges [][2]string, roles ...map[string]causal.Role) *causal.Graph {
	t.Helper()
	roleOf := map[string]causal.Role{}
	if len(roles) > 0 {
		roleOf = roles[0]
	}
	g := causal.NewGraph()
	for _, n := range names {
		if err := g.AddVariable(causal.Variable{Name: n, Role: roleOf[n], Declared: true}); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatal(err)
		}
	}
	g.Seal()
	return g
}
