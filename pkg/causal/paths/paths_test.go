package paths

import (
	"testing"

	"github.com/causallab/dagcheck/pkg/causal"
	"github.com/causallab/dagcheck/pkg/causal/notation"
)

func parse(t *testing.T, structure string) *causal.Graph {
	t.Helper()
	res, err := notation.Parse(structure, nil)
	if err != nil {
		t.Fatalf("Parse(%q): %v", structure, err)
	}
	return res.Graph
}

func pathStrings(ps []Path) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}

func TestEnumerateConfounderTriangle(t *testing.T) {
	g := parse(t, "Z -> X, Z -> Y, X -> Y")
	got := pathStrings(Between(g, "X", "Y"))

	want := map[string]bool{
		"X -> Y":      true,
		"X <- Z -> Y": true,
	}
	if len(got) != len(want) {
		t.Fatalf("paths = %v, want %d paths", got, len(want))
	}
	for _, p := range got {
		if !want[p] {
			t.Errorf("unexpected path %q", p)
		}
	}
}

func TestEnumerateMediatorAndConfounder(t *testing.T) {
	g := parse(t, "X -> M -> Y, U -> X, U -> Y")
	got := pathStrings(Between(g, "X", "Y"))

	want := map[string]bool{
		"X -> M -> Y": true,
		"X <- U -> Y": true,
	}
	if len(got) != len(want) {
		t.Fatalf("paths = %v, want %d", got, len(want))
	}
	for _, p := range got {
		if !want[p] {
			t.Errorf("unexpected path %q", p)
		}
	}
}

func TestEnumerateSimplePathsOnly(t *testing.T) {
	// Diamond: every returned path must visit each node at most once.
	g := parse(t, "A -> B, A -> C, B -> D, C -> D")
	for _, p := range Between(g, "A", "D") {
		seen := map[string]bool{}
		for _, n := range p.Nodes {
			if seen[n] {
				t.Errorf("path %q repeats node %s", p, n)
			}
			seen[n] = true
		}
	}
	if got := len(Between(g, "A", "D")); got != 2 {
		t.Errorf("path count = %d, want 2", got)
	}
}

func TestEnumerateDepthCap(t *testing.T) {
	g := parse(t, "A -> B -> C -> D")
	sk := NewSkeleton(g)
	if got := sk.Enumerate("A", "D", 2); len(got) != 0 {
		t.Errorf("depth-capped enumeration = %v, want none", pathStrings(got))
	}
	if got := sk.Enumerate("A", "D", 3); len(got) != 1 {
		t.Errorf("enumeration at depth 3 = %v, want one path", pathStrings(got))
	}
}

func TestEnumerateMissingEndpoint(t *testing.T) {
	g := parse(t, "A -> B")
	if got := Between(g, "A", "Q"); got != nil {
		t.Errorf("paths to unknown node = %v, want nil", got)
	}
	if got := Between(g, "A", "A"); got != nil {
		t.Errorf("paths A..A = %v, want nil", got)
	}
}

func TestIsCollider(t *testing.T) {
	g := parse(t, "A -> C, B -> C, C -> D")
	ps := Between(g, "A", "B")
	if len(ps) != 1 {
		t.Fatalf("paths = %v, want one", pathStrings(ps))
	}
	p := ps[0]
	if p.String() != "A -> C <- B" {
		t.Fatalf("path = %q", p)
	}
	if !p.IsCollider(1) {
		t.Error("C should be a collider on A -> C <- B")
	}
	if p.IsCollider(0) || p.IsCollider(2) {
		t.Error("endpoints must never be colliders")
	}
}

func TestIntoStart(t *testing.T) {
	g := parse(t, "U -> X, U -> Y, X -> Y")
	for _, p := range Between(g, "X", "Y") {
		wantBackdoor := p.String() == "X <- U -> Y"
		if p.IntoStart() != wantBackdoor {
			t.Errorf("IntoStart(%q) = %v, want %v", p, p.IntoStart(), wantBackdoor)
		}
	}
}

func TestSkeletonNeighbors(t *testing.T) {
	g := parse(t, "B -> A, A -> C")
	sk := NewSkeleton(g)
	got := sk.Neighbors("A")
	if len(got) != 2 || got[0] != "B" || got[1] != "C" {
		t.Errorf("Neighbors(A) = %v, want [B C] sorted", got)
	}
}
