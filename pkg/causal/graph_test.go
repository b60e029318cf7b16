package causal

import (
	"errors"
	"testing"
)

func buildGraph(t *testing.T, vars map[string]Role, edges [][2]string) *Graph {
	t.Helper()
	g := NewGraph()
	for name, role := range vars {
		if err := g.AddVariable(Variable{Name: name, Role: role, Declared: true}); err != nil {
			t.Fatalf("AddVariable(%s): %v", name, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%s, %s): %v", e[0], e[1], err)
		}
	}
	return g
}

func TestAddVariable(t *testing.T) {
	tests := []struct {
		name    string
		varName string
		wantErr error
	}{
		{"Duplicate", "X", ErrDuplicateVariable},
		{"Whitespace", "  X  ", ErrDuplicateVariable}, // canonicalizes to existing X
		{"LowerCase", "x", ErrDuplicateVariable},
		{"Empty", "", ErrInvalidVariableName},
		{"OnlySpace", "   ", ErrInvalidVariableName},
		{"Distinct", "Y", nil},
	}

	g := NewGraph()
	if err := g.AddVariable(Variable{Name: "X"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.AddVariable(Variable{Name: tt.varName})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddVariable(%q) = %v, want %v", tt.varName, err, tt.wantErr)
			}
		})
	}
}

func TestAddEdge(t *testing.T) {
	g := buildGraph(t, map[string]Role{"X": RoleTreatment, "Y": RoleOutcome}, nil)

	if err := g.AddEdge("X", "Y"); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	// Duplicate is a no-op, not an error.
	if err := g.AddEdge("x", " y "); err != nil {
		t.Fatalf("duplicate AddEdge: %v", err)
	}
	if got := g.EdgeCount(); got != 1 {
		t.Errorf("EdgeCount = %d, want 1", got)
	}

	if err := g.AddEdge("X", "X"); !errors.Is(err, ErrSelfLoop) {
		t.Errorf("self-loop = %v, want ErrSelfLoop", err)
	}
	if err := g.AddEdge("Q", "Y"); !errors.Is(err, ErrUnknownSourceVariable) {
		t.Errorf("unknown source = %v, want ErrUnknownSourceVariable", err)
	}
	if err := g.AddEdge("X", "Q"); !errors.Is(err, ErrUnknownTargetVariable) {
		t.Errorf("unknown target = %v, want ErrUnknownTargetVariable", err)
	}
}

func TestSeal(t *testing.T) {
	g := buildGraph(t, map[string]Role{"X": RoleTreatment, "Y": RoleOutcome}, [][2]string{{"X", "Y"}})
	g.Seal()

	if !g.Sealed() {
		t.Fatal("Sealed() = false after Seal")
	}
	if err := g.AddVariable(Variable{Name: "Z"}); !errors.Is(err, ErrGraphSealed) {
		t.Errorf("AddVariable after seal = %v, want ErrGraphSealed", err)
	}
	if err := g.AddEdge("Y", "X"); !errors.Is(err, ErrGraphSealed) {
		t.Errorf("AddEdge after seal = %v, want ErrGraphSealed", err)
	}
}

func TestAdjacency(t *testing.T) {
	g := buildGraph(t,
		map[string]Role{"U": RoleConfounder, "X": RoleTreatment, "M": RoleMediator, "Y": RoleOutcome},
		[][2]string{{"U", "X"}, {"U", "Y"}, {"X", "M"}, {"M", "Y"}},
	)

	if got := g.Children("U"); len(got) != 2 {
		t.Errorf("Children(U) = %v, want 2 entries", got)
	}
	if got := g.Parents("Y"); len(got) != 2 {
		t.Errorf("Parents(Y) = %v, want 2 entries", got)
	}
	if g.InDegree("X") != 1 || g.OutDegree("X") != 1 {
		t.Errorf("degrees of X = (%d, %d), want (1, 1)", g.InDegree("X"), g.OutDegree("X"))
	}
	if !g.HasEdge("x", "m") {
		t.Error("HasEdge(x, m) = false, want true (case-insensitive)")
	}
}

func TestDescendants(t *testing.T) {
	g := buildGraph(t,
		map[string]Role{"X": RoleTreatment, "M": RoleMediator, "Y": RoleOutcome, "Z": RoleConfounder},
		[][2]string{{"X", "M"}, {"M", "Y"}, {"Z", "X"}},
	)

	desc := g.Descendants("X")
	if len(desc) != 2 || !desc["M"] || !desc["Y"] {
		t.Errorf("Descendants(X) = %v, want {M, Y}", desc)
	}
	if desc["X"] {
		t.Error("Descendants(X) contains X itself")
	}
	if !g.IsDescendant("Z", "Y") {
		t.Error("IsDescendant(Z, Y) = false, want true")
	}
	if g.IsDescendant("Y", "X") {
		t.Error("IsDescendant(Y, X) = true, want false")
	}
}

func TestDescendantsCyclicTerminates(t *testing.T) {
	g := buildGraph(t,
		map[string]Role{"A": RoleOther, "B": RoleOther, "C": RoleOther},
		[][2]string{{"A", "B"}, {"B", "C"}, {"C", "A"}},
	)
	desc := g.Descendants("A")
	if len(desc) != 2 || !desc["B"] || !desc["C"] {
		t.Errorf("Descendants(A) on cycle = %v, want {B, C}", desc)
	}
}

func TestFingerprint(t *testing.T) {
	build := func(edges [][2]string, order []string) *Graph {
		g := NewGraph()
		for _, n := range order {
			g.AddVariable(Variable{Name: n})
		}
		for _, e := range edges {
			g.AddEdge(e[0], e[1])
		}
		return g
	}

	a := build([][2]string{{"X", "Y"}, {"Z", "Y"}}, []string{"X", "Y", "Z"})
	b := build([][2]string{{"Z", "Y"}, {"X", "Y"}}, []string{"Z", "Y", "X"})
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("fingerprints differ for structurally identical graphs")
	}

	c := build([][2]string{{"X", "Y"}}, []string{"X", "Y", "Z"})
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("fingerprints equal for structurally different graphs")
	}

	// Role changes affect the fingerprint.
	d := build([][2]string{{"X", "Y"}, {"Z", "Y"}}, []string{"X", "Y", "Z"})
	v, _ := d.Variable("Z")
	v.Role = RoleConfounder
	if a.Fingerprint() == d.Fingerprint() {
		t.Error("fingerprints equal despite different roles")
	}
}

func TestVariablesDeclarationOrder(t *testing.T) {
	g := NewGraph()
	for _, n := range []string{"gamma", "Alpha", "BETA"} {
		if err := g.AddVariable(Variable{Name: n}); err != nil {
			t.Fatal(err)
		}
	}
	got := g.Names()
	want := []string{"GAMMA", "ALPHA", "BETA"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	}
	if v, _ := g.Variable("ALPHA"); v.Label != "Alpha" {
		t.Errorf("label = %q, want original spelling %q", v.Label, "Alpha")
	}
}
