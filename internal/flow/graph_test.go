package flow

import "testing"

func TestInternDeduplicatesEqualVertices(t *testing.T) {
	g := NewGraph()
	a := g.intern(GlobOf("x"))
	b := g.intern(GlobOf("x"))
	if a != b {
		t.Errorf("interning the same vertex twice should return the same id, got %d and %d", a, b)
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1", g.Len())
	}
}

func TestInternDistinctVertices(t *testing.T) {
	g := NewGraph()
	a := g.intern(GlobOf("x"))
	b := g.intern(GlobOf("y"))
	if a == b {
		t.Errorf("distinct vertices must get distinct ids")
	}
	if g.Len() != 2 {
		t.Errorf("Len() = %d, want 2", g.Len())
	}
}

func TestVertexIDLookupWithoutCreating(t *testing.T) {
	g := NewGraph()
	if _, ok := g.VertexID(GlobOf("x")); ok {
		t.Errorf("VertexID should report not-found for a never-interned vertex")
	}
	g.intern(GlobOf("x"))
	id, ok := g.VertexID(GlobOf("x"))
	if !ok || g.Vertex(id) != GlobOf("x") {
		t.Errorf("VertexID should find an already-interned vertex")
	}
}

func TestAddEdgeDeduplicates(t *testing.T) {
	g := NewGraph()
	g.AddEdge(GlobOf("a"), GlobOf("b"))
	g.AddEdge(GlobOf("a"), GlobOf("b"))
	g.AddEdge(GlobOf("a"), GlobOf("c"))

	ai, _ := g.VertexID(GlobOf("a"))
	out := g.Out(ai)
	if len(out) != 2 {
		t.Fatalf("got %d out-edges, want 2 (duplicate a->b should collapse)", len(out))
	}
}

func TestAddEdgePreservesInsertionOrder(t *testing.T) {
	g := NewGraph()
	g.AddEdge(GlobOf("a"), GlobOf("z"))
	g.AddEdge(GlobOf("a"), GlobOf("y"))
	g.AddEdge(GlobOf("a"), GlobOf("x"))

	ai, _ := g.VertexID(GlobOf("a"))
	out := g.Out(ai)
	zi, _ := g.VertexID(GlobOf("z"))
	yi, _ := g.VertexID(GlobOf("y"))
	xi, _ := g.VertexID(GlobOf("x"))
	want := []int{zi, yi, xi}
	if len(out) != len(want) {
		t.Fatalf("got %d out-edges, want %d", len(out), len(want))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %d, want %d (insertion order)", i, out[i], want[i])
		}
	}
}

func TestAllVerticesOrderIsFirstSeenOrder(t *testing.T) {
	g := NewGraph()
	g.intern(GlobOf("c"))
	g.intern(GlobOf("a"))
	g.intern(GlobOf("b"))

	all := g.AllVertices()
	want := []Vertex{GlobOf("c"), GlobOf("a"), GlobOf("b")}
	if len(all) != len(want) {
		t.Fatalf("got %d vertices, want %d", len(all), len(want))
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("AllVertices()[%d] = %v, want %v", i, all[i], want[i])
		}
	}
}

func TestAllVerticesReturnsACopy(t *testing.T) {
	g := NewGraph()
	g.intern(GlobOf("a"))
	all := g.AllVertices()
	all[0] = GlobOf("mutated")

	again := g.AllVertices()
	if again[0] != GlobOf("a") {
		t.Errorf("mutating the slice returned by AllVertices should not affect the graph's internal state")
	}
}
