package flow

import (
	"encoding/json"
	"testing"
)

func TestDumpRendersEdgesInInsertionOrder(t *testing.T) {
	g := NewGraph()
	g.AddEdge(GlobOf("a"), GlobOf("b"))
	g.AddEdge(GlobOf("a"), GlobOf("c"))

	out, err := Dump(g)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	var edges []dumpEdge
	if err := json.Unmarshal(out, &edges); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(edges) != 2 {
		t.Fatalf("got %d edges, want 2", len(edges))
	}
	if edges[0].From != "Glob(a)" || edges[0].To != "Glob(b)" {
		t.Errorf("edges[0] = %+v, want {Glob(a) Glob(b)}", edges[0])
	}
	if edges[1].From != "Glob(a)" || edges[1].To != "Glob(c)" {
		t.Errorf("edges[1] = %+v, want {Glob(a) Glob(c)}", edges[1])
	}
}

func TestDumpEmptyGraphProducesNull(t *testing.T) {
	g := NewGraph()
	out, err := Dump(g)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if string(out) != "null" {
		t.Errorf("Dump(empty) = %q, want null (nil slice marshals to null)", string(out))
	}
}
