// Package callgraph turns a saturated flow graph (internal/flow) into the
// final call-graph edge list: extraction, escaping/unknown-call-site
// flagging, labeling, and the output projections.
package callgraph

import (
	"sort"

	"github.com/1homsi/fieldcg/internal/ast"
	"github.com/1homsi/fieldcg/internal/flow"
)

// Edge is one resolved call-graph edge: a call site reaching either a
// user-defined function or a native.
type Edge struct {
	Call   *ast.Node // the Callee(c)'s originating CallExpression/NewExpression
	Target *ast.Node // the reached Func(fn) node, or nil if Native
	Native string    // non-empty iff Target is nil
}

// Result is the full output of extraction.
type Result struct {
	Edges             []Edge
	Escaping          map[*ast.Node]bool // Func(fn) that can reach Unknown
	UnknownCallSites  map[*ast.Node]bool // Callee(c) reachable from Unknown
}

// Extract walks every Callee(c) vertex and every Func(fn) vertex, using a
// reachability computed over g, to produce the call-graph edges and the
// escaping/unknown-call-site flags. The chosen inter-procedural strategy
// must already have been applied to g (internal/flow.ApplyStrategy) before
// calling this.
func Extract(g *flow.Graph, functions, calls []*ast.Node) *Result {
	reach := flow.NewReachability(g)
	res := &Result{
		Escaping:         map[*ast.Node]bool{},
		UnknownCallSites: map[*ast.Node]bool{},
	}

	unknownID, hasUnknown := g.VertexID(flow.TheUnknown)

	natives := make([]string, 0, len(flow.NativeTableNames()))
	for name := range flow.NativeTableNames() {
		natives = append(natives, name)
	}
	sort.Strings(natives)

	for _, call := range calls {
		calleeID, ok := g.VertexID(flow.CalleeOf(call))
		if !ok {
			continue
		}
		for _, fn := range functions {
			fnID, ok := g.VertexID(flow.FuncOf(fn))
			if !ok {
				continue
			}
			if reach.Reaches(fnID, calleeID) {
				res.Edges = append(res.Edges, Edge{Call: call, Target: fn})
			}
		}
		for _, name := range natives {
			natID, ok := g.VertexID(flow.NativeOf(name))
			if !ok {
				continue
			}
			if reach.Reaches(natID, calleeID) {
				res.Edges = append(res.Edges, Edge{Call: call, Native: name})
			}
		}
		if hasUnknown && reach.Reaches(unknownID, calleeID) {
			res.UnknownCallSites[call] = true
		}
	}

	for _, fn := range functions {
		fnID, ok := g.VertexID(flow.FuncOf(fn))
		if !ok || !hasUnknown {
			continue
		}
		if reach.Reaches(fnID, unknownID) {
			res.Escaping[fn] = true
		}
	}

	return res
}
