package callgraph

import (
	"testing"

	"github.com/1homsi/fieldcg/internal/ast"
	"github.com/1homsi/fieldcg/internal/flow"
)

func TestExtractFindsDirectFunctionEdge(t *testing.T) {
	fn := &ast.Node{Kind: ast.FunctionDeclaration}
	call := &ast.Node{Kind: ast.CallExpression}

	g := flow.NewGraph()
	g.AddEdge(flow.FuncOf(fn), flow.CalleeOf(call))

	res := Extract(g, []*ast.Node{fn}, []*ast.Node{call})

	if len(res.Edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(res.Edges))
	}
	e := res.Edges[0]
	if e.Call != call || e.Target != fn || e.Native != "" {
		t.Errorf("edge = %+v, want Call=%p Target=%p Native=\"\"", e, call, fn)
	}
}

func TestExtractFindsNativeEdge(t *testing.T) {
	call := &ast.Node{Kind: ast.CallExpression}

	g := flow.NewGraph()
	g.AddEdge(flow.NativeOf("forEach"), flow.CalleeOf(call))

	res := Extract(g, nil, []*ast.Node{call})

	if len(res.Edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(res.Edges))
	}
	e := res.Edges[0]
	if e.Call != call || e.Target != nil || e.Native != "forEach" {
		t.Errorf("edge = %+v, want Target=nil Native=forEach", e)
	}
}

func TestExtractFlagsEscapingFunction(t *testing.T) {
	fn := &ast.Node{Kind: ast.FunctionDeclaration}
	escaper := &ast.Node{Kind: ast.Identifier, Name: "escaper"}

	g := flow.NewGraph()
	g.AddEdge(flow.FuncOf(fn), flow.VarOf(escaper))
	g.AddEdge(flow.VarOf(escaper), flow.TheUnknown)

	res := Extract(g, []*ast.Node{fn}, nil)

	if !res.Escaping[fn] {
		t.Errorf("expected fn to be flagged as escaping (reaches Unknown)")
	}
}

func TestExtractFlagsUnknownCallSite(t *testing.T) {
	call := &ast.Node{Kind: ast.CallExpression}

	g := flow.NewGraph()
	g.AddEdge(flow.TheUnknown, flow.CalleeOf(call))

	res := Extract(g, nil, []*ast.Node{call})

	if !res.UnknownCallSites[call] {
		t.Errorf("expected call to be flagged as an unknown call site")
	}
}

func TestExtractOmitsUnreachedFunctionsAndCalls(t *testing.T) {
	fn := &ast.Node{Kind: ast.FunctionDeclaration}
	call := &ast.Node{Kind: ast.CallExpression}

	g := flow.NewGraph()
	g.AddEdge(flow.FuncOf(fn), flow.VarOf(&ast.Node{Kind: ast.Identifier}))

	res := Extract(g, []*ast.Node{fn}, []*ast.Node{call})

	if len(res.Edges) != 0 {
		t.Errorf("expected no edges when Func(fn) never reaches Callee(call), got %v", res.Edges)
	}
	if res.Escaping[fn] {
		t.Errorf("fn should not be flagged escaping without reaching Unknown")
	}
}
