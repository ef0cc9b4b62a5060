package pipeline

import (
	"testing"

	"github.com/1homsi/fieldcg/internal/ast"
)

func defineCall(deps ...string) *ast.Node {
	elems := make([]*ast.Node, len(deps))
	for i, d := range deps {
		elems[i] = &ast.Node{Kind: ast.Literal, Value: d}
	}
	return &ast.Node{
		Kind:   ast.CallExpression,
		Callee: &ast.Node{Kind: ast.Identifier, Name: "define"},
		Arguments: []*ast.Node{
			{Kind: ast.ArrayExpression, Elements: elems},
			{Kind: ast.FunctionExpression, Body: &ast.Node{Kind: ast.BlockStatement}},
		},
	}
}

func TestAMDGraphExtractsDependenciesFromDefine(t *testing.T) {
	call := defineCall("./a", "./b")
	stmt := &ast.Node{Kind: ast.ExpressionStatement, Argument: call}
	file := &ast.Node{Kind: ast.Program, File: "main.js", Statements: []*ast.Node{stmt}}

	edges := AMDGraph([]*ast.Node{file})
	if len(edges) != 2 {
		t.Fatalf("got %d edges, want 2", len(edges))
	}
	if edges[0] != (AMDEdge{Module: "main.js", Dependency: "./a"}) {
		t.Errorf("edges[0] = %+v, want {main.js ./a}", edges[0])
	}
	if edges[1] != (AMDEdge{Module: "main.js", Dependency: "./b"}) {
		t.Errorf("edges[1] = %+v, want {main.js ./b}", edges[1])
	}
}

func TestAMDGraphIgnoresNonDefineCalls(t *testing.T) {
	call := &ast.Node{Kind: ast.CallExpression, Callee: &ast.Node{Kind: ast.Identifier, Name: "require"}}
	stmt := &ast.Node{Kind: ast.ExpressionStatement, Argument: call}
	file := &ast.Node{Kind: ast.Program, File: "main.js", Statements: []*ast.Node{stmt}}

	edges := AMDGraph([]*ast.Node{file})
	if len(edges) != 0 {
		t.Errorf("got %v, want no edges for a non-define call", edges)
	}
}

func TestAMDGraphIgnoresDefineWithoutArrayDeps(t *testing.T) {
	call := &ast.Node{
		Kind:      ast.CallExpression,
		Callee:    &ast.Node{Kind: ast.Identifier, Name: "define"},
		Arguments: []*ast.Node{{Kind: ast.FunctionExpression, Body: &ast.Node{Kind: ast.BlockStatement}}},
	}
	stmt := &ast.Node{Kind: ast.ExpressionStatement, Argument: call}
	file := &ast.Node{Kind: ast.Program, File: "main.js", Statements: []*ast.Node{stmt}}

	edges := AMDGraph([]*ast.Node{file})
	if len(edges) != 0 {
		t.Errorf("got %v, want no edges when define's first argument isn't an array of deps", edges)
	}
}

func TestAMDGraphSkipsNonLiteralDependencyEntries(t *testing.T) {
	dynamic := &ast.Node{Kind: ast.Identifier, Name: "dep"}
	call := &ast.Node{
		Kind:   ast.CallExpression,
		Callee: &ast.Node{Kind: ast.Identifier, Name: "define"},
		Arguments: []*ast.Node{
			{Kind: ast.ArrayExpression, Elements: []*ast.Node{dynamic, {Kind: ast.Literal, Value: "./b"}}},
			{Kind: ast.FunctionExpression, Body: &ast.Node{Kind: ast.BlockStatement}},
		},
	}
	stmt := &ast.Node{Kind: ast.ExpressionStatement, Argument: call}
	file := &ast.Node{Kind: ast.Program, File: "main.js", Statements: []*ast.Node{stmt}}

	edges := AMDGraph([]*ast.Node{file})
	if len(edges) != 1 || edges[0].Dependency != "./b" {
		t.Errorf("edges = %+v, want exactly one edge to ./b", edges)
	}
}

func TestAMDGraphCollectsAcrossMultipleFiles(t *testing.T) {
	fileA := &ast.Node{Kind: ast.Program, File: "a.js", Statements: []*ast.Node{
		{Kind: ast.ExpressionStatement, Argument: defineCall("./x")},
	}}
	fileB := &ast.Node{Kind: ast.Program, File: "b.js", Statements: []*ast.Node{
		{Kind: ast.ExpressionStatement, Argument: defineCall("./y")},
	}}

	edges := AMDGraph([]*ast.Node{fileA, fileB})
	if len(edges) != 2 {
		t.Fatalf("got %d edges, want 2", len(edges))
	}
	if edges[0].Module != "a.js" || edges[1].Module != "b.js" {
		t.Errorf("edges = %+v, want modules [a.js b.js] in order", edges)
	}
}
