package pipeline

import "github.com/1homsi/fieldcg/internal/ast"

// AMDEdge is one `--reqJs` dependency-graph edge: a module depends on one
// of the specifiers passed to its `define(deps, factory)` call.
type AMDEdge struct {
	Module     string `json:"module"`
	Dependency string `json:"dependency"`
}

// AMDGraph walks every file's top-level `define(...)` calls and returns the
// specifier dependency edges for the `--reqJs` output.
func AMDGraph(files []*ast.Node) []AMDEdge {
	var out []AMDEdge
	for _, f := range files {
		for _, stmt := range f.Statements {
			walkAMD(f.File, stmt, &out)
		}
	}
	return out
}

func walkAMD(module string, n *ast.Node, out *[]AMDEdge) {
	if n == nil {
		return
	}
	if n.Kind == ast.ExpressionStatement {
		walkAMD(module, n.Argument, out)
		return
	}
	if n.Kind != ast.CallExpression || n.Callee == nil || n.Callee.Kind != ast.Identifier || n.Callee.Name != "define" {
		return
	}
	if len(n.Arguments) == 0 {
		return
	}
	deps := n.Arguments[0]
	if deps == nil || deps.Kind != ast.ArrayExpression {
		return
	}
	for _, d := range deps.Elements {
		if d != nil && d.Kind == ast.Literal {
			*out = append(*out, AMDEdge{Module: module, Dependency: d.Value})
		}
	}
}
