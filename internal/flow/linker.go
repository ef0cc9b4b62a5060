package flow

import (
	"path"
	"strings"

	"github.com/1homsi/fieldcg/internal/ast"
	"github.com/1homsi/fieldcg/internal/diagnostics"
)

// Resolver maps a module specifier used by fromFile to the resolved file
// path, using plain relative/absolute/index-file conventions.
// Bare specifiers ("react", "lodash") are never resolved by this function:
// they have no file in the analyzed set.
type Resolver struct {
	files map[string]bool // set of analyzed file paths, for existence checks
}

func NewResolver(files []*ast.Node) *Resolver {
	set := make(map[string]bool, len(files))
	for _, f := range files {
		set[f.File] = true
	}
	return &Resolver{files: set}
}

func (r *Resolver) Resolve(fromFile, specifier string) (string, bool) {
	if !strings.HasPrefix(specifier, ".") && !strings.HasPrefix(specifier, "/") {
		return "", false
	}
	base := specifier
	if strings.HasPrefix(specifier, ".") {
		base = path.Join(path.Dir(fromFile), specifier)
	}
	candidates := []string{
		base,
		base + ".js",
		base + ".jsx",
		base + ".ts",
		base + ".tsx",
		path.Join(base, "index.js"),
		path.Join(base, "index.ts"),
	}
	for _, c := range candidates {
		if r.files[c] {
			return c, true
		}
	}
	return "", false
}

// LinkModules wires every import/export declaration across files into g.
func LinkModules(g *Graph, diag *diagnostics.Sink, files []*ast.Node) {
	res := NewResolver(files)
	lk := &linker{g: g, diag: diag, res: res}
	for _, f := range files {
		lk.file(f)
	}
}

type linker struct {
	g    *Graph
	diag *diagnostics.Sink
	res  *Resolver
}

func (lk *linker) file(f *ast.Node) {
	for _, stmt := range f.Statements {
		lk.topLevel(f, stmt)
	}
}

func (lk *linker) topLevel(f *ast.Node, n *ast.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.ImportDeclaration:
		lk.importDecl(f, n)
	case ast.ExportNamedDeclaration:
		lk.exportNamed(n)
	case ast.ExportDefaultDeclaration:
		if n.Declaration != nil {
			lk.g.AddEdge(lk.valueVertex(n.Declaration), ModuleDefaultOf(f.File))
		}
	case ast.ExpressionStatement:
		lk.commonJSOrAMD(f, n.Argument)
	case ast.VariableDeclaration:
		for _, d := range n.Decls {
			lk.requireCall(f, d)
		}
	}
}

func (lk *linker) importDecl(f *ast.Node, n *ast.Node) {
	if n.Source == nil {
		return
	}
	target, ok := lk.res.Resolve(f.File, n.Source.Value)
	for _, spec := range n.Specifiers {
		if spec.Local == nil {
			continue
		}
		switch spec.Kind {
		case ast.ImportDefaultSpecifier, ast.ImportNamespaceSpecifier:
			if ok {
				lk.g.AddEdge(ModuleDefaultOf(target), VarOf(spec.Local))
			} else {
				lk.diag.Warn("linker", f.File, "unresolved module specifier %q", n.Source.Value)
				lk.g.AddEdge(TheUnknown, VarOf(spec.Local))
			}
		case ast.ImportSpecifier:
			importedName := spec.Local.Name
			if spec.Imported != nil {
				importedName = spec.Imported.Name
			}
			lk.g.AddEdge(PropOf(importedName), VarOf(spec.Local))
		}
	}
}

func (lk *linker) exportNamed(n *ast.Node) {
	if n.Declaration != nil {
		switch n.Declaration.Kind {
		case ast.FunctionDeclaration:
			if n.Declaration.ID != nil {
				lk.g.AddEdge(VarOf(n.Declaration.ID), PropOf(n.Declaration.ID.Name))
			}
		case ast.VariableDeclaration:
			for _, d := range n.Declaration.Decls {
				if d.ID != nil && d.ID.Kind == ast.Identifier {
					lk.g.AddEdge(VarOf(d.ID), PropOf(d.ID.Name))
				}
			}
		case ast.ClassDeclaration:
			if n.Declaration.ID != nil {
				lk.g.AddEdge(VarOf(n.Declaration.ID), PropOf(n.Declaration.ID.Name))
			}
		}
		return
	}
	for _, spec := range n.Specifiers {
		if spec.Local == nil {
			continue
		}
		exportedName := spec.Local.Name
		if spec.Exported != nil {
			exportedName = spec.Exported.Name
		}
		lk.g.AddEdge(lk.valueVertex(spec.Local), PropOf(exportedName))
	}
}

// valueVertex returns the vertex representing a bare identifier's value for
// linker purposes (it resolves through binder attributes when available).
func (lk *linker) valueVertex(n *ast.Node) Vertex {
	if n == nil {
		return TheUnknown
	}
	if n.Kind == ast.Identifier {
		if resolved := n.Attrs().Resolved; resolved != nil {
			return VarOf(resolved)
		}
		return GlobOf(n.Name)
	}
	if n.IsFunction() {
		return FuncOf(n)
	}
	return ExprOf(n)
}

// commonJSOrAMD handles `module.exports = e`, `exports.p = e`, and
// `define(deps, factory)` expression statements.
func (lk *linker) commonJSOrAMD(f *ast.Node, n *ast.Node) {
	if n == nil {
		return
	}
	if n.Kind == ast.AssignmentExpression && n.Left != nil && n.Left.Kind == ast.MemberExpression {
		obj := n.Left.Object
		if obj != nil && obj.Kind == ast.Identifier && obj.Name == "module" &&
			n.Left.Property_ != nil && n.Left.Property_.Name == "exports" {
			lk.g.AddEdge(lk.valueVertex(n.Right), ModuleDefaultOf(f.File))
			return
		}
		if obj != nil && obj.Kind == ast.Identifier && obj.Name == "exports" &&
			n.Left.Property_ != nil && !n.Left.Computed {
			lk.g.AddEdge(lk.valueVertex(n.Right), PropOf(n.Left.Property_.Name))
			return
		}
	}
	if n.Kind == ast.CallExpression && n.Callee != nil && n.Callee.Kind == ast.Identifier && n.Callee.Name == "define" {
		lk.amdDefine(f, n)
	}
}

func (lk *linker) amdDefine(f *ast.Node, call *ast.Node) {
	if len(call.Arguments) < 2 {
		return
	}
	depsArg, factory := call.Arguments[0], call.Arguments[1]
	if depsArg == nil || depsArg.Kind != ast.ArrayExpression || factory == nil || !factory.IsFunction() {
		return
	}
	for i, dep := range depsArg.Elements {
		if dep == nil || dep.Kind != ast.Literal || i >= len(factory.Params) {
			continue
		}
		target, ok := lk.res.Resolve(f.File, dep.Value)
		param := factory.Params[i]
		if param == nil || param.Kind != ast.Identifier {
			continue
		}
		if ok {
			lk.g.AddEdge(ModuleDefaultOf(target), VarOf(param))
		} else {
			lk.diag.Warn("linker", f.File, "unresolved AMD dependency %q", dep.Value)
			lk.g.AddEdge(TheUnknown, VarOf(param))
		}
	}
}

// requireCall handles `const x = require("m")`, the CommonJS namespace-style
// import form.
func (lk *linker) requireCall(f *ast.Node, d *ast.Node) {
	if d.ID == nil || d.ID.Kind != ast.Identifier || d.Init == nil {
		return
	}
	call := d.Init
	if call.Kind != ast.CallExpression || call.Callee == nil ||
		call.Callee.Kind != ast.Identifier || call.Callee.Name != "require" ||
		len(call.Arguments) != 1 || call.Arguments[0].Kind != ast.Literal {
		return
	}
	target, ok := lk.res.Resolve(f.File, call.Arguments[0].Value)
	if ok {
		lk.g.AddEdge(ModuleDefaultOf(target), VarOf(d.ID))
	} else {
		lk.diag.Warn("linker", f.File, "unresolved require specifier %q", call.Arguments[0].Value)
		lk.g.AddEdge(TheUnknown, VarOf(d.ID))
	}
}
