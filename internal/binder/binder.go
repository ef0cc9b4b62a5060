// Package binder implements the second analysis pass: it builds nested
// scope tables and resolves every identifier occurrence to its declaration
// node, or marks it as a global reference.
package binder

import (
	"github.com/1homsi/fieldcg/internal/ast"
	"github.com/1homsi/fieldcg/internal/diagnostics"
)

// Result is the output of a binder run: the single shared global scope every
// file's module scope chains to.
type Result struct {
	Global *Scope
}

type binder struct {
	diag   *diagnostics.Sink
	global *Scope
}

// Run binds every file (already decorated, so Node.Parent and EnclosingFile
// are set) and resolves all identifier occurrences in place.
func Run(diag *diagnostics.Sink, files []*ast.Node) *Result {
	b := &binder{diag: diag, global: newScope(Global, nil, nil)}
	for _, file := range files {
		moduleScope := newScope(Func, b.global, file)
		file.Attrs().Scope = moduleScope
		b.hoist(moduleScope, file.Statements)
		for _, stmt := range file.Statements {
			b.bindStatement(moduleScope, stmt)
		}
	}
	return &Result{Global: b.global}
}

// hoist declares every `var` and function-declaration name reachable from
// stmts without crossing a function boundary, in scope's nearest
// function/global ancestor.
func (b *binder) hoist(scope *Scope, stmts []*ast.Node) {
	target := scope.nearestFunctionOrGlobal()
	for _, s := range stmts {
		b.hoistNode(target, s)
	}
}

func (b *binder) hoistNode(target *Scope, n *ast.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.FunctionDeclaration:
		if n.ID != nil {
			b.declare(target, n.ID.Name, n.ID)
		}
	case ast.VariableDeclaration:
		if n.Kind_ != "var" {
			return
		}
		for _, d := range n.Decls {
			b.hoistPattern(target, d.ID)
		}
	case ast.BlockStatement:
		for _, s := range n.Statements {
			b.hoistNode(target, s)
		}
	case ast.IfStatement:
		b.hoistNode(target, n.Consequent)
		b.hoistNode(target, n.Alternate)
	case ast.ForStatement:
		b.hoistNode(target, n.Init)
		b.hoistNode(target, n.Body)
	case ast.ForInStatement, ast.ForOfStatement:
		b.hoistNode(target, n.Left)
		b.hoistNode(target, n.Body)
	case ast.WhileStatement, ast.DoWhileStatement:
		b.hoistNode(target, n.Body)
	case ast.TryStatement:
		b.hoistNode(target, n.Body)
		if n.Handler != nil {
			b.hoistNode(target, n.Handler.Body)
		}
		b.hoistNode(target, n.Finalizer)
	case ast.SwitchStatement:
		for _, c := range n.Cases {
			for _, s := range c.Statements {
				b.hoistNode(target, s)
			}
		}
	case ast.LabeledStatement:
		b.hoistNode(target, n.Body)
	case ast.ExportNamedDeclaration, ast.ExportDefaultDeclaration:
		b.hoistNode(target, n.Declaration)
	}
}

func (b *binder) hoistPattern(target *Scope, pattern *ast.Node) {
	for _, id := range patternLeaves(pattern) {
		b.declare(target, id.Name, id)
	}
}

func (b *binder) declare(scope *Scope, name string, decl *ast.Node) {
	if name == "" {
		return
	}
	if prior, redeclared := scope.declare(name, decl); redeclared {
		_ = prior
		b.diag.Warn("binder", decl.Attrs().EnclosingFile, "duplicate binding for %q in this scope; first declaration wins", name)
	}
}

// resolve looks up name starting from scope and records the result on use's
// attributes.
func (b *binder) resolve(scope *Scope, use *ast.Node) {
	if use == nil || use.Kind != ast.Identifier {
		return
	}
	attrs := use.Attrs()
	if decl, ok := scope.Lookup(use.Name); ok {
		attrs.Resolved = decl
		attrs.IsGlobal = false
		return
	}
	attrs.Resolved = nil
	attrs.IsGlobal = true
}

// patternLeaves flattens a binding pattern (array/object destructuring,
// defaults, rest) into its leaf Identifier nodes.
func patternLeaves(pattern *ast.Node) []*ast.Node {
	if pattern == nil {
		return nil
	}
	switch pattern.Kind {
	case ast.Identifier:
		return []*ast.Node{pattern}
	case ast.AssignmentPattern:
		return patternLeaves(pattern.Left)
	case ast.RestElement:
		return patternLeaves(pattern.Argument)
	case ast.ArrayPattern:
		var out []*ast.Node
		for _, el := range pattern.Elements {
			out = append(out, patternLeaves(el)...)
		}
		return out
	case ast.ObjectPattern:
		var out []*ast.Node
		for _, prop := range pattern.Properties {
			if prop.Kind == ast.RestElement {
				out = append(out, patternLeaves(prop.Argument)...)
				continue
			}
			out = append(out, patternLeaves(prop.Init)...)
		}
		return out
	default:
		return nil
	}
}
