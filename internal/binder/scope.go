package binder

import "github.com/1homsi/fieldcg/internal/ast"

// Kind classifies a Scope (the kind of symbol table it is).
type Kind string

const (
	Global  Kind = "global"
	Func    Kind = "function"
	Block   Kind = "block"
	CatchScope Kind = "catch"
)

// Scope is a mapping from identifier name to its declaration node, plus a
// link to the enclosing scope.
type Scope struct {
	Kind     Kind
	Outer    *Scope
	Bindings map[string]*ast.Node
	Owner    *ast.Node // the node that opened this scope (nil for the synthetic global scope)
}

func newScope(kind Kind, outer *Scope, owner *ast.Node) *Scope {
	return &Scope{Kind: kind, Outer: outer, Bindings: make(map[string]*ast.Node), Owner: owner}
}

// Declare binds name to decl in s. If name is already bound in s, the
// binding is a diagnostic, not fatal: the first binding wins.
func (s *Scope) declare(name string, decl *ast.Node) (prior *ast.Node, redeclared bool) {
	if existing, ok := s.Bindings[name]; ok {
		return existing, true
	}
	s.Bindings[name] = decl
	return nil, false
}

// nearestFunctionOrGlobal walks outward to the nearest function or global
// scope, used for var/function-declaration hoisting.
func (s *Scope) nearestFunctionOrGlobal() *Scope {
	for cur := s; cur != nil; cur = cur.Outer {
		if cur.Kind == Func || cur.Kind == Global {
			return cur
		}
	}
	return s
}

// Lookup walks outward from s until name is bound, returning the declaration
// node and true, or (nil, false) if no enclosing scope (including global)
// binds it.
func (s *Scope) Lookup(name string) (*ast.Node, bool) {
	for cur := s; cur != nil; cur = cur.Outer {
		if decl, ok := cur.Bindings[name]; ok {
			return decl, true
		}
	}
	return nil, false
}

// IsGlobal reports whether s is the distinguished global scope.
func (s *Scope) IsGlobal() bool { return s.Kind == Global }
