package flow

import "github.com/1homsi/fieldcg/internal/ast"

// BuildIntraprocedural populates g with every edge the R1-R9 rules produce
// from the decorated, bound AST of files. No inter-procedural edges (the
// parameter-binding / return-binding across call sites) are added here; that
// is strategy.go's job.
func BuildIntraprocedural(g *Graph, files []*ast.Node) {
	bu := &builder{g: g}
	for _, f := range files {
		bu.currentFn = nil
		for _, s := range f.Statements {
			bu.stmt(s)
		}
	}
}

type builder struct {
	g         *Graph
	currentFn *ast.Node // enclosing function, nil at module top level
}

func (b *builder) stmt(n *ast.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.VariableDeclaration:
		for _, d := range n.Decls {
			b.expr(d.Init)
			b.bindDeclarator(d)
		}

	case ast.FunctionDeclaration:
		b.funcValue(n)
		if n.ID != nil {
			b.g.AddEdge(FuncOf(n), VarOf(n.ID))
		}
		b.funcBody(n)

	case ast.ClassDeclaration:
		b.classValue(n)

	case ast.ExpressionStatement:
		b.expr(n.Argument)

	case ast.ReturnStatement:
		if n.Argument != nil && b.currentFn != nil {
			v := b.expr(n.Argument)
			b.g.AddEdge(v, RetOf(b.currentFn))
		}

	case ast.ThrowStatement:
		b.expr(n.Argument)

	case ast.IfStatement:
		b.expr(n.Test)
		b.stmt(n.Consequent)
		b.stmt(n.Alternate)

	case ast.BlockStatement:
		for _, s := range n.Statements {
			b.stmt(s)
		}

	case ast.ForStatement:
		b.stmt(n.Init)
		b.expr(n.Test)
		b.expr(n.Update)
		b.stmt(n.Body)

	case ast.ForInStatement, ast.ForOfStatement:
		rhs := b.expr(n.Right)
		var target *ast.Node
		if n.Left != nil && n.Left.Kind == ast.VariableDeclaration && len(n.Left.Decls) == 1 {
			target = n.Left.Decls[0].ID
		} else {
			target = n.Left
		}
		// Overapproximation: for-of's iterated elements (and for-in's keys,
		// harmlessly) flow straight from the iterable's own expression vertex
		// into the loop variable, rather than modeling element extraction.
		if target != nil {
			b.assignTarget(target, &rhs)
		}
		b.stmt(n.Body)

	case ast.WhileStatement:
		b.expr(n.Test)
		b.stmt(n.Body)

	case ast.DoWhileStatement:
		b.stmt(n.Body)
		b.expr(n.Test)

	case ast.SwitchStatement:
		b.expr(n.Discriminant)
		for _, c := range n.Cases {
			b.expr(c.Test)
			for _, s := range c.Statements {
				b.stmt(s)
			}
		}

	case ast.TryStatement:
		b.stmt(n.Body)
		if n.Handler != nil {
			b.stmt(n.Handler.Body)
		}
		b.stmt(n.Finalizer)

	case ast.LabeledStatement:
		b.stmt(n.Body)

	case ast.ExportNamedDeclaration:
		b.stmt(n.Declaration)

	case ast.ExportDefaultDeclaration:
		b.expr(n.Declaration)
	}
}

// bindDeclarator wires `var x = rhs` (R1) for the simple identifier case;
// destructuring patterns fall through to the composite-construct rule (R9)
// via expandPattern.
func (b *builder) bindDeclarator(d *ast.Node) {
	if d.ID == nil || d.Init == nil {
		return
	}
	if d.ID.Kind == ast.Identifier {
		b.g.AddEdge(b.exprVertex(d.Init), b.lvalueVertex(d.ID))
		return
	}
	b.expandPattern(d.ID, b.exprVertex(d.Init))
}

// assignTarget wires the destination side of an assignment (R1). src is the
// already-computed source vertex of the right-hand side (nil when the
// assignment has no simple source expression, e.g. a for-in/for-of binding).
func (b *builder) assignTarget(left *ast.Node, src *Vertex) {
	if left == nil {
		return
	}
	switch left.Kind {
	case ast.Identifier:
		if src != nil {
			b.g.AddEdge(*src, b.lvalueVertex(left))
		}
	case ast.MemberExpression:
		if left.Computed {
			b.expr(left.Property_)
		}
		b.expr(left.Object)
		if src != nil && !left.Computed {
			b.g.AddEdge(*src, PropOf(left.Property_.Name))
		} else if src != nil {
			b.g.AddEdge(*src, TheUnknown)
		}
	case ast.ArrayPattern, ast.ObjectPattern:
		if src != nil {
			b.expandPattern(left, *src)
		}
	}
}

// lvalueVertex returns the Var/Glob vertex an identifier resolves to. A
// declaring identifier (neither resolved nor global) is its own declaration
// node, so it maps to its own Var vertex.
func (b *builder) lvalueVertex(id *ast.Node) Vertex {
	attrs := id.Attrs()
	if attrs.IsGlobal {
		return GlobOf(id.Name)
	}
	if attrs.Resolved != nil {
		return VarOf(attrs.Resolved)
	}
	return VarOf(id)
}

// expandPattern expands a destructuring pattern against a single flowing
// source vertex (R9): each leaf becomes a property-read-then-write, or a
// direct variable write for rest/plain identifiers.
func (b *builder) expandPattern(pattern *ast.Node, src Vertex) {
	if pattern == nil {
		return
	}
	switch pattern.Kind {
	case ast.Identifier:
		b.g.AddEdge(src, b.lvalueVertex(pattern))
	case ast.AssignmentPattern:
		b.expr(pattern.Right)
		b.expandPattern(pattern.Left, src)
	case ast.RestElement:
		b.expandPattern(pattern.Argument, src)
	case ast.ArrayPattern:
		for _, el := range pattern.Elements {
			b.expandPattern(el, src)
		}
	case ast.ObjectPattern:
		for _, prop := range pattern.Properties {
			if prop.Kind == ast.RestElement {
				b.expandPattern(prop.Argument, src)
				continue
			}
			var fromProp Vertex
			if prop.Computed {
				b.expr(prop.Key)
				fromProp = TheUnknown
			} else if prop.Key != nil {
				fromProp = PropOf(prop.Key.Name)
			} else {
				fromProp = TheUnknown
			}
			b.expandPattern(prop.Init, fromProp)
		}
	}
}

// exprVertex returns the vertex representing n's evaluated value without
// emitting any edges (used when the caller has already walked n via expr).
func (b *builder) exprVertex(n *ast.Node) Vertex {
	if n == nil {
		return TheUnknown
	}
	switch n.Kind {
	case ast.Identifier:
		return b.lvalueVertex(n)
	case ast.FunctionExpression, ast.ArrowFunction, ast.FunctionDeclaration:
		return FuncOf(n)
	default:
		if n.IsCallLike() {
			return ResOf(n)
		}
		return ExprOf(n)
	}
}

// expr walks an expression, emitting every R2-R9 edge reachable from it, and
// returns the vertex that represents its evaluated value.
func (b *builder) expr(n *ast.Node) Vertex {
	if n == nil {
		return TheUnknown
	}
	switch n.Kind {
	case ast.Identifier:
		v := b.lvalueVertex(n)
		b.g.AddEdge(v, ExprOf(n))
		return ExprOf(n)

	case ast.ThisExpression:
		if resolved := n.Attrs().Resolved; resolved != nil {
			b.g.AddEdge(VarOf(resolved), ExprOf(n))
		} else {
			b.g.AddEdge(TheUnknown, ExprOf(n))
		}
		return ExprOf(n)

	case ast.Literal:
		return ExprOf(n)

	case ast.FunctionExpression, ast.ArrowFunction:
		b.funcValue(n)
		b.g.AddEdge(FuncOf(n), ExprOf(n))
		outer := b.currentFn
		b.funcBody(n)
		b.currentFn = outer
		return ExprOf(n)

	case ast.ClassExpression:
		b.classValue(n)
		return ExprOf(n)

	case ast.CallExpression, ast.NewExpression:
		return b.call(n)

	case ast.MemberExpression:
		b.expr(n.Object)
		if n.Computed {
			b.expr(n.Property_)
			b.g.AddEdge(TheUnknown, ExprOf(n))
			return ExprOf(n)
		}
		b.g.AddEdge(PropOf(n.Property_.Name), ExprOf(n))
		return ExprOf(n)

	case ast.AssignmentExpression:
		rhs := b.expr(n.Right)
		b.assignTarget(n.Left, &rhs)
		b.g.AddEdge(rhs, ExprOf(n))
		return ExprOf(n)

	case ast.BinaryExpression:
		b.expr(n.Left)
		b.expr(n.Right)
		return ExprOf(n)

	case ast.LogicalExpression:
		l := b.expr(n.Left)
		r := b.expr(n.Right)
		b.g.AddEdge(l, ExprOf(n))
		b.g.AddEdge(r, ExprOf(n))
		return ExprOf(n)

	case ast.ConditionalExpression:
		b.expr(n.Test)
		c := b.expr(n.Consequent)
		a := b.expr(n.Alternate)
		b.g.AddEdge(c, ExprOf(n))
		b.g.AddEdge(a, ExprOf(n))
		return ExprOf(n)

	case ast.UnaryExpression, ast.UpdateExpression:
		b.expr(n.Argument)
		return ExprOf(n)

	case ast.SpreadElement, ast.AwaitExpression, ast.YieldExpression:
		v := b.expr(n.Argument)
		b.g.AddEdge(v, ExprOf(n))
		return ExprOf(n)

	case ast.SequenceExpression:
		var last Vertex = TheUnknown
		for _, e := range n.Elements {
			last = b.expr(e)
		}
		b.g.AddEdge(last, ExprOf(n))
		return ExprOf(n)

	case ast.ArrayExpression:
		for _, e := range n.Elements {
			if e == nil {
				continue
			}
			v := b.expr(e)
			b.g.AddEdge(v, ExprOf(n))
		}
		return ExprOf(n)

	case ast.ObjectExpression:
		for _, p := range n.Properties {
			if p.Kind == ast.SpreadElement {
				b.expr(p.Argument)
				continue
			}
			v := b.expr(p.Init)
			if p.Computed {
				b.expr(p.Key)
				b.g.AddEdge(v, TheUnknown)
				continue
			}
			if p.Key != nil {
				b.g.AddEdge(v, PropOf(p.Key.Name))
			}
		}
		return ExprOf(n)

	case ast.TemplateLiteral:
		for _, e := range n.Expressions {
			b.expr(e)
		}
		return ExprOf(n)

	default:
		return ExprOf(n)
	}
}

// call implements R6 (call edges) plus the new-expression overapproximation.
func (b *builder) call(n *ast.Node) Vertex {
	calleeV := b.expr(n.Callee)
	b.g.AddEdge(calleeV, CalleeOf(n))
	for i, a := range n.Arguments {
		av := b.expr(a)
		b.g.AddEdge(av, ArgOf(n, i))
	}
	b.g.AddEdge(ResOf(n), ExprOf(n))

	if n.Kind == ast.NewExpression && n.Callee != nil && n.Callee.Kind == ast.Identifier {
		if resolved := n.Callee.Attrs().Resolved; resolved != nil {
			if ctor := constructorOf(resolved); ctor != nil {
				b.g.AddEdge(FuncOf(ctor), ExprOf(n))
			}
		}
	}
	return ExprOf(n)
}

// funcValue is R5's per-function hook and adds no edges itself: expr adds
// Func(fn) -> Expr(fn) for function expressions and arrows, and stmt adds
// Func(fn) -> Var(id) for a function declaration.
func (b *builder) funcValue(fn *ast.Node) {
	_ = fn // identity edges are added at each use site (expr/FunctionDeclaration case)
}

// funcBody walks a function's body under the function's own enclosing-fn
// context so return statements and `this` reads attribute correctly.
func (b *builder) funcBody(fn *ast.Node) {
	b.currentFn = fn
	for _, p := range fn.Params {
		b.bindParamDefault(p)
	}
	if fn.Body == nil {
		return
	}
	if fn.Body.Kind == ast.BlockStatement {
		for _, s := range fn.Body.Statements {
			b.stmt(s)
		}
	} else {
		v := b.expr(fn.Body)
		b.g.AddEdge(v, RetOf(fn))
	}
}

func (b *builder) bindParamDefault(p *ast.Node) {
	if p == nil {
		return
	}
	switch p.Kind {
	case ast.AssignmentPattern:
		b.expr(p.Right)
	case ast.ArrayPattern:
		for _, el := range p.Elements {
			b.bindParamDefault(el)
		}
	case ast.ObjectPattern:
		for _, prop := range p.Properties {
			b.bindParamDefault(prop.Init)
		}
	case ast.RestElement:
		b.bindParamDefault(p.Argument)
	}
}

// classValue implements the class-method wiring addendum: every named
// method's function value flows to Prop(name) on the class body, and the
// constructor's Func vertex flows to Prop("constructor").
func (b *builder) classValue(cls *ast.Node) {
	if cls.SuperClass != nil {
		b.expr(cls.SuperClass)
	}
	outer := b.currentFn
	for _, m := range cls.Members {
		if m.Computed {
			b.expr(m.Key)
		}
		if m.Init == nil {
			continue
		}
		name := ""
		if !m.Computed && m.Key != nil {
			name = m.Key.Name
		}
		if m.Kind2 == "constructor" {
			name = "constructor"
		}

		if m.Init.IsFunction() {
			b.funcBody(m.Init)
			b.currentFn = outer
			if name != "" {
				b.g.AddEdge(FuncOf(m.Init), PropOf(name))
			}
			continue
		}
		// Plain class-field initializer, not a named method: the
		// initializer's value flows to Prop(name).
		v := b.expr(m.Init)
		if name != "" {
			b.g.AddEdge(v, PropOf(name))
		}
	}
}

// constructorOf finds the constructor method's function node on a class
// declaration/expression bound to decl (used for `new C()`'s overapproximation).
func constructorOf(decl *ast.Node) *ast.Node {
	if decl == nil {
		return nil
	}
	cls := decl.Parent
	if cls == nil || (cls.Kind != ast.ClassDeclaration && cls.Kind != ast.ClassExpression) {
		return nil
	}
	for _, m := range cls.Members {
		if m.Kind2 == "constructor" {
			return m.Init
		}
	}
	return nil
}
