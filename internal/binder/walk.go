package binder

import "github.com/1homsi/fieldcg/internal/ast"

// bindStatement processes one statement, creating nested scopes as needed
// and resolving every identifier read it contains.
func (b *binder) bindStatement(scope *Scope, n *ast.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.VariableDeclaration:
		for _, d := range n.Decls {
			if n.Kind_ != "var" {
				for _, id := range patternLeaves(d.ID) {
					b.declare(scope, id.Name, id)
				}
			}
			b.bindPatternDefaults(scope, d.ID)
			b.bindExpr(scope, d.Init)
		}

	case ast.FunctionDeclaration:
		b.bindFunction(scope, n)

	case ast.ClassDeclaration:
		if n.ID != nil {
			b.declare(scope, n.ID.Name, n.ID)
		}
		b.bindClass(scope, n)

	case ast.ExpressionStatement:
		b.bindExpr(scope, n.Argument)

	case ast.ReturnStatement, ast.ThrowStatement:
		b.bindExpr(scope, n.Argument)

	case ast.IfStatement:
		b.bindExpr(scope, n.Test)
		b.bindStatement(scope, n.Consequent)
		b.bindStatement(scope, n.Alternate)

	case ast.BlockStatement:
		inner := newScope(Block, scope, n)
		n.Attrs().Scope = inner
		b.hoist(inner, n.Statements)
		for _, s := range n.Statements {
			b.bindStatement(inner, s)
		}

	case ast.ForStatement:
		inner := newScope(Block, scope, n)
		n.Attrs().Scope = inner
		b.bindStatement(inner, n.Init)
		b.bindExpr(inner, n.Test)
		b.bindExpr(inner, n.Update)
		b.bindStatement(inner, n.Body)

	case ast.ForInStatement, ast.ForOfStatement:
		inner := newScope(Block, scope, n)
		n.Attrs().Scope = inner
		if n.Left != nil && n.Left.Kind == ast.VariableDeclaration {
			b.bindStatement(inner, n.Left)
		} else {
			b.bindExpr(inner, n.Left)
		}
		b.bindExpr(inner, n.Right)
		b.bindStatement(inner, n.Body)

	case ast.WhileStatement:
		b.bindExpr(scope, n.Test)
		b.bindStatement(scope, n.Body)

	case ast.DoWhileStatement:
		b.bindStatement(scope, n.Body)
		b.bindExpr(scope, n.Test)

	case ast.SwitchStatement:
		b.bindExpr(scope, n.Discriminant)
		inner := newScope(Block, scope, n)
		n.Attrs().Scope = inner
		for _, c := range n.Cases {
			b.bindExpr(inner, c.Test)
			b.hoist(inner, c.Statements)
			for _, s := range c.Statements {
				b.bindStatement(inner, s)
			}
		}

	case ast.TryStatement:
		b.bindStatement(scope, n.Body)
		if n.Handler != nil {
			catchScope := newScope(CatchScope, scope, n.Handler)
			n.Handler.Attrs().Scope = catchScope
			if n.Handler.ID != nil {
				for _, id := range patternLeaves(n.Handler.ID) {
					b.declare(catchScope, id.Name, id)
				}
			}
			b.bindStatement(catchScope, n.Handler.Body)
		}
		b.bindStatement(scope, n.Finalizer)

	case ast.LabeledStatement:
		b.bindStatement(scope, n.Body)

	case ast.ImportDeclaration:
		for _, spec := range n.Specifiers {
			if spec.Local != nil {
				b.declare(scope, spec.Local.Name, spec.Local)
			}
		}

	case ast.ExportNamedDeclaration:
		if n.Declaration != nil {
			b.bindStatement(scope, n.Declaration)
		}

	case ast.ExportDefaultDeclaration:
		b.bindExpr(scope, n.Declaration)

	case ast.EmptyStatement, ast.BreakStatement, ast.ContinueStatement:
		// no substructure to bind

	default:
		b.bindExpr(scope, n.Argument)
	}
}

func (b *binder) bindPatternDefaults(scope *Scope, pattern *ast.Node) {
	if pattern == nil {
		return
	}
	switch pattern.Kind {
	case ast.AssignmentPattern:
		b.bindExpr(scope, pattern.Right)
	case ast.ArrayPattern:
		for _, el := range pattern.Elements {
			b.bindPatternDefaults(scope, el)
		}
	case ast.ObjectPattern:
		for _, prop := range pattern.Properties {
			b.bindPatternDefaults(scope, prop.Init)
		}
	case ast.RestElement:
		b.bindPatternDefaults(scope, pattern.Argument)
	}
}

// bindFunction creates the function's own scope, binds its parameters,
// `this`, and `arguments`, then binds its body.
func (b *binder) bindFunction(outer *Scope, fn *ast.Node) {
	fnScope := newScope(Func, outer, fn)
	fn.Attrs().Scope = fnScope

	syntheticThis := &ast.Node{Kind: ast.Identifier, Name: "this", File: fn.File}
	syntheticArguments := &ast.Node{Kind: ast.Identifier, Name: "arguments", File: fn.File}
	b.declare(fnScope, "this", syntheticThis)
	if fn.Kind != ast.ArrowFunction {
		b.declare(fnScope, "arguments", syntheticArguments)
	}

	for _, p := range fn.Params {
		for _, id := range patternLeaves(p) {
			b.declare(fnScope, id.Name, id)
		}
		b.bindPatternDefaults(fnScope, p)
	}

	if fn.Body == nil {
		return
	}
	if fn.Body.Kind == ast.BlockStatement {
		b.hoist(fnScope, fn.Body.Statements)
		for _, s := range fn.Body.Statements {
			b.bindStatement(fnScope, s)
		}
	} else {
		// Arrow function with an expression body (implicit return).
		b.bindExpr(fnScope, fn.Body)
	}
}

func (b *binder) bindClass(scope *Scope, cls *ast.Node) {
	b.bindExpr(scope, cls.SuperClass)
	for _, m := range cls.Members {
		if m.Computed {
			b.bindExpr(scope, m.Key)
		}
		if m.Init != nil {
			b.bindFunction(scope, m.Init)
		}
	}
}

// bindExpr resolves identifier reads inside an expression subtree.
func (b *binder) bindExpr(scope *Scope, n *ast.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.Identifier:
		b.resolve(scope, n)

	case ast.ThisExpression:
		if decl, ok := scope.Lookup("this"); ok {
			n.Attrs().Resolved = decl
		} else {
			n.Attrs().IsGlobal = true
		}

	case ast.FunctionExpression, ast.ArrowFunction:
		b.bindFunction(scope, n)

	case ast.ClassExpression:
		b.bindClass(scope, n)

	case ast.VariableDeclarator:
		for _, id := range patternLeaves(n.ID) {
			b.declare(scope, id.Name, id)
		}
		b.bindExpr(scope, n.Init)

	case ast.CallExpression, ast.NewExpression:
		b.bindExpr(scope, n.Callee)
		for _, a := range n.Arguments {
			b.bindExpr(scope, a)
		}

	case ast.MemberExpression:
		b.bindExpr(scope, n.Object)
		if n.Computed {
			b.bindExpr(scope, n.Property_)
		}

	case ast.AssignmentExpression:
		b.bindAssignTarget(scope, n.Left)
		b.bindExpr(scope, n.Right)

	case ast.BinaryExpression, ast.LogicalExpression:
		b.bindExpr(scope, n.Left)
		b.bindExpr(scope, n.Right)

	case ast.ConditionalExpression:
		b.bindExpr(scope, n.Test)
		b.bindExpr(scope, n.Consequent)
		b.bindExpr(scope, n.Alternate)

	case ast.UnaryExpression, ast.UpdateExpression, ast.SpreadElement, ast.AwaitExpression, ast.YieldExpression:
		b.bindExpr(scope, n.Argument)

	case ast.SequenceExpression, ast.ArrayExpression:
		for _, e := range n.Elements {
			b.bindExpr(scope, e)
		}

	case ast.ObjectExpression:
		for _, p := range n.Properties {
			if p.Kind == ast.SpreadElement {
				b.bindExpr(scope, p.Argument)
				continue
			}
			if p.Computed {
				b.bindExpr(scope, p.Key)
			}
			b.bindExpr(scope, p.Init)
		}

	case ast.TemplateLiteral:
		for _, e := range n.Expressions {
			b.bindExpr(scope, e)
		}
	}
}

// bindAssignTarget resolves the left-hand side of an assignment: a plain
// identifier or member expression is resolved like a read; a destructuring
// pattern on the left of `=` refers to already-declared bindings, so each
// leaf is resolved rather than declared.
func (b *binder) bindAssignTarget(scope *Scope, left *ast.Node) {
	if left == nil {
		return
	}
	switch left.Kind {
	case ast.Identifier:
		b.resolve(scope, left)
	case ast.MemberExpression:
		b.bindExpr(scope, left)
	case ast.ArrayPattern, ast.ObjectPattern:
		for _, id := range patternLeaves(left) {
			b.resolve(scope, id)
		}
	}
}
