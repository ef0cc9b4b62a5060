package decorator

import (
	"fmt"

	"github.com/1homsi/fieldcg/internal/ast"
	"github.com/1homsi/fieldcg/internal/diagnostics"
)

// Run decorates every file in files (pre-order, file-list order) and returns
// the populated Context. files must already have Node.Parent set by the
// parser/converter.
func Run(diag *diagnostics.Sink, files []*ast.Node) *Context {
	ctx := NewContext(diag)
	anonCounters := make(map[any]int)

	for _, file := range files {
		ctx.Files = append(ctx.Files, file)
		walk(ctx, file, file.File, nil, anonCounters)
	}
	return ctx
}

func walk(ctx *Context, n *ast.Node, file string, enclosing *ast.Node, anonCounters map[any]int) {
	if n == nil {
		return
	}
	n.Attrs().EnclosingFunction = enclosing
	n.Attrs().EnclosingFile = file

	if n.IsCallLike() {
		ctx.Calls = append(ctx.Calls, n)
		tagCallbackArguments(n)
	}

	nextEnclosing := enclosing
	if n.IsFunction() {
		ctx.Functions = append(ctx.Functions, n)
		nameFunction(ctx, n, anonCounters)
		nextEnclosing = n
	}

	for _, child := range n.Children() {
		walk(ctx, child, file, nextEnclosing, anonCounters)
	}
}

// tagCallbackArguments pre-tags every function-typed argument of a call with
// a CallbackContext, before the generic walk descends into it.
func tagCallbackArguments(call *ast.Node) {
	var funcPositions []int
	for i, arg := range call.Arguments {
		if arg != nil && arg.IsFunction() {
			funcPositions = append(funcPositions, i)
		}
	}
	for pos, argIdx := range funcPositions {
		call.Arguments[argIdx].Attrs().Callback = &ast.CallbackContext{
			Call:       call,
			ArgIndex:   argIdx,
			TotalFuncs: len(funcPositions),
			Position:   pos + 1,
		}
	}
}

// nameFunction implements the naming pipeline for one function node: explicit
// id, method-definition key, parent assignment/declarator name, callback
// classification (already tagged), or free-anonymous indexing.
func nameFunction(ctx *Context, fn *ast.Node, anonCounters map[any]int) {
	attrs := fn.Attrs()

	if fn.ID != nil && fn.ID.Kind == ast.Identifier && fn.ID.Name != "" {
		attrs.DeclaredName = fn.ID.Name
		return
	}

	if name, ok := methodDefinitionName(ctx, fn); ok {
		attrs.DeclaredName = name
		return
	}

	if name, ok := parentBindingName(fn); ok {
		attrs.ParentName = name
		attrs.HasParentName = true
		return
	}

	if attrs.Callback != nil {
		return // label() derives the text on demand; nothing further to assign here.
	}

	key := freeAnonKey(attrs.EnclosingFunction, attrs.EnclosingFile)
	anonCounters[key]++
	attrs.AnonIndex = anonCounters[key]
}

func freeAnonKey(enclosing *ast.Node, file string) any {
	if enclosing != nil {
		return enclosing
	}
	return "global:" + file
}

// methodDefinitionName handles `{foo: function(){}}` and class method bodies.
func methodDefinitionName(ctx *Context, fn *ast.Node) (string, bool) {
	parent := fn.Parent
	if parent == nil {
		return "", false
	}

	switch parent.Kind {
	case ast.Property:
		if parent.Init != fn {
			return "", false
		}
		if parent.Computed {
			ctx.Diagnostics.Warn("decorator", parent.Attrs().EnclosingFile,
				"computed method key is unsupported; function remains anonymous")
			return "", false
		}
		return keyName(ctx, parent.Key, parent)
	case ast.MethodDefinition:
		if parent.Init != fn {
			return "", false
		}
		if parent.Kind2 == "constructor" {
			return "constructor", true
		}
		if parent.Computed {
			ctx.Diagnostics.Warn("decorator", parent.Attrs().EnclosingFile,
				"computed method key is unsupported; function remains anonymous")
			return "", false
		}
		return keyName(ctx, parent.Key, parent)
	default:
		return "", false
	}
}

// keyName resolves a Property/MethodDefinition key to a name: identifier keys
// are used directly; literal keys are used only if they are valid identifier
// text. Computed keys and literal keys that are not valid identifiers
// produce a warning and remain anonymous.
func keyName(ctx *Context, key *ast.Node, owner *ast.Node) (string, bool) {
	if key == nil {
		return "", false
	}
	switch key.Kind {
	case ast.Identifier:
		return key.Name, true
	case ast.Literal:
		if isValidIdentifierName(key.Value) {
			return key.Value, true
		}
		ctx.Diagnostics.Warn("decorator", owner.Attrs().EnclosingFile,
			"literal method key %q is not a valid identifier; function remains anonymous", key.Value)
		return "", false
	default:
		ctx.Diagnostics.Warn("decorator", owner.Attrs().EnclosingFile,
			"computed method key is unsupported; function remains anonymous")
		return "", false
	}
}

func isValidIdentifierName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !isIdentStart(r) {
				return false
			}
			continue
		}
		if !isIdentPart(r) {
			return false
		}
	}
	return true
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || ('0' <= r && r <= '9')
}

// parentBindingName handles `x = function(){}`, `exports.x = function(){}`,
// and `var/let/const x = function(){}`.
func parentBindingName(fn *ast.Node) (string, bool) {
	parent := fn.Parent
	if parent == nil {
		return "", false
	}

	switch parent.Kind {
	case ast.VariableDeclarator:
		if parent.Init != fn || parent.ID == nil || parent.ID.Kind != ast.Identifier {
			return "", false
		}
		return parent.ID.Name, true

	case ast.AssignmentExpression:
		if parent.Right != fn {
			return "", false
		}
		left := parent.Left
		if left == nil {
			return "", false
		}
		if left.Kind == ast.Identifier {
			return left.Name, true
		}
		if left.Kind == ast.MemberExpression && !left.Computed && left.Property_ != nil && left.Property_.Kind == ast.Identifier {
			return left.Property_.Name, true
		}
		return "", false

	default:
		return "", false
	}
}

// Label renders the public, human-readable name for fn, memoized in the
// node's side table.
func Label(fn *ast.Node) string {
	attrs := fn.Attrs()
	if attrs.LabelComputed {
		return attrs.LabelCache
	}

	var label string
	switch {
	case attrs.DeclaredName != "":
		label = attrs.DeclaredName
	case attrs.HasParentName:
		label = attrs.ParentName
	case attrs.Callback != nil:
		c := attrs.Callback
		callee := renderCallee(c.Call.Callee)
		if c.TotalFuncs == 1 {
			label = fmt.Sprintf("clb(%s)", callee)
		} else {
			label = fmt.Sprintf("clb(%s)[%d]", callee, c.Position)
		}
	default:
		parentLabel := "global"
		if attrs.EnclosingFunction != nil {
			parentLabel = Label(attrs.EnclosingFunction)
		}
		label = fmt.Sprintf("%s:anon[%d]", parentLabel, attrs.AnonIndex)
	}

	attrs.LabelCache = label
	attrs.LabelComputed = true
	return label
}

// renderCallee derives the "C" text used inside clb(C): an identifier yields
// its own name, a member-expression chain yields "a.b.c" with computed
// segments rendered as "[computed]". Anything else (an arbitrary expression
// in callee position) yields "(anonymous)".
func renderCallee(callee *ast.Node) string {
	if callee == nil {
		return "(anonymous)"
	}
	switch callee.Kind {
	case ast.Identifier:
		return callee.Name
	case ast.MemberExpression:
		var base string
		if callee.Object != nil {
			base = renderCallee(callee.Object)
		} else {
			base = "(anonymous)"
		}
		var prop string
		if callee.Computed {
			prop = "[computed]"
		} else if callee.Property_ != nil && callee.Property_.Kind == ast.Identifier {
			prop = callee.Property_.Name
		} else {
			prop = "[computed]"
		}
		return base + "." + prop
	default:
		return "(anonymous)"
	}
}
