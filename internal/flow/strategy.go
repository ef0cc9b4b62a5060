package flow

import "github.com/1homsi/fieldcg/internal/ast"

// StrategyKind selects how inter-procedural edges are added.
type StrategyKind int

const (
	None StrategyKind = iota
	OneShot
	Demand
)

func ParseStrategy(s string) (StrategyKind, bool) {
	switch s {
	case "none", "NONE":
		return None, true
	case "oneshot", "ONESHOT", "":
		return OneShot, true
	case "demand", "DEMAND":
		return Demand, true
	default:
		return 0, false
	}
}

// ApplyStrategy wires the chosen strategy's inter-procedural edges into g.
// Each strategy is strictly additive over the previous one, so
// edges(NONE) ⊆ edges(ONESHOT) ⊆ edges(DEMAND) holds by construction.
func ApplyStrategy(g *Graph, strategy StrategyKind, functions, calls []*ast.Node) {
	applyNoneEdges(g, functions)
	if strategy == None {
		return
	}
	applyOneShotEdges(g, calls)
	if strategy == OneShot {
		return
	}
	applyDemandFixpoint(g, functions, calls)
}

// applyNoneEdges implements NONE: every parameter may receive anything
// (Unknown -> Var(param)) and every return may flow anywhere
// (Ret(fn) -> Unknown), since without inter-procedural analysis no call
// site can be attributed to a specific invocation.
func applyNoneEdges(g *Graph, functions []*ast.Node) {
	for _, fn := range functions {
		for _, p := range fn.Params {
			for _, leaf := range paramLeaves(p) {
				g.AddEdge(TheUnknown, VarOf(leaf))
			}
		}
		g.AddEdge(RetOf(fn), TheUnknown)
	}
}

// applyOneShotEdges detects one-shot closures: calls whose callee is a
// function literal in the same expression, directly invoked or invoked via
// `.call(...)`/`.apply(...)`. Each detected pair gets precise
// Arg(call,i) -> Var(param_i) and Ret(callee) -> Res(call) edges.
func applyOneShotEdges(g *Graph, calls []*ast.Node) {
	for _, call := range calls {
		if call.Callee == nil {
			continue
		}
		switch {
		case call.Callee.IsFunction():
			wireOneShot(g, call, call.Callee, 0, nil)

		case call.Callee.Kind == ast.MemberExpression && !call.Callee.Computed &&
			call.Callee.Object != nil && call.Callee.Object.IsFunction():
			switch call.Callee.Property_.Name {
			case "call":
				wireOneShot(g, call, call.Callee.Object, 1, nil)
			case "apply":
				var literalArgs []*ast.Node
				if len(call.Arguments) > 1 && call.Arguments[1] != nil && call.Arguments[1].Kind == ast.ArrayExpression {
					literalArgs = call.Arguments[1].Elements
				}
				wireOneShot(g, call, call.Callee.Object, -1, literalArgs)
			}
		}
	}
}

// wireOneShot wires one detected one-shot pair. argOffset is the index in
// call.Arguments that corresponds to param 0 (used for the `.call` thisArg
// shift); pass -1 together with a non-nil literalArgs to wire directly from
// an `.apply` array literal's elements instead of Arg() vertices.
func wireOneShot(g *Graph, call, callee *ast.Node, argOffset int, literalArgs []*ast.Node) {
	switch {
	case literalArgs != nil:
		bindParamsToLiteralArgs(g, callee.Params, literalArgs)
	case argOffset >= 0:
		bindParamsToCallArgs(g, callee.Params, call, argOffset)
	}
	g.AddEdge(RetOf(callee), ResOf(call))
}

// bindParamsToCallArgs wires params to call's arguments positionally,
// starting from argIdx (the `.call` thisArg shift). A rest parameter binds
// every remaining Arg(call, i) at and beyond its own position, not just the
// one at its index; it is always the last top-level parameter, so binding
// stops there. Each top-level parameter takes one argument position; every
// leaf of a destructuring parameter receives that position's argument.
func bindParamsToCallArgs(g *Graph, params []*ast.Node, call *ast.Node, argIdx int) {
	for _, p := range params {
		if p.Kind == ast.RestElement {
			for _, leaf := range paramLeaves(p.Argument) {
				for j := argIdx; j < len(call.Arguments); j++ {
					g.AddEdge(ArgOf(call, j), VarOf(leaf))
				}
			}
			return
		}
		if argIdx >= len(call.Arguments) {
			return
		}
		for _, leaf := range paramLeaves(p) {
			g.AddEdge(ArgOf(call, argIdx), VarOf(leaf))
		}
		argIdx++
	}
}

// bindParamsToLiteralArgs is bindParamsToCallArgs's counterpart for an
// `.apply(thisArg, [a, b, c])` array literal: args are the literal's own
// elements, wired as Expr vertices instead of Arg() vertices.
func bindParamsToLiteralArgs(g *Graph, params []*ast.Node, literalArgs []*ast.Node) {
	argIdx := 0
	for _, p := range params {
		if p.Kind == ast.RestElement {
			for _, leaf := range paramLeaves(p.Argument) {
				for j := argIdx; j < len(literalArgs); j++ {
					g.AddEdge(ExprOf(literalArgs[j]), VarOf(leaf))
				}
			}
			return
		}
		if argIdx >= len(literalArgs) {
			return
		}
		for _, leaf := range paramLeaves(p) {
			g.AddEdge(ExprOf(literalArgs[argIdx]), VarOf(leaf))
		}
		argIdx++
	}
}

func paramLeaves(pattern *ast.Node) []*ast.Node {
	if pattern == nil {
		return nil
	}
	switch pattern.Kind {
	case ast.Identifier:
		return []*ast.Node{pattern}
	case ast.AssignmentPattern:
		return paramLeaves(pattern.Left)
	case ast.RestElement:
		return paramLeaves(pattern.Argument)
	case ast.ArrayPattern:
		var out []*ast.Node
		for _, el := range pattern.Elements {
			out = append(out, paramLeaves(el)...)
		}
		return out
	case ast.ObjectPattern:
		var out []*ast.Node
		for _, prop := range pattern.Properties {
			if prop.Kind == ast.RestElement {
				out = append(out, paramLeaves(prop.Argument)...)
				continue
			}
			out = append(out, paramLeaves(prop.Init)...)
		}
		return out
	default:
		return nil
	}
}

// bindDemandParams wires fn's params to call's arguments positionally, the
// same way bindParamsToCallArgs does, except a non-rest param beyond the
// call's argument count falls back to Unknown -> Var(param) rather than
// binding nothing, matching NONE's blanket-unknown treatment of excess
// parameters. A rest parameter still just receives every remaining
// Arg(call, i); an absent excess argument is not itself a value flowing in.
func bindDemandParams(g *Graph, params []*ast.Node, call *ast.Node) {
	argIdx := 0
	for _, p := range params {
		if p.Kind == ast.RestElement {
			for _, leaf := range paramLeaves(p.Argument) {
				for j := argIdx; j < len(call.Arguments); j++ {
					g.AddEdge(ArgOf(call, j), VarOf(leaf))
				}
			}
			return
		}
		for _, leaf := range paramLeaves(p) {
			if argIdx < len(call.Arguments) {
				g.AddEdge(ArgOf(call, argIdx), VarOf(leaf))
			} else {
				g.AddEdge(TheUnknown, VarOf(leaf))
			}
		}
		argIdx++
	}
}

// applyDemandFixpoint implements DEMAND: repeatedly compute
// reachability; for every (Func(fn), Callee(c)) pair where Func(fn) reaches
// Callee(c), realize fn's parameter/return bindings at call site c. Stop
// once an iteration adds no new edges.
func applyDemandFixpoint(g *Graph, functions, calls []*ast.Node) {
	realized := map[[2]int]bool{}
	for {
		reach := NewReachability(g)
		added := false
		for _, fn := range functions {
			fnID, ok := g.VertexID(FuncOf(fn))
			if !ok {
				continue
			}
			for _, call := range calls {
				calleeID, ok := g.VertexID(CalleeOf(call))
				if !ok {
					continue
				}
				key := [2]int{fnID, calleeID}
				if realized[key] {
					continue
				}
				if !reach.Reaches(fnID, calleeID) {
					continue
				}
				realized[key] = true
				added = true
				bindDemandParams(g, fn.Params, call)
				g.AddEdge(RetOf(fn), ResOf(call))
			}
		}
		if !added {
			return
		}
	}
}
