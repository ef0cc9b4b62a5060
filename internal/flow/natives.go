package flow

import (
	"sort"

	"github.com/1homsi/fieldcg/internal/ast"
)

// NativeSpec describes one entry of the fixed built-in table.
type NativeSpec struct {
	Name string
	// CallbackArg is the 0-based argument index carrying a callback, or -1
	// if this native takes no callback (it still gets a Native vertex so
	// `.name` call-sites see it as a possible target).
	CallbackArg int
	// Sequential marks the array-of-functions sequential-flow combinator
	// pattern (series/waterfall/pipe/compose and similar helpers).
	Sequential bool
}

// nativeTable is the fixed name -> abstract-pattern mapping. Scheduler and
// timer names are listed separately purely so their Native(name) vertex
// carries the real name in output labels; wiring is identical for both,
// since the core has no notion of timing or ordering.
var nativeTable = map[string]NativeSpec{
	"forEach":  {Name: "forEach", CallbackArg: 0},
	"map":      {Name: "map", CallbackArg: 0},
	"filter":   {Name: "filter", CallbackArg: 0},
	"reduce":   {Name: "reduce", CallbackArg: 0},
	"some":     {Name: "some", CallbackArg: 0},
	"every":    {Name: "every", CallbackArg: 0},
	"find":     {Name: "find", CallbackArg: 0},
	"findIndex": {Name: "findIndex", CallbackArg: 0},
	"sort":     {Name: "sort", CallbackArg: 0},

	"then":    {Name: "then", CallbackArg: 0},
	"catch":   {Name: "catch", CallbackArg: 0},
	"finally": {Name: "finally", CallbackArg: 0},

	"setTimeout":      {Name: "setTimeout", CallbackArg: 0},
	"setInterval":     {Name: "setInterval", CallbackArg: 0},
	"setImmediate":    {Name: "setImmediate", CallbackArg: 0},
	"queueMicrotask":  {Name: "queueMicrotask", CallbackArg: 0},
	"nextTick":        {Name: "nextTick", CallbackArg: 0},
	"requestAnimationFrame": {Name: "requestAnimationFrame", CallbackArg: 0},

	"addEventListener":    {Name: "addEventListener", CallbackArg: 1},
	"removeEventListener":  {Name: "removeEventListener", CallbackArg: 1},
	"on":                  {Name: "on", CallbackArg: 1},
	"once":                {Name: "once", CallbackArg: 1},

	"call":  {Name: "call", CallbackArg: -1},
	"apply": {Name: "apply", CallbackArg: -1},
	"bind":  {Name: "bind", CallbackArg: -1},

	"all":         {Name: "all", Sequential: true},
	"series":      {Name: "series", Sequential: true},
	"waterfall":   {Name: "waterfall", Sequential: true},
	"pipe":        {Name: "pipe", Sequential: true},
	"compose":     {Name: "compose", Sequential: true},
}

// LookupNative returns the native table entry for a property name, if any.
func LookupNative(name string) (NativeSpec, bool) {
	spec, ok := nativeTable[name]
	return spec, ok
}

// NativeTableNames returns every registered native name, for callers (the
// extractor) that need to enumerate Native(name) vertices.
func NativeTableNames() map[string]bool {
	out := make(map[string]bool, len(nativeTable))
	for name := range nativeTable {
		out[name] = true
	}
	return out
}

// ApplyNatives wires every native-model edge into g: for every native, in
// name order, a Native(name) -> Prop(name) edge so any `.name` call-site's
// Callee vertex is reachable from it, and a Native(name) -> Glob(name) edge
// so a bare global call such as setTimeout(...) is too, plus, for
// callback-accepting/sequential entries, the callback/combinator wiring
// below. calls is every CallExpression/NewExpression node discovered by the
// decorator.
func ApplyNatives(g *Graph, calls []*ast.Node) {
	names := make([]string, 0, len(nativeTable))
	for name := range nativeTable {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := NativeOf(name)
		g.AddEdge(v, PropOf(name))
		g.AddEdge(v, GlobOf(name))
	}

	for _, call := range calls {
		name, ok := calleeNativeName(call.Callee)
		if !ok {
			continue
		}
		spec, ok := nativeTable[name]
		if !ok {
			continue
		}
		switch {
		case spec.Sequential:
			wireSequentialCombinator(g, call)
		case spec.CallbackArg >= 0 && spec.CallbackArg < len(call.Arguments):
			cb := call.Arguments[spec.CallbackArg]
			if !cb.IsFunction() {
				continue
			}
			// The callback is considered invoked directly at this call
			// site: it is exactly what the native ends up calling.
			g.AddEdge(FuncOf(cb), CalleeOf(call))
		}
	}
}

// calleeNativeName extracts the built-in name a call's callee refers to,
// whether written as a bare global (`setTimeout(...)`) or a member access
// (`arr.forEach(...)`).
func calleeNativeName(callee *ast.Node) (string, bool) {
	if callee == nil {
		return "", false
	}
	switch callee.Kind {
	case ast.Identifier:
		return callee.Name, true
	case ast.MemberExpression:
		if callee.Computed || callee.Property_ == nil {
			return "", false
		}
		return callee.Property_.Name, true
	default:
		return "", false
	}
}

// wireSequentialCombinator implements the sequential-flow combinator: for
// each adjacent pair (f_k, f_{k+1}) among the combinator's
// function-valued arguments, synthesize a pseudo call-site reachable from
// Ret(f_k) whose callee is reachable from Func(f_{k+1}), with its
// enclosing-function attribute set to f_k. The pseudo call-sites exist only
// in g: they are not returned or added to calls, so Extract, which walks the
// decorator's call list, reports no f_k -> f_{k+1} edge for them. The first
// function's Func vertex is linked to the original combinator call's own
// Callee slot, and that link does appear as a call-graph edge.
func wireSequentialCombinator(g *Graph, call *ast.Node) {
	fns := make([]*ast.Node, 0, len(call.Arguments))
	for _, a := range call.Arguments {
		if a != nil && a.IsFunction() {
			fns = append(fns, a)
		}
	}
	if len(fns) == 0 {
		return
	}
	g.AddEdge(FuncOf(fns[0]), CalleeOf(call))
	for i := 0; i+1 < len(fns); i++ {
		fk, fk1 := fns[i], fns[i+1]
		pseudo := &ast.Node{Kind: ast.CallExpression, Name: "seq-pseudo-call"}
		pseudo.Attrs().EnclosingFunction = fk
		g.AddEdge(FuncOf(fk1), CalleeOf(pseudo))
		g.AddEdge(RetOf(fk), CalleeOf(pseudo))
	}
}
