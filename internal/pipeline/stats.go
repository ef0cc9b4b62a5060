package pipeline

import "github.com/1homsi/fieldcg/internal/ast"

// CallbackStats is the `--countCB` output: per-enclosing-call counts of how
// many function-typed arguments were classified as callbacks, keyed by the
// call's rendered callee text.
type CallbackStats struct {
	Callee string `json:"callee"`
	File   string `json:"file"`
	Count  int    `json:"count"`
}

// CountCallbacks tallies every CallbackContext recorded by the decorator
// across all discovered functions.
func CountCallbacks(functions []*ast.Node) []CallbackStats {
	type key struct {
		callee string
		file   string
	}
	counts := map[key]int{}
	for _, fn := range functions {
		cb := fn.Attrs().Callback
		if cb == nil {
			continue
		}
		k := key{callee: calleeKey(cb.Call.Callee), file: cb.Call.File}
		counts[k]++
	}

	out := make([]CallbackStats, 0, len(counts))
	for k, n := range counts {
		out = append(out, CallbackStats{Callee: k.callee, File: k.file, Count: n})
	}
	return out
}

func calleeKey(callee *ast.Node) string {
	if callee == nil {
		return "(anonymous)"
	}
	switch callee.Kind {
	case ast.Identifier:
		return callee.Name
	case ast.MemberExpression:
		if callee.Computed {
			return calleeKey(callee.Object) + ".[computed]"
		}
		if callee.Property_ != nil {
			return calleeKey(callee.Object) + "." + callee.Property_.Name
		}
	}
	return "(anonymous)"
}
