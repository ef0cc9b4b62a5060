package callgraph

import (
	"encoding/json"
	"fmt"

	"github.com/1homsi/fieldcg/internal/ast"
)

// Projection selects one of the edge-extraction output shapes.
type Projection string

const (
	ProjectionDefault     Projection = "default"
	ProjectionStatic      Projection = "static"
	ProjectionNativeCalls Projection = "nativecalls"
	ProjectionACG         Projection = "acg"
)

func ParseProjection(s string) (Projection, bool) {
	switch s {
	case "", "default":
		return ProjectionDefault, true
	case "static":
		return ProjectionStatic, true
	case "nativecalls":
		return ProjectionNativeCalls, true
	case "acg":
		return ProjectionACG, true
	default:
		return "", false
	}
}

// JSONEdge is one entry of the default/static/nativecalls output array.
type JSONEdge struct {
	Source NodeLabel `json:"source"`
	Target NodeLabel `json:"target"`
}

// Render projects res into the JSON-serializable shape p selects and
// marshals it.
func Render(res *Result, p Projection) ([]byte, error) {
	switch p {
	case ProjectionStatic:
		return json.Marshal(renderStatic(res))
	case ProjectionNativeCalls:
		return json.Marshal(renderNativeCalls(res))
	case ProjectionACG:
		return json.Marshal(renderACG(res))
	default:
		return json.Marshal(renderDefault(res))
	}
}

func renderDefault(res *Result) []JSONEdge {
	out := make([]JSONEdge, 0, len(res.Edges))
	for _, e := range res.Edges {
		src := CallLabel(e.Call)
		var tgt NodeLabel
		if e.Target != nil {
			tgt = LabelOf(e.Target)
		} else {
			tgt = NativeLabel(e.Native)
		}
		out = append(out, JSONEdge{Source: src, Target: tgt})
	}
	return out
}

// renderStatic excludes native targets and substitutes the enclosing
// function's label and range for the call's own as the edge's source.
func renderStatic(res *Result) []JSONEdge {
	out := make([]JSONEdge, 0, len(res.Edges))
	for _, e := range res.Edges {
		if e.Target == nil {
			continue
		}
		out = append(out, JSONEdge{
			Source: EnclosingFunctionLabel(e.Call),
			Target: LabelOf(e.Target),
		})
	}
	return out
}

// renderNativeCalls emits only edges into native targets, with each
// function-typed argument of the call attributed as the edge's source.
func renderNativeCalls(res *Result) []JSONEdge {
	var out []JSONEdge
	for _, e := range res.Edges {
		if e.Target != nil {
			continue
		}
		for _, arg := range e.Call.Arguments {
			if arg == nil || !arg.IsFunction() {
				continue
			}
			out = append(out, JSONEdge{
				Source: LabelOf(arg),
				Target: NativeLabel(e.Native),
			})
		}
	}
	return out
}

// renderACG emits the raw edges as "source-pos -> target-pos" strings.
func renderACG(res *Result) []string {
	out := make([]string, 0, len(res.Edges))
	for _, e := range res.Edges {
		src := pos(e.Call)
		var tgt string
		if e.Target != nil {
			tgt = pos(e.Target)
		} else {
			tgt = "Native:" + e.Native
		}
		out = append(out, fmt.Sprintf("%s -> %s", src, tgt))
	}
	return out
}

func pos(n *ast.Node) string {
	return fmt.Sprintf("%s:%d:%d", n.File, n.Range.Start.Row, n.Range.Start.Column)
}
