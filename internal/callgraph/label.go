package callgraph

import (
	"github.com/1homsi/fieldcg/internal/ast"
	"github.com/1homsi/fieldcg/internal/decorator"
)

// Point is one row/column position.
type Point struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// ByteRange is a half-open byte offset range.
type ByteRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NodeLabel is the source/target shape of the output schema.
type NodeLabel struct {
	Label string    `json:"label"`
	File  string    `json:"file"`
	Start Point     `json:"start"`
	End   Point     `json:"end"`
	Range ByteRange `json:"range"`
}

// LabelOf renders the full output label for a user-defined function node.
func LabelOf(fn *ast.Node) NodeLabel {
	return NodeLabel{
		Label: decorator.Label(fn),
		File:  fn.File,
		Start: Point{Row: fn.Range.Start.Row, Column: fn.Range.Start.Column},
		End:   Point{Row: fn.Range.End.Row, Column: fn.Range.End.Column},
		Range: ByteRange{Start: fn.Range.StartByte, End: fn.Range.EndByte},
	}
}

// NativeLabel renders a native target's label: a sentinel file name and a
// zero-valued position and range, since natives have no real source location.
// The position fields are not null in the JSON output; they serialize as
// row/column 0 and byte range 0..0.
func NativeLabel(name string) NodeLabel {
	return NodeLabel{Label: name, File: "Native"}
}

// CallLabel renders a call site's label as the source side of an edge: the
// callee expression's rendered text, with the whole call expression's range.
func CallLabel(call *ast.Node) NodeLabel {
	return NodeLabel{
		Label: calleeText(call.Callee),
		File:  call.File,
		Start: Point{Row: call.Range.Start.Row, Column: call.Range.Start.Column},
		End:   Point{Row: call.Range.End.Row, Column: call.Range.End.Column},
		Range: ByteRange{Start: call.Range.StartByte, End: call.Range.EndByte},
	}
}

// EnclosingFunctionLabel renders the label for the function that lexically
// contains call, or "global" at module top level (used by the static
// projection's caller-range substitution).
func EnclosingFunctionLabel(call *ast.Node) NodeLabel {
	enclosing := call.Attrs().EnclosingFunction
	if enclosing == nil {
		return NodeLabel{Label: "global", File: call.File}
	}
	return LabelOf(enclosing)
}

func calleeText(callee *ast.Node) string {
	if callee == nil {
		return "(anonymous)"
	}
	switch callee.Kind {
	case ast.Identifier:
		return callee.Name
	case ast.MemberExpression:
		if callee.Computed {
			return calleeText(callee.Object) + ".[computed]"
		}
		if callee.Property_ != nil {
			return calleeText(callee.Object) + "." + callee.Property_.Name
		}
	}
	return "(anonymous)"
}
