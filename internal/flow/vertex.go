package flow

import (
	"fmt"

	"github.com/1homsi/fieldcg/internal/ast"
	"github.com/zeebo/xxh3"
)

// Kind discriminates the vertex variants of the flow graph.
type Kind int

const (
	Var Kind = iota
	Glob
	Prop
	Func
	Callee
	Arg
	Res
	Ret
	Expr
	Native
	UnknownVertex
	ModuleDefault
)

// Vertex is a flow-graph node. It is a plain comparable value: Go's struct
// equality already gives two requests for "the same" vertex (e.g. the Var of
// a given declaration node) the same identity, since vertex identity is
// purely structural — no interning is required for correctness. The arena
// in Graph interns vertices anyway, for a contiguous-storage representation
// that keeps the reachability DFS cache-friendly.
type Vertex struct {
	Kind  Kind
	Decl  *ast.Node // Var
	Name  string    // Glob, Prop, Native, ModuleDefault (module path)
	Fn    *ast.Node // Func, Ret
	Call  *ast.Node // Callee, Res, Arg
	Index int       // Arg: 0-based argument position
	Node  *ast.Node // Expr: the generic computed-expression node
}

func VarOf(decl *ast.Node) Vertex       { return Vertex{Kind: Var, Decl: decl} }
func GlobOf(name string) Vertex         { return Vertex{Kind: Glob, Name: name} }
func PropOf(name string) Vertex         { return Vertex{Kind: Prop, Name: name} }
func FuncOf(fn *ast.Node) Vertex        { return Vertex{Kind: Func, Fn: fn} }
func CalleeOf(call *ast.Node) Vertex    { return Vertex{Kind: Callee, Call: call} }
func ArgOf(call *ast.Node, i int) Vertex { return Vertex{Kind: Arg, Call: call, Index: i} }
func ResOf(call *ast.Node) Vertex       { return Vertex{Kind: Res, Call: call} }
func RetOf(fn *ast.Node) Vertex         { return Vertex{Kind: Ret, Fn: fn} }
func ExprOf(node *ast.Node) Vertex      { return Vertex{Kind: Expr, Node: node} }
func NativeOf(name string) Vertex       { return Vertex{Kind: Native, Name: name} }
func ModuleDefaultOf(path string) Vertex { return Vertex{Kind: ModuleDefault, Name: path} }

// TheUnknown is the singleton Unknown vertex.
var TheUnknown = Vertex{Kind: UnknownVertex}

// hash returns a 64-bit content hash of v's discriminant fields, used only as
// a bucketing fast-path in Graph's arena; equality is always double-checked
// against the full struct (see Graph.intern), so a hash collision can never
// merge two distinct vertices.
func (v Vertex) hash() uint64 {
	key := fmt.Sprintf("%d|%p|%p|%p|%p|%d|%s", v.Kind, v.Decl, v.Fn, v.Node, v.Call, v.Index, v.Name)
	return xxh3.HashString(key)
}

func (v Vertex) String() string {
	switch v.Kind {
	case Var:
		return fmt.Sprintf("Var(%p)", v.Decl)
	case Glob:
		return "Glob(" + v.Name + ")"
	case Prop:
		return "Prop(" + v.Name + ")"
	case Func:
		return fmt.Sprintf("Func(%p)", v.Fn)
	case Callee:
		return fmt.Sprintf("Callee(%p)", v.Call)
	case Arg:
		return fmt.Sprintf("Arg(%p,%d)", v.Call, v.Index)
	case Res:
		return fmt.Sprintf("Res(%p)", v.Call)
	case Ret:
		return fmt.Sprintf("Ret(%p)", v.Fn)
	case Expr:
		return fmt.Sprintf("Expr(%p)", v.Node)
	case Native:
		return "Native(" + v.Name + ")"
	case ModuleDefault:
		return "ModuleDefault(" + v.Name + ")"
	default:
		return "Unknown"
	}
}
