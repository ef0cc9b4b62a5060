// Package ast defines the node shape the rest of the analyzer operates on.
//
// Real parsers (here, tree-sitter) produce a CST in their own shape; internal/parser
// converts that CST into the Node shape defined here, which is deliberately close
// to the ESTree convention: a kind tag, a byte range, a line/column Loc, and
// child references reachable through named accessor fields rather than a
// generic children slice, since most of the decorator/binder/flow logic needs
// specific children by role ("callee", "arguments", "object", "property", ...).
package ast

// Kind tags every Node with its syntactic category.
type Kind string

const (
	Program               Kind = "Program"
	Identifier            Kind = "Identifier"
	PrivateIdentifier      Kind = "PrivateIdentifier"
	Literal               Kind = "Literal"
	TemplateLiteral        Kind = "TemplateLiteral"

	FunctionDeclaration   Kind = "FunctionDeclaration"
	FunctionExpression    Kind = "FunctionExpression"
	ArrowFunction         Kind = "ArrowFunctionExpression"
	ClassDeclaration      Kind = "ClassDeclaration"
	ClassExpression       Kind = "ClassExpression"
	MethodDefinition      Kind = "MethodDefinition"

	VariableDeclaration   Kind = "VariableDeclaration"
	VariableDeclarator    Kind = "VariableDeclarator"

	CallExpression        Kind = "CallExpression"
	NewExpression         Kind = "NewExpression"
	MemberExpression      Kind = "MemberExpression"
	AssignmentExpression  Kind = "AssignmentExpression"
	BinaryExpression      Kind = "BinaryExpression"
	LogicalExpression     Kind = "LogicalExpression"
	ConditionalExpression Kind = "ConditionalExpression"
	SequenceExpression    Kind = "SequenceExpression"
	UnaryExpression       Kind = "UnaryExpression"
	UpdateExpression      Kind = "UpdateExpression"
	SpreadElement         Kind = "SpreadElement"
	AwaitExpression       Kind = "AwaitExpression"
	YieldExpression       Kind = "YieldExpression"
	ThisExpression        Kind = "ThisExpression"

	ArrayExpression  Kind = "ArrayExpression"
	ObjectExpression Kind = "ObjectExpression"
	Property         Kind = "Property"

	ArrayPattern       Kind = "ArrayPattern"
	ObjectPattern      Kind = "ObjectPattern"
	AssignmentPattern  Kind = "AssignmentPattern"
	RestElement        Kind = "RestElement"

	BlockStatement      Kind = "BlockStatement"
	ExpressionStatement Kind = "ExpressionStatement"
	ReturnStatement     Kind = "ReturnStatement"
	IfStatement         Kind = "IfStatement"
	ForStatement        Kind = "ForStatement"
	ForInStatement      Kind = "ForInStatement"
	ForOfStatement      Kind = "ForOfStatement"
	WhileStatement      Kind = "WhileStatement"
	DoWhileStatement    Kind = "DoWhileStatement"
	SwitchStatement     Kind = "SwitchStatement"
	SwitchCase          Kind = "SwitchCase"
	TryStatement        Kind = "TryStatement"
	CatchClause         Kind = "CatchClause"
	ThrowStatement      Kind = "ThrowStatement"
	LabeledStatement    Kind = "LabeledStatement"
	BreakStatement      Kind = "BreakStatement"
	ContinueStatement   Kind = "ContinueStatement"
	EmptyStatement      Kind = "EmptyStatement"

	ImportDeclaration        Kind = "ImportDeclaration"
	ImportDefaultSpecifier   Kind = "ImportDefaultSpecifier"
	ImportSpecifier          Kind = "ImportSpecifier"
	ImportNamespaceSpecifier Kind = "ImportNamespaceSpecifier"
	ExportNamedDeclaration   Kind = "ExportNamedDeclaration"
	ExportDefaultDeclaration Kind = "ExportDefaultDeclaration"
	ExportSpecifier          Kind = "ExportSpecifier"

	Unknown Kind = "Unknown"
)

// Position is a 0-based line/column pair, matching common JS-tooling convention.
type Position struct {
	Row    int
	Column int
}

// Range is a half-open byte range [Start, End) plus its row/column endpoints.
type Range struct {
	StartByte, EndByte int
	Start, End         Position
}

// Node is a single AST node. Children are reachable through the role-specific
// fields below rather than a single generic slice; Children() enumerates whichever
// of these are non-nil for a given node's Kind.
type Node struct {
	Kind  Kind
	Range Range
	File  string

	// Identifier / Literal
	Name  string // Identifier name, or literal's raw text
	Value string // literal value for simple cases (string/number text)

	// Declarations / bindings
	ID       *Node // declared name (FunctionDeclaration.id, VariableDeclarator.id, ClassDeclaration.id, CatchClause.param)
	Params   []*Node
	Body     *Node // BlockStatement, or expression body for arrow functions
	Async    bool
	Generator bool

	// VariableDeclaration
	Kind_ string // "var" | "let" | "const" (named Kind_ to avoid clashing with Kind)
	Decls []*Node

	// VariableDeclarator / AssignmentPattern / Property
	Init *Node

	// CallExpression / NewExpression
	Callee    *Node
	Arguments []*Node

	// MemberExpression
	Object   *Node
	Property_ *Node
	Computed bool

	// AssignmentExpression / BinaryExpression / LogicalExpression
	Left     *Node
	Right    *Node
	Operator string

	// ConditionalExpression / IfStatement / loops
	Test       *Node
	Consequent *Node
	Alternate  *Node
	Update     *Node // ForStatement.update

	// UnaryExpression / UpdateExpression / SpreadElement / AwaitExpression / YieldExpression / RestElement
	Argument *Node
	Prefix   bool

	// SequenceExpression / ArrayExpression / array pattern elements
	Elements []*Node

	// ObjectExpression / ObjectPattern
	Properties []*Node

	// Property
	Key      *Node
	Shorthand bool
	Method   bool

	// Class
	SuperClass *Node
	Members    []*Node // MethodDefinition nodes

	// MethodDefinition
	Static bool
	Kind2  string // "method" | "get" | "set" | "constructor" | "field"

	// Statements with substructure
	Statements   []*Node // Program.Statements / BlockStatement.Statements
	Discriminant *Node   // SwitchStatement
	Cases        []*Node
	Handler      *Node // TryStatement.handler (CatchClause)
	Finalizer    *Node
	Label        *Node

	// Import/export
	Source      *Node // string literal module specifier
	Specifiers  []*Node
	Local       *Node
	Imported    *Node
	Exported    *Node
	Declaration *Node

	// TemplateLiteral
	Expressions []*Node

	// Parent link, set by the parser/converter during construction (pre-order, so
	// parent is always set before its children are visited by later passes).
	Parent *Node

	attrs Attributes
}

// Attrs returns the mutable side-table attribute bag for this node. The zero
// value is usable; fields are written at most once by Decorator/Binder.
func (n *Node) Attrs() *Attributes {
	return &n.attrs
}

// IsFunction reports whether n is one of the three function-node kinds.
func (n *Node) IsFunction() bool {
	switch n.Kind {
	case FunctionDeclaration, FunctionExpression, ArrowFunction:
		return true
	default:
		return false
	}
}

// IsCallLike reports whether n is a CallExpression or NewExpression.
func (n *Node) IsCallLike() bool {
	return n.Kind == CallExpression || n.Kind == NewExpression
}

// Children returns n's direct AST children in a stable, kind-dependent order.
// Used by the Decorator's single pre-order walk.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	add := func(c *Node) {
		if c != nil {
			out = append(out, c)
		}
	}
	addAll := func(cs []*Node) {
		for _, c := range cs {
			add(c)
		}
	}

	add(n.ID)
	addAll(n.Params)
	add(n.Body)
	addAll(n.Decls)
	add(n.Init)
	add(n.Callee)
	addAll(n.Arguments)
	add(n.Object)
	add(n.Property_)
	add(n.Left)
	add(n.Right)
	add(n.Test)
	add(n.Consequent)
	add(n.Alternate)
	add(n.Update)
	add(n.Argument)
	addAll(n.Elements)
	addAll(n.Properties)
	add(n.Key)
	add(n.SuperClass)
	addAll(n.Members)
	addAll(n.Statements)
	add(n.Discriminant)
	addAll(n.Cases)
	add(n.Handler)
	add(n.Finalizer)
	add(n.Label)
	add(n.Source)
	addAll(n.Specifiers)
	add(n.Local)
	add(n.Imported)
	add(n.Exported)
	add(n.Declaration)
	addAll(n.Expressions)
	return out
}
