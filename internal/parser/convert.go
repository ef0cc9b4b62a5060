package parser

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/1homsi/fieldcg/internal/ast"
)

// converter walks a tree-sitter CST and builds the equivalent internal/ast
// tree, one file at a time. It keeps the source buffer around since
// tree-sitter nodes are ranges into it, not owning text.
type converter struct {
	file string
	src  []byte
}

func (c *converter) text(n *tree_sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(c.src)
}

func (c *converter) rangeOf(n *tree_sitter.Node) ast.Range {
	start, end := n.StartPosition(), n.EndPosition()
	return ast.Range{
		StartByte: int(n.StartByte()),
		EndByte:   int(n.EndByte()),
		Start:     ast.Position{Row: int(start.Row), Column: int(start.Column)},
		End:       ast.Position{Row: int(end.Row), Column: int(end.Column)},
	}
}

func (c *converter) base(n *tree_sitter.Node) *ast.Node {
	return &ast.Node{Range: c.rangeOf(n), File: c.file}
}

func (c *converter) link(parent *ast.Node, children ...*ast.Node) {
	for _, ch := range children {
		if ch != nil {
			ch.Parent = parent
		}
	}
}

func (c *converter) namedChildren(n *tree_sitter.Node) []*tree_sitter.Node {
	var out []*tree_sitter.Node
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if ch := n.NamedChild(i); ch != nil {
			out = append(out, ch)
		}
	}
	return out
}

// convert converts one tree-sitter node (and its subtree) into the
// equivalent internal/ast Node. parent is wired after the node is built.
func (c *converter) convert(n *tree_sitter.Node, parent *ast.Node) *ast.Node {
	if n == nil {
		return nil
	}
	var out *ast.Node
	switch n.Kind() {
	case "program":
		out = c.base(n)
		out.Kind = ast.Program
		for _, s := range c.namedChildren(n) {
			out.Statements = append(out.Statements, c.convert(s, out))
		}

	case "identifier", "property_identifier", "shorthand_property_identifier",
		"shorthand_property_identifier_pattern", "type_identifier":
		out = c.base(n)
		out.Kind = ast.Identifier
		out.Name = c.text(n)

	case "private_property_identifier":
		out = c.base(n)
		out.Kind = ast.PrivateIdentifier
		out.Name = c.text(n)

	case "this":
		out = c.base(n)
		out.Kind = ast.ThisExpression

	case "number", "string", "true", "false", "null", "undefined", "regex":
		out = c.base(n)
		out.Kind = ast.Literal
		out.Value = stringLiteralValue(n, c)

	case "template_string":
		out = c.convertTemplateLiteral(n, parent)

	case "function_declaration", "generator_function_declaration":
		out = c.convertFunction(n, ast.FunctionDeclaration)

	case "function_expression", "function", "generator_function":
		out = c.convertFunction(n, ast.FunctionExpression)

	case "arrow_function":
		out = c.convertFunction(n, ast.ArrowFunction)

	case "class_declaration":
		out = c.convertClass(n, ast.ClassDeclaration)

	case "class":
		out = c.convertClass(n, ast.ClassExpression)

	case "method_definition":
		out = c.convertMethod(n)

	case "variable_declaration", "lexical_declaration":
		out = c.convertVariableDeclaration(n)

	case "variable_declarator":
		out = c.convertVariableDeclarator(n)

	case "expression_statement":
		out = c.base(n)
		out.Kind = ast.ExpressionStatement
		out.Argument = c.convert(n.NamedChild(0), out)

	case "return_statement":
		out = c.base(n)
		out.Kind = ast.ReturnStatement
		out.Argument = c.convert(n.NamedChild(0), out)

	case "throw_statement":
		out = c.base(n)
		out.Kind = ast.ThrowStatement
		out.Argument = c.convert(n.NamedChild(0), out)

	case "if_statement":
		out = c.base(n)
		out.Kind = ast.IfStatement
		out.Test = c.convert(n.ChildByFieldName("condition"), out)
		out.Consequent = c.convert(n.ChildByFieldName("consequence"), out)
		out.Alternate = c.convert(n.ChildByFieldName("alternative"), out)

	case "for_statement":
		out = c.base(n)
		out.Kind = ast.ForStatement
		out.Init = c.convert(n.ChildByFieldName("initializer"), out)
		out.Test = c.convert(n.ChildByFieldName("condition"), out)
		out.Update = c.convert(n.ChildByFieldName("increment"), out)
		out.Body = c.convert(n.ChildByFieldName("body"), out)

	case "for_in_statement":
		out = c.base(n)
		if forInIsOf(n, c) {
			out.Kind = ast.ForOfStatement
		} else {
			out.Kind = ast.ForInStatement
		}
		out.Left = c.convert(n.ChildByFieldName("left"), out)
		out.Right = c.convert(n.ChildByFieldName("right"), out)
		out.Body = c.convert(n.ChildByFieldName("body"), out)

	case "while_statement":
		out = c.base(n)
		out.Kind = ast.WhileStatement
		out.Test = c.convert(n.ChildByFieldName("condition"), out)
		out.Body = c.convert(n.ChildByFieldName("body"), out)

	case "do_statement":
		out = c.base(n)
		out.Kind = ast.DoWhileStatement
		out.Body = c.convert(n.ChildByFieldName("body"), out)
		out.Test = c.convert(n.ChildByFieldName("condition"), out)

	case "switch_statement":
		out = c.base(n)
		out.Kind = ast.SwitchStatement
		out.Discriminant = c.convert(n.ChildByFieldName("value"), out)
		body := n.ChildByFieldName("body")
		if body != nil {
			for _, ch := range c.namedChildren(body) {
				out.Cases = append(out.Cases, c.convertSwitchCase(ch, out))
			}
		}

	case "try_statement":
		out = c.base(n)
		out.Kind = ast.TryStatement
		out.Body = c.convert(n.ChildByFieldName("body"), out)
		if handler := n.ChildByFieldName("handler"); handler != nil {
			out.Handler = c.convertCatchClause(handler, out)
		}
		if fin := n.ChildByFieldName("finalizer"); fin != nil {
			out.Finalizer = c.convert(fin.NamedChild(0), out)
			if out.Finalizer == nil {
				out.Finalizer = c.convert(fin, out)
			}
		}

	case "labeled_statement":
		out = c.base(n)
		out.Kind = ast.LabeledStatement
		out.Label = c.convert(n.ChildByFieldName("label"), out)
		out.Body = c.convert(n.NamedChild(n.NamedChildCount()-1), out)

	case "break_statement":
		out = c.base(n)
		out.Kind = ast.BreakStatement
	case "continue_statement":
		out = c.base(n)
		out.Kind = ast.ContinueStatement
	case "empty_statement":
		out = c.base(n)
		out.Kind = ast.EmptyStatement

	case "statement_block":
		out = c.base(n)
		out.Kind = ast.BlockStatement
		for _, s := range c.namedChildren(n) {
			out.Statements = append(out.Statements, c.convert(s, out))
		}

	case "call_expression":
		out = c.convertCall(n, ast.CallExpression)
	case "new_expression":
		out = c.convertCall(n, ast.NewExpression)

	case "member_expression":
		out = c.base(n)
		out.Kind = ast.MemberExpression
		out.Object = c.convert(n.ChildByFieldName("object"), out)
		out.Property_ = c.convert(n.ChildByFieldName("property"), out)

	case "subscript_expression":
		out = c.base(n)
		out.Kind = ast.MemberExpression
		out.Computed = true
		out.Object = c.convert(n.ChildByFieldName("object"), out)
		out.Property_ = c.convert(n.ChildByFieldName("index"), out)

	case "assignment_expression":
		out = c.base(n)
		out.Kind = ast.AssignmentExpression
		out.Operator = "="
		out.Left = c.convert(n.ChildByFieldName("left"), out)
		out.Right = c.convert(n.ChildByFieldName("right"), out)

	case "augmented_assignment_expression":
		out = c.base(n)
		out.Kind = ast.AssignmentExpression
		out.Operator = c.text(n.ChildByFieldName("operator"))
		out.Left = c.convert(n.ChildByFieldName("left"), out)
		out.Right = c.convert(n.ChildByFieldName("right"), out)

	case "binary_expression":
		op := c.text(n.ChildByFieldName("operator"))
		out = c.base(n)
		if op == "&&" || op == "||" || op == "??" {
			out.Kind = ast.LogicalExpression
		} else {
			out.Kind = ast.BinaryExpression
		}
		out.Operator = op
		out.Left = c.convert(n.ChildByFieldName("left"), out)
		out.Right = c.convert(n.ChildByFieldName("right"), out)

	case "ternary_expression":
		out = c.base(n)
		out.Kind = ast.ConditionalExpression
		out.Test = c.convert(n.ChildByFieldName("condition"), out)
		out.Consequent = c.convert(n.ChildByFieldName("consequence"), out)
		out.Alternate = c.convert(n.ChildByFieldName("alternative"), out)

	case "sequence_expression":
		out = c.base(n)
		out.Kind = ast.SequenceExpression
		for _, ch := range c.namedChildren(n) {
			out.Elements = append(out.Elements, c.convert(ch, out))
		}

	case "unary_expression":
		out = c.base(n)
		out.Kind = ast.UnaryExpression
		out.Operator = c.text(n.ChildByFieldName("operator"))
		out.Argument = c.convert(n.ChildByFieldName("argument"), out)

	case "update_expression":
		out = c.base(n)
		out.Kind = ast.UpdateExpression
		out.Operator = c.text(n.ChildByFieldName("operator"))
		out.Argument = c.convert(n.ChildByFieldName("argument"), out)
		out.Prefix = firstChildIsOperator(n)

	case "spread_element":
		out = c.base(n)
		out.Kind = ast.SpreadElement
		out.Argument = c.convert(n.NamedChild(0), out)

	case "await_expression":
		out = c.base(n)
		out.Kind = ast.AwaitExpression
		out.Argument = c.convert(n.NamedChild(0), out)

	case "yield_expression":
		out = c.base(n)
		out.Kind = ast.YieldExpression
		out.Argument = c.convert(n.NamedChild(0), out)

	case "parenthesized_expression":
		return c.convert(n.NamedChild(0), parent)

	case "array":
		out = c.base(n)
		out.Kind = ast.ArrayExpression
		for _, ch := range c.namedChildren(n) {
			out.Elements = append(out.Elements, c.convert(ch, out))
		}

	case "object":
		out = c.base(n)
		out.Kind = ast.ObjectExpression
		for _, ch := range c.namedChildren(n) {
			out.Properties = append(out.Properties, c.convertProperty(ch, out))
		}

	case "array_pattern":
		out = c.base(n)
		out.Kind = ast.ArrayPattern
		for _, ch := range c.namedChildren(n) {
			out.Elements = append(out.Elements, c.convert(ch, out))
		}

	case "object_pattern":
		out = c.base(n)
		out.Kind = ast.ObjectPattern
		for _, ch := range c.namedChildren(n) {
			out.Properties = append(out.Properties, c.convertProperty(ch, out))
		}

	case "assignment_pattern":
		out = c.base(n)
		out.Kind = ast.AssignmentPattern
		out.Left = c.convert(n.ChildByFieldName("left"), out)
		out.Right = c.convert(n.ChildByFieldName("right"), out)

	case "rest_pattern":
		out = c.base(n)
		out.Kind = ast.RestElement
		out.Argument = c.convert(n.NamedChild(0), out)

	case "import_statement":
		out = c.convertImport(n)

	case "export_statement":
		out = c.convertExport(n)

	default:
		// Unrecognized node kinds fall back to a generic expression wrapper
		// so the walk never drops subtrees; their own named children are
		// still reachable through Elements for composite-construct rules.
		out = c.base(n)
		out.Kind = ast.Unknown
		for _, ch := range c.namedChildren(n) {
			out.Elements = append(out.Elements, c.convert(ch, out))
		}
	}

	if out != nil {
		out.Parent = parent
	}
	return out
}

// firstChildIsOperator reports whether n's operator token comes before its
// argument, i.e. whether this update_expression is prefix (++x) rather than
// postfix (x++).
func firstChildIsOperator(n *tree_sitter.Node) bool {
	first := n.Child(0)
	arg := n.ChildByFieldName("argument")
	if first == nil || arg == nil {
		return false
	}
	return first.StartByte() < arg.StartByte()
}

func forInIsOf(n *tree_sitter.Node, c *converter) bool {
	for i := uint(0); i < n.ChildCount(); i++ {
		ch := n.Child(i)
		if ch != nil && !ch.IsNamed() && c.text(ch) == "of" {
			return true
		}
	}
	return false
}

func stringLiteralValue(n *tree_sitter.Node, c *converter) string {
	if n.Kind() != "string" {
		return c.text(n)
	}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if ch := n.NamedChild(i); ch != nil && ch.Kind() == "string_fragment" {
			return c.text(ch)
		}
	}
	raw := c.text(n)
	if len(raw) >= 2 {
		return raw[1 : len(raw)-1]
	}
	return raw
}

func (c *converter) convertTemplateLiteral(n *tree_sitter.Node, parent *ast.Node) *ast.Node {
	out := c.base(n)
	out.Kind = ast.TemplateLiteral
	for _, ch := range c.namedChildren(n) {
		if ch.Kind() == "template_substitution" {
			out.Expressions = append(out.Expressions, c.convert(ch.NamedChild(0), out))
		}
	}
	out.Parent = parent
	return out
}

func (c *converter) convertFunction(n *tree_sitter.Node, kind ast.Kind) *ast.Node {
	out := c.base(n)
	out.Kind = kind
	out.Generator = hasChildOfKind(n, "*")
	out.Async = hasAsyncKeyword(n, c)
	out.ID = c.convert(n.ChildByFieldName("name"), out)

	if params := n.ChildByFieldName("parameters"); params != nil {
		for _, p := range c.namedChildren(params) {
			out.Params = append(out.Params, c.convertParam(p, out))
		}
	} else if single := n.ChildByFieldName("parameter"); single != nil {
		out.Params = append(out.Params, c.convert(single, out))
	}

	out.Body = c.convert(n.ChildByFieldName("body"), out)
	return out
}

func (c *converter) convertParam(n *tree_sitter.Node, parent *ast.Node) *ast.Node {
	switch n.Kind() {
	case "required_parameter", "optional_parameter":
		if pat := n.ChildByFieldName("pattern"); pat != nil {
			return c.convert(pat, parent)
		}
	}
	return c.convert(n, parent)
}

func hasChildOfKind(n *tree_sitter.Node, text string) bool {
	for i := uint(0); i < n.ChildCount(); i++ {
		ch := n.Child(i)
		if ch != nil && !ch.IsNamed() && ch.Kind() == text {
			return true
		}
	}
	return false
}

func hasAsyncKeyword(n *tree_sitter.Node, c *converter) bool {
	for i := uint(0); i < n.ChildCount(); i++ {
		ch := n.Child(i)
		if ch != nil && !ch.IsNamed() && c.text(ch) == "async" {
			return true
		}
	}
	return false
}

func (c *converter) convertClass(n *tree_sitter.Node, kind ast.Kind) *ast.Node {
	out := c.base(n)
	out.Kind = kind
	out.ID = c.convert(n.ChildByFieldName("name"), out)
	if heritage := findChildByKind(n, "class_heritage"); heritage != nil {
		for _, ch := range c.namedChildren(heritage) {
			out.SuperClass = c.convert(ch, out)
			break
		}
	}
	body := n.ChildByFieldName("body")
	if body != nil {
		for _, ch := range c.namedChildren(body) {
			if ch.Kind() == "method_definition" {
				out.Members = append(out.Members, c.convertMethod(ch))
			} else {
				out.Members = append(out.Members, c.convertField(ch, out))
			}
		}
	}
	c.link(out, out.Members...)
	return out
}

func findChildByKind(n *tree_sitter.Node, kind string) *tree_sitter.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if ch := n.NamedChild(i); ch != nil && ch.Kind() == kind {
			return ch
		}
	}
	return nil
}

func (c *converter) convertMethod(n *tree_sitter.Node) *ast.Node {
	out := c.base(n)
	out.Kind = ast.MethodDefinition
	out.Static = hasChildOfKind(n, "static")
	nameNode := n.ChildByFieldName("name")
	out.Key = c.convert(nameNode, out)
	out.Computed = nameNode != nil && findParentFieldComputed(n)

	switch {
	case out.Key != nil && out.Key.Kind == ast.Identifier && out.Key.Name == "constructor":
		out.Kind2 = "constructor"
	case hasChildOfKind(n, "get"):
		out.Kind2 = "get"
	case hasChildOfKind(n, "set"):
		out.Kind2 = "set"
	default:
		out.Kind2 = "method"
	}

	fn := c.base(n)
	fn.Kind = ast.FunctionExpression
	fn.Async = hasAsyncKeyword(n, c)
	fn.Generator = hasChildOfKind(n, "*")
	if params := n.ChildByFieldName("parameters"); params != nil {
		for _, p := range c.namedChildren(params) {
			fn.Params = append(fn.Params, c.convertParam(p, fn))
		}
	}
	fn.Body = c.convert(n.ChildByFieldName("body"), fn)
	fn.Parent = out
	out.Init = fn
	return out
}

// findParentFieldComputed reports whether a method/field's name used a
// computed (bracketed) key, approximated by checking for an intervening
// "[" token right after any static/get/set/async/* keywords.
func findParentFieldComputed(n *tree_sitter.Node) bool {
	for i := uint(0); i < n.ChildCount(); i++ {
		ch := n.Child(i)
		if ch != nil && !ch.IsNamed() && ch.Kind() == "[" {
			return true
		}
	}
	return false
}

func (c *converter) convertField(n *tree_sitter.Node, parent *ast.Node) *ast.Node {
	out := c.base(n)
	out.Kind = ast.MethodDefinition
	out.Kind2 = "field"
	out.Static = hasChildOfKind(n, "static")
	out.Key = c.convert(n.ChildByFieldName("property"), out)
	if out.Key == nil {
		out.Key = c.convert(n.NamedChild(0), out)
	}
	out.Init = c.convert(n.ChildByFieldName("value"), out)
	out.Parent = parent
	return out
}

func (c *converter) convertVariableDeclaration(n *tree_sitter.Node) *ast.Node {
	out := c.base(n)
	out.Kind = ast.VariableDeclaration
	out.Kind_ = c.text(n.Child(0))
	for _, ch := range c.namedChildren(n) {
		if ch.Kind() == "variable_declarator" {
			out.Decls = append(out.Decls, c.convertVariableDeclarator(ch))
		}
	}
	c.link(out, out.Decls...)
	return out
}

func (c *converter) convertVariableDeclarator(n *tree_sitter.Node) *ast.Node {
	out := c.base(n)
	out.Kind = ast.VariableDeclarator
	out.ID = c.convert(n.ChildByFieldName("name"), out)
	out.Init = c.convert(n.ChildByFieldName("value"), out)
	return out
}

func (c *converter) convertCall(n *tree_sitter.Node, kind ast.Kind) *ast.Node {
	out := c.base(n)
	out.Kind = kind
	out.Callee = c.convert(n.ChildByFieldName("function"), out)
	if out.Callee == nil {
		out.Callee = c.convert(n.ChildByFieldName("constructor"), out)
	}
	if args := n.ChildByFieldName("arguments"); args != nil {
		for _, a := range c.namedChildren(args) {
			out.Arguments = append(out.Arguments, c.convert(a, out))
		}
	}
	return out
}

func (c *converter) convertSwitchCase(n *tree_sitter.Node, parent *ast.Node) *ast.Node {
	out := c.base(n)
	out.Kind = ast.SwitchCase
	if n.Kind() == "switch_case" {
		out.Test = c.convert(n.ChildByFieldName("value"), out)
	}
	body := n.ChildByFieldName("body")
	if body != nil {
		out.Statements = append(out.Statements, c.convert(body, out))
	} else {
		for i := uint(0); i < n.NamedChildCount(); i++ {
			ch := n.NamedChild(i)
			if ch != nil && ch != n.ChildByFieldName("value") {
				out.Statements = append(out.Statements, c.convert(ch, out))
			}
		}
	}
	out.Parent = parent
	return out
}

func (c *converter) convertCatchClause(n *tree_sitter.Node, parent *ast.Node) *ast.Node {
	out := c.base(n)
	out.Kind = ast.CatchClause
	out.ID = c.convert(n.ChildByFieldName("parameter"), out)
	out.Body = c.convert(n.ChildByFieldName("body"), out)
	out.Parent = parent
	return out
}

func (c *converter) convertProperty(n *tree_sitter.Node, parent *ast.Node) *ast.Node {
	switch n.Kind() {
	case "pair":
		out := c.base(n)
		out.Kind = ast.Property
		out.Key = c.convert(n.ChildByFieldName("key"), out)
		out.Init = c.convert(n.ChildByFieldName("value"), out)
		out.Parent = parent
		return out

	case "pair_pattern":
		out := c.base(n)
		out.Kind = ast.Property
		out.Key = c.convert(n.ChildByFieldName("key"), out)
		out.Init = c.convert(n.ChildByFieldName("value"), out)
		out.Parent = parent
		return out

	case "shorthand_property_identifier", "shorthand_property_identifier_pattern":
		out := c.base(n)
		out.Kind = ast.Property
		id := c.convert(n, out)
		out.Key = id
		out.Init = id
		out.Shorthand = true
		out.Parent = parent
		return out

	case "spread_element":
		out := c.base(n)
		out.Kind = ast.SpreadElement
		out.Argument = c.convert(n.NamedChild(0), out)
		out.Parent = parent
		return out

	case "rest_pattern":
		out := c.base(n)
		out.Kind = ast.RestElement
		out.Argument = c.convert(n.NamedChild(0), out)
		out.Parent = parent
		return out

	case "method_definition":
		m := c.convertMethod(n)
		out := c.base(n)
		out.Kind = ast.Property
		out.Key = m.Key
		out.Init = m.Init
		out.Method = true
		out.Parent = parent
		c.link(out, m.Key, m.Init)
		return out

	case "computed_property_name":
		out := c.base(n)
		out.Kind = ast.Property
		out.Key = c.convert(n.NamedChild(0), out)
		out.Computed = true
		out.Parent = parent
		return out

	default:
		return c.convert(n, parent)
	}
}

func (c *converter) convertImport(n *tree_sitter.Node) *ast.Node {
	out := c.base(n)
	out.Kind = ast.ImportDeclaration
	if src := n.ChildByFieldName("source"); src != nil {
		out.Source = c.convert(src, out)
		out.Source.Value = stringLiteralValue(src, c)
	}
	clause := findChildByKind(n, "import_clause")
	if clause == nil {
		return out
	}
	for i := uint(0); i < clause.NamedChildCount(); i++ {
		ch := clause.NamedChild(i)
		if ch == nil {
			continue
		}
		switch ch.Kind() {
		case "identifier":
			spec := c.base(ch)
			spec.Kind = ast.ImportDefaultSpecifier
			spec.Local = c.convert(ch, spec)
			out.Specifiers = append(out.Specifiers, spec)
		case "namespace_import":
			spec := c.base(ch)
			spec.Kind = ast.ImportNamespaceSpecifier
			spec.Local = c.convert(ch.NamedChild(0), spec)
			out.Specifiers = append(out.Specifiers, spec)
		case "named_imports":
			for _, is := range c.namedChildren(ch) {
				if is.Kind() != "import_specifier" {
					continue
				}
				spec := c.base(is)
				spec.Kind = ast.ImportSpecifier
				if alias := is.ChildByFieldName("alias"); alias != nil {
					spec.Local = c.convert(alias, spec)
					spec.Imported = c.convert(is.NamedChild(0), spec)
				} else {
					spec.Local = c.convert(is.NamedChild(0), spec)
					spec.Imported = spec.Local
				}
				out.Specifiers = append(out.Specifiers, spec)
			}
		}
	}
	c.link(out, out.Specifiers...)
	return out
}

func (c *converter) convertExport(n *tree_sitter.Node) *ast.Node {
	if hasChildOfKind(n, "default") {
		out := c.base(n)
		out.Kind = ast.ExportDefaultDeclaration
		out.Declaration = c.convert(n.ChildByFieldName("value"), out)
		if out.Declaration == nil {
			out.Declaration = c.convert(n.ChildByFieldName("declaration"), out)
		}
		return out
	}
	out := c.base(n)
	out.Kind = ast.ExportNamedDeclaration
	if decl := n.ChildByFieldName("declaration"); decl != nil {
		out.Declaration = c.convert(decl, out)
		return out
	}
	if names := findChildByKind(n, "export_clause"); names != nil {
		for _, es := range c.namedChildren(names) {
			if es.Kind() != "export_specifier" {
				continue
			}
			spec := c.base(es)
			spec.Kind = ast.ExportSpecifier
			if alias := es.ChildByFieldName("alias"); alias != nil {
				spec.Local = c.convert(es.NamedChild(0), spec)
				spec.Exported = c.convert(alias, spec)
			} else {
				spec.Local = c.convert(es.NamedChild(0), spec)
				spec.Exported = spec.Local
			}
			out.Specifiers = append(out.Specifiers, spec)
		}
	}
	c.link(out, out.Specifiers...)
	return out
}
