package decorator

import (
	"testing"

	"github.com/1homsi/fieldcg/internal/ast"
	"github.com/1homsi/fieldcg/internal/diagnostics"
)

// buildScenario1 constructs the AST for:
//   function f(){}  const g = ()=>{};  (function(){})();
func buildScenario1() (*ast.Node, *ast.Node, *ast.Node, *ast.Node) {
	file := &ast.Node{Kind: ast.Program, File: "a.js"}

	f := &ast.Node{Kind: ast.FunctionDeclaration, Body: &ast.Node{Kind: ast.BlockStatement}}
	f.ID = &ast.Node{Kind: ast.Identifier, Name: "f"}
	f.Parent = file

	arrow := &ast.Node{Kind: ast.ArrowFunction, Body: &ast.Node{Kind: ast.BlockStatement}}
	declarator := &ast.Node{Kind: ast.VariableDeclarator, ID: &ast.Node{Kind: ast.Identifier, Name: "g"}, Init: arrow}
	arrow.Parent = declarator
	varDecl := &ast.Node{Kind: ast.VariableDeclaration, Kind_: "const", Decls: []*ast.Node{declarator}}
	declarator.Parent = varDecl
	varDecl.Parent = file

	iife := &ast.Node{Kind: ast.FunctionExpression, Body: &ast.Node{Kind: ast.BlockStatement}}
	call := &ast.Node{Kind: ast.CallExpression, Callee: iife}
	iife.Parent = call
	exprStmt := &ast.Node{Kind: ast.ExpressionStatement, Argument: call}
	call.Parent = exprStmt
	exprStmt.Parent = file

	file.Statements = []*ast.Node{f, varDecl, exprStmt}
	return file, f, arrow, iife
}

func TestScenarioNamedAndAnonymousMix(t *testing.T) {
	file, f, arrow, iife := buildScenario1()
	diag := diagnostics.NewSink()
	Run(diag, []*ast.Node{file})

	if got := Label(f); got != "f" {
		t.Errorf("Label(f) = %q, want %q", got, "f")
	}
	if got := Label(arrow); got != "g" {
		t.Errorf("Label(arrow) = %q, want %q", got, "g")
	}
	if got := Label(iife); got != "global:anon[1]" {
		t.Errorf("Label(iife) = %q, want %q", got, "global:anon[1]")
	}
}

func TestAnonymousIndexContiguity(t *testing.T) {
	file := &ast.Node{Kind: ast.Program, File: "a.js"}
	var anons []*ast.Node
	for i := 0; i < 3; i++ {
		fn := &ast.Node{Kind: ast.FunctionExpression, Body: &ast.Node{Kind: ast.BlockStatement}}
		stmt := &ast.Node{Kind: ast.ExpressionStatement, Argument: fn}
		fn.Parent = stmt
		stmt.Parent = file
		file.Statements = append(file.Statements, stmt)
		anons = append(anons, fn)
	}

	diag := diagnostics.NewSink()
	Run(diag, []*ast.Node{file})

	for i, fn := range anons {
		want := i + 1
		if got := fn.Attrs().AnonIndex; got != want {
			t.Errorf("anon[%d].AnonIndex = %d, want %d", i, got, want)
		}
	}
}

func TestScenarioSingleCallback(t *testing.T) {
	file := &ast.Node{Kind: ast.Program, File: "a.js"}
	cb := &ast.Node{Kind: ast.FunctionExpression, Body: &ast.Node{Kind: ast.BlockStatement}}
	call := &ast.Node{
		Kind:      ast.CallExpression,
		Callee:    &ast.Node{Kind: ast.Identifier, Name: "setTimeout"},
		Arguments: []*ast.Node{cb, &ast.Node{Kind: ast.Literal, Value: "10"}},
	}
	cb.Parent = call
	stmt := &ast.Node{Kind: ast.ExpressionStatement, Argument: call}
	call.Parent = stmt
	stmt.Parent = file
	file.Statements = []*ast.Node{stmt}

	diag := diagnostics.NewSink()
	Run(diag, []*ast.Node{file})

	if got := Label(cb); got != "clb(setTimeout)" {
		t.Errorf("Label(cb) = %q, want %q", got, "clb(setTimeout)")
	}
}

func TestScenarioMultipleCallbacks(t *testing.T) {
	file := &ast.Node{Kind: ast.Program, File: "a.js"}
	cb1 := &ast.Node{Kind: ast.FunctionExpression, Body: &ast.Node{Kind: ast.BlockStatement}}
	cb2 := &ast.Node{Kind: ast.ArrowFunction, Body: &ast.Node{Kind: ast.BlockStatement}}
	call := &ast.Node{
		Kind:      ast.CallExpression,
		Callee:    &ast.Node{Kind: ast.Identifier, Name: "processData"},
		Arguments: []*ast.Node{cb1, cb2},
	}
	cb1.Parent = call
	cb2.Parent = call
	stmt := &ast.Node{Kind: ast.ExpressionStatement, Argument: call}
	call.Parent = stmt
	stmt.Parent = file
	file.Statements = []*ast.Node{stmt}

	diag := diagnostics.NewSink()
	Run(diag, []*ast.Node{file})

	if got := Label(cb1); got != "clb(processData)[1]" {
		t.Errorf("Label(cb1) = %q, want %q", got, "clb(processData)[1]")
	}
	if got := Label(cb2); got != "clb(processData)[2]" {
		t.Errorf("Label(cb2) = %q, want %q", got, "clb(processData)[2]")
	}
}

func TestMethodDefinitionNaming(t *testing.T) {
	fn := &ast.Node{Kind: ast.FunctionExpression, Body: &ast.Node{Kind: ast.BlockStatement}}
	prop := &ast.Node{Kind: ast.Property, Key: &ast.Node{Kind: ast.Identifier, Name: "foo"}, Init: fn}
	fn.Parent = prop
	obj := &ast.Node{Kind: ast.ObjectExpression, Properties: []*ast.Node{prop}}
	prop.Parent = obj
	stmt := &ast.Node{Kind: ast.ExpressionStatement, Argument: obj}
	obj.Parent = stmt
	file := &ast.Node{Kind: ast.Program, File: "a.js", Statements: []*ast.Node{stmt}}
	stmt.Parent = file

	diag := diagnostics.NewSink()
	Run(diag, []*ast.Node{file})

	if got := Label(fn); got != "foo" {
		t.Errorf("Label(fn) = %q, want %q", got, "foo")
	}
}

func TestComputedMethodKeyWarnsAndStaysAnonymous(t *testing.T) {
	fn := &ast.Node{Kind: ast.FunctionExpression, Body: &ast.Node{Kind: ast.BlockStatement}}
	prop := &ast.Node{Kind: ast.Property, Computed: true, Key: &ast.Node{Kind: ast.Identifier, Name: "e"}, Init: fn}
	fn.Parent = prop
	obj := &ast.Node{Kind: ast.ObjectExpression, Properties: []*ast.Node{prop}}
	prop.Parent = obj
	stmt := &ast.Node{Kind: ast.ExpressionStatement, Argument: obj}
	obj.Parent = stmt
	file := &ast.Node{Kind: ast.Program, File: "a.js", Statements: []*ast.Node{stmt}}
	stmt.Parent = file

	diag := diagnostics.NewSink()
	Run(diag, []*ast.Node{file})

	if got := Label(fn); got != "global:anon[1]" {
		t.Errorf("Label(fn) = %q, want %q", got, "global:anon[1]")
	}
	if len(diag.Records()) == 0 {
		t.Errorf("expected a diagnostic warning about the computed method key")
	}
}

func TestParentAssignmentNaming(t *testing.T) {
	fn := &ast.Node{Kind: ast.FunctionExpression, Body: &ast.Node{Kind: ast.BlockStatement}}
	assign := &ast.Node{
		Kind:  ast.AssignmentExpression,
		Left:  &ast.Node{Kind: ast.MemberExpression, Object: &ast.Node{Kind: ast.Identifier, Name: "exports"}, Property_: &ast.Node{Kind: ast.Identifier, Name: "handle"}},
		Right: fn,
	}
	fn.Parent = assign
	stmt := &ast.Node{Kind: ast.ExpressionStatement, Argument: assign}
	assign.Parent = stmt
	file := &ast.Node{Kind: ast.Program, File: "a.js", Statements: []*ast.Node{stmt}}
	stmt.Parent = file

	diag := diagnostics.NewSink()
	Run(diag, []*ast.Node{file})

	if got := Label(fn); got != "handle" {
		t.Errorf("Label(fn) = %q, want %q", got, "handle")
	}
}

func TestLabelIsMemoized(t *testing.T) {
	file, f, _, _ := buildScenario1()
	diag := diagnostics.NewSink()
	Run(diag, []*ast.Node{file})

	first := Label(f)
	f.Attrs().DeclaredName = "tampered"
	second := Label(f)
	if first != second {
		t.Errorf("Label should be memoized: got %q then %q", first, second)
	}
}

func TestFunctionAndCallRegistriesOrderAndUniqueness(t *testing.T) {
	file, f, arrow, iife := buildScenario1()
	diag := diagnostics.NewSink()
	ctx := Run(diag, []*ast.Node{file})

	if len(ctx.Functions) != 3 {
		t.Fatalf("got %d functions, want 3", len(ctx.Functions))
	}
	want := []*ast.Node{f, arrow, iife}
	for i, fn := range want {
		if ctx.Functions[i] != fn {
			t.Errorf("Functions[%d] = %p, want %p (pre-order)", i, ctx.Functions[i], fn)
		}
	}
	if len(ctx.Calls) != 1 {
		t.Fatalf("got %d calls, want 1", len(ctx.Calls))
	}
}
