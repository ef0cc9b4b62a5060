// Package decorator implements the first analysis pass: a single pre-order
// walk over every file's AST that assigns stable identities (function/call
// registries) and human-readable names to every function.
package decorator

import (
	"github.com/1homsi/fieldcg/internal/ast"
	"github.com/1homsi/fieldcg/internal/diagnostics"
)

// Context owns the whole-program registries. They live on a single value
// passed explicitly to each phase rather than as process-wide singletons.
type Context struct {
	Files     []*ast.Node // one Program node per input file, in file-list order
	Functions []*ast.Node // every function node, AST pre-order, across files in file-list order
	Calls     []*ast.Node // every CallExpression/NewExpression node, same order

	Diagnostics *diagnostics.Sink
}

// NewContext creates an empty Context.
func NewContext(diag *diagnostics.Sink) *Context {
	return &Context{Diagnostics: diag}
}
