// Package parser is the front end: it parses JavaScript/TypeScript source
// with tree-sitter and converts the resulting CST into internal/ast's own
// Node shape, which is all the Decorator/Binder/flow packages ever see.
package parser

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/1homsi/fieldcg/internal/ast"
)

var (
	langOnce sync.Once
	jsLang   *tree_sitter.Language
	tsLang   *tree_sitter.Language
	tsxLang  *tree_sitter.Language
)

func initLanguages() {
	langOnce.Do(func() {
		jsLang = tree_sitter.NewLanguage(tree_sitter_javascript.Language())
		tsLang = tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
		tsxLang = tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
	})
}

// languageFor picks the grammar by file extension.
func languageFor(file string) *tree_sitter.Language {
	initLanguages()
	switch strings.ToLower(filepath.Ext(file)) {
	case ".ts":
		return tsLang
	case ".tsx":
		return tsxLang
	default:
		return jsLang
	}
}

// ParseFile converts one source file into an internal/ast.Node Program.
// Shebangs are stripped and Vue SFC files have their <script> block
// extracted before parsing.
func ParseFile(file string, source []byte) (*ast.Node, error) {
	source = stripShebang(source)
	if strings.HasSuffix(strings.ToLower(file), ".vue") {
		var ok bool
		source, ok = extractVueScript(source)
		if !ok {
			return nil, fmt.Errorf("%s: no <script> block found in Vue SFC", file)
		}
	}

	lang := languageFor(file)
	p := tree_sitter.NewParser()
	defer p.Close()
	if err := p.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("%s: set language: %w", file, err)
	}
	tree := p.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("%s: parse failed", file)
	}
	defer tree.Close()

	c := &converter{file: file, src: source}
	root := c.convert(tree.RootNode(), nil)
	if root == nil {
		return nil, fmt.Errorf("%s: empty parse tree", file)
	}
	root.Kind = ast.Program
	return root, nil
}

// stripShebang blanks out a leading "#!..." line with spaces, keeping its
// newline and every other byte in place so row, column and byte positions
// still match the original file.
func stripShebang(src []byte) []byte {
	if len(src) < 2 || src[0] != '#' || src[1] != '!' {
		return src
	}
	end := indexByte(src, '\n')
	if end < 0 {
		end = len(src)
	}
	out := append([]byte(nil), src...)
	for i := 0; i < end; i++ {
		out[i] = ' '
	}
	return out
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}

// extractVueScript pulls the contents of the first <script>...</script>
// block out of a Vue single-file component.
func extractVueScript(src []byte) ([]byte, bool) {
	s := string(src)
	open := strings.Index(s, "<script")
	if open < 0 {
		return nil, false
	}
	tagEnd := strings.Index(s[open:], ">")
	if tagEnd < 0 {
		return nil, false
	}
	bodyStart := open + tagEnd + 1
	close := strings.Index(s[bodyStart:], "</script>")
	if close < 0 {
		return nil, false
	}
	return []byte(s[bodyStart : bodyStart+close]), true
}
