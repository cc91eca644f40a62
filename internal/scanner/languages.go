package scanner

import (
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

var (
	javascriptLang = sitter.NewLanguage(tree_sitter_javascript.Language())
	typescriptLang = sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	tsxLang        = sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
)

// languageForFile maps a file path to its tree-sitter grammar.
// Returns nil for unsupported extensions.
func languageForFile(path string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".jsx", ".mjs":
		return javascriptLang
	case ".ts":
		return typescriptLang
	case ".tsx":
		return tsxLang
	}
	return nil
}
