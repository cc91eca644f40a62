package scanner

import (
	"fmt"
	"strings"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Extract parses one source file and returns its raw facts: symbol
// declarations, import and export statements, and call-site observations.
// The walk is purely syntactic; nothing is resolved across files here.
//
// A failed extraction returns an error the caller must treat as "zero
// facts for this file" and never propagate as fatal.
func Extract(content []byte, path string) (*FileFacts, error) {
	lang := languageForFile(path)
	if lang == nil {
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("invalid UTF-8 content: %s", path)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("failed to set language for %s: %w", path, err)
	}

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("parse failed: %s", path)
	}
	defer tree.Close()

	facts := &FileFacts{Path: path}
	walk(tree.RootNode(), content, facts)
	return facts, nil
}

// walk visits every named node in the tree, collecting facts as it goes.
func walk(node *sitter.Node, content []byte, facts *FileFacts) {
	if node == nil {
		return
	}

	switch node.Kind() {
	case "function_declaration", "generator_function_declaration":
		collectFunction(node, content, facts)
	case "class_declaration":
		collectClass(node, content, facts)
	case "lexical_declaration", "variable_declaration":
		collectVariables(node, content, facts)
	case "call_expression":
		collectCall(node, content, facts)
	case "import_statement":
		collectImports(node, content, facts)
	case "export_statement":
		collectExports(node, content, facts)
	}

	for i := uint(0); i < node.NamedChildCount(); i++ {
		walk(node.NamedChild(i), content, facts)
	}
}

func collectFunction(node *sitter.Node, content []byte, facts *FileFacts) {
	name := node.ChildByFieldName("name")
	if name == nil {
		return
	}
	params := 0
	if p := node.ChildByFieldName("parameters"); p != nil {
		params = int(p.NamedChildCount())
	}
	facts.Symbols = append(facts.Symbols, Symbol{
		Kind:        SymbolFunction,
		Name:        name.Utf8Text(content),
		Line:        lineOf(node),
		Params:      params,
		IsAsync:     hasToken(node, "async"),
		IsGenerator: node.Kind() == "generator_function_declaration",
	})
}

func collectClass(node *sitter.Node, content []byte, facts *FileFacts) {
	name := node.ChildByFieldName("name")
	if name == nil {
		return
	}
	sym := Symbol{
		Kind:       SymbolClass,
		Name:       name.Utf8Text(content),
		Line:       lineOf(node),
		Superclass: superclassName(node, content),
	}
	if body := node.ChildByFieldName("body"); body != nil {
		for i := uint(0); i < body.NamedChildCount(); i++ {
			member := body.NamedChild(i)
			switch member.Kind() {
			case "method_definition":
				if n := member.ChildByFieldName("name"); n != nil {
					sym.Methods = append(sym.Methods, n.Utf8Text(content))
				}
			case "field_definition", "public_field_definition":
				if n := memberName(member); n != nil {
					sym.Properties = append(sym.Properties, n.Utf8Text(content))
				}
			}
		}
	}
	facts.Symbols = append(facts.Symbols, sym)
}

// superclassName pulls the extends target out of a class declaration. The
// JavaScript grammar puts the expression directly under class_heritage;
// the TypeScript grammar nests it inside an extends_clause.
func superclassName(node *sitter.Node, content []byte) string {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() != "class_heritage" {
			continue
		}
		target := child.NamedChild(0)
		if target != nil && target.Kind() == "extends_clause" {
			target = target.NamedChild(0)
		}
		if target != nil {
			return target.Utf8Text(content)
		}
	}
	return ""
}

func memberName(member *sitter.Node) *sitter.Node {
	if n := member.ChildByFieldName("name"); n != nil {
		return n
	}
	return member.ChildByFieldName("property")
}

func collectVariables(node *sitter.Node, content []byte, facts *FileFacts) {
	declKind := "var"
	if first := node.Child(0); first != nil {
		declKind = first.Kind() // const, let, var
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		declarator := node.NamedChild(i)
		if declarator.Kind() != "variable_declarator" {
			continue
		}
		name := declarator.ChildByFieldName("name")
		if name == nil || name.Kind() != "identifier" {
			continue
		}
		facts.Symbols = append(facts.Symbols, Symbol{
			Kind:     SymbolVariable,
			Name:     name.Utf8Text(content),
			Line:     lineOf(declarator),
			DeclKind: declKind,
		})
	}
}

func collectCall(node *sitter.Node, content []byte, facts *FileFacts) {
	callee := node.ChildByFieldName("function")
	if callee == nil {
		return
	}
	switch callee.Kind() {
	case "identifier", "member_expression":
		// member calls keep the full object.property text
	default:
		return
	}
	args := 0
	if a := node.ChildByFieldName("arguments"); a != nil && a.Kind() == "arguments" {
		args = int(a.NamedChildCount())
	}
	facts.Symbols = append(facts.Symbols, Symbol{
		Kind: SymbolCall,
		Name: callee.Utf8Text(content),
		Line: lineOf(node),
		Args: args,
	})
}

func collectImports(node *sitter.Node, content []byte, facts *FileFacts) {
	source := node.ChildByFieldName("source")
	if source == nil {
		return
	}
	src := strings.Trim(source.Utf8Text(content), "'\"`")
	line := lineOf(node)

	for i := uint(0); i < node.NamedChildCount(); i++ {
		clause := node.NamedChild(i)
		if clause.Kind() != "import_clause" {
			continue
		}
		for j := uint(0); j < clause.NamedChildCount(); j++ {
			spec := clause.NamedChild(j)
			switch spec.Kind() {
			case "identifier":
				local := spec.Utf8Text(content)
				facts.Imports = append(facts.Imports, Import{
					Source: src, Name: local, Local: local, Line: line, Default: true,
				})
			case "namespace_import":
				if id := spec.NamedChild(0); id != nil {
					facts.Imports = append(facts.Imports, Import{
						Source: src, Name: "*", Local: id.Utf8Text(content), Line: line,
					})
				}
			case "named_imports":
				for k := uint(0); k < spec.NamedChildCount(); k++ {
					imported := spec.NamedChild(k)
					if imported.Kind() != "import_specifier" {
						continue
					}
					name := imported.ChildByFieldName("name")
					if name == nil {
						continue
					}
					local := name
					if alias := imported.ChildByFieldName("alias"); alias != nil {
						local = alias
					}
					facts.Imports = append(facts.Imports, Import{
						Source: src,
						Name:   name.Utf8Text(content),
						Local:  local.Utf8Text(content),
						Line:   line,
					})
				}
			}
		}
	}
}

func collectExports(node *sitter.Node, content []byte, facts *FileFacts) {
	line := lineOf(node)
	isDefault := hasToken(node, "default")

	if decl := node.ChildByFieldName("declaration"); decl != nil {
		switch decl.Kind() {
		case "function_declaration", "generator_function_declaration", "class_declaration":
			name := "default"
			if n := decl.ChildByFieldName("name"); n != nil {
				name = n.Utf8Text(content)
			}
			facts.Exports = append(facts.Exports, Export{Name: name, Line: line, Default: isDefault})
		case "lexical_declaration", "variable_declaration":
			for i := uint(0); i < decl.NamedChildCount(); i++ {
				declarator := decl.NamedChild(i)
				if declarator.Kind() != "variable_declarator" {
					continue
				}
				if n := declarator.ChildByFieldName("name"); n != nil && n.Kind() == "identifier" {
					facts.Exports = append(facts.Exports, Export{Name: n.Utf8Text(content), Line: line})
				}
			}
		}
		return
	}

	if value := node.ChildByFieldName("value"); value != nil {
		name := "default"
		if value.Kind() == "identifier" {
			name = value.Utf8Text(content)
		}
		facts.Exports = append(facts.Exports, Export{Name: name, Line: line, Default: isDefault})
		return
	}

	for i := uint(0); i < node.NamedChildCount(); i++ {
		clause := node.NamedChild(i)
		if clause.Kind() != "export_clause" {
			continue
		}
		for j := uint(0); j < clause.NamedChildCount(); j++ {
			spec := clause.NamedChild(j)
			if spec.Kind() != "export_specifier" {
				continue
			}
			if n := spec.ChildByFieldName("name"); n != nil {
				facts.Exports = append(facts.Exports, Export{Name: n.Utf8Text(content), Line: line})
			}
		}
	}
}

func lineOf(node *sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

// hasToken reports whether node has a direct anonymous child with the
// given token kind (e.g. "async", "default").
func hasToken(node *sitter.Node, token string) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil && child.Kind() == token {
			return true
		}
	}
	return false
}
