package graph

import "fmt"

// Node represents a declared symbol in the codebase. Exactly one of the
// kind-specific fields is set, matching Kind.
type Node struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
	File string `json:"file"`
	Line int    `json:"line"`

	Function *FunctionInfo `json:"function,omitempty"`
	Class    *ClassInfo    `json:"class,omitempty"`
	Variable *VariableInfo `json:"variable,omitempty"`
}

// FunctionInfo carries function-specific attributes.
type FunctionInfo struct {
	Params      int  `json:"params"`
	IsAsync     bool `json:"is_async,omitempty"`
	IsGenerator bool `json:"is_generator,omitempty"`
}

// ClassInfo carries class-specific attributes.
type ClassInfo struct {
	Superclass string   `json:"superclass,omitempty"`
	Methods    []string `json:"methods,omitempty"`
	Properties []string `json:"properties,omitempty"`
}

// VariableInfo carries variable-specific attributes.
type VariableInfo struct {
	DeclKind string `json:"decl_kind"` // const, let, var
}

// Edge represents a directed, typed relationship between two nodes.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"` // imports, calls, extends
}

const (
	KindFunction = "function"
	KindClass    = "class"
	KindVariable = "variable"
)

const (
	EdgeImports = "imports"
	EdgeCalls   = "calls"
	EdgeExtends = "extends"
)

// NodeID builds the stable composite id for a declaration.
// Two nodes with the same (file, name, line) are the same entity.
func NodeID(file, name string, line int) string {
	return fmt.Sprintf("%s:%s:%d", file, name, line)
}

// ImportSiteID builds the synthetic id for an import statement. Import
// sites are edge sources only; they never appear in the node map.
func ImportSiteID(file string, line int) string {
	return NodeID(file, "import", line)
}

// CallSiteID builds the synthetic id for a call expression. Call sites
// are edge sources only; they never appear in the node map.
func CallSiteID(file string, line int) string {
	return NodeID(file, "call", line)
}
