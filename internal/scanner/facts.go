package scanner

// Symbol fact kinds. SymbolCall is an inline call-site observation, not a
// declaration.
const (
	SymbolFunction = "function"
	SymbolClass    = "class"
	SymbolVariable = "variable"
	SymbolCall     = "call"
)

// FileFacts holds the raw, file-local observations extracted from one
// source file. Facts are not linked across files; that is the resolver's
// job.
type FileFacts struct {
	Path    string   `json:"path"`
	Symbols []Symbol `json:"symbols"`
	Imports []Import `json:"imports"`
	Exports []Export `json:"exports"`
}

// Symbol is a declaration or call-site fact. Kind selects which of the
// kind-specific fields are meaningful.
type Symbol struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
	Line int    `json:"line"`

	// function
	Params      int  `json:"params,omitempty"`
	IsAsync     bool `json:"is_async,omitempty"`
	IsGenerator bool `json:"is_generator,omitempty"`

	// class
	Superclass string   `json:"superclass,omitempty"`
	Methods    []string `json:"methods,omitempty"`
	Properties []string `json:"properties,omitempty"`

	// variable
	DeclKind string `json:"decl_kind,omitempty"` // const, let, var

	// call
	Args int `json:"args,omitempty"`
}

// Import is one imported binding. A statement importing several names
// produces one Import per name, all sharing the statement's line.
type Import struct {
	Source  string `json:"source"` // module path as written
	Name    string `json:"name"`   // exported name, or "*" for namespace imports
	Local   string `json:"local"`  // local binding name
	Line    int    `json:"line"`
	Default bool   `json:"default,omitempty"`
}

// Export records an exported binding.
type Export struct {
	Name    string `json:"name"`
	Line    int    `json:"line"`
	Default bool   `json:"default,omitempty"`
}
