// Package resolver turns per-file facts into a populated graph store by
// heuristically linking imports, call sites, and extends clauses across
// files. Resolution is best-effort by design: a link whose target cannot
// be found is silently dropped, never an error.
package resolver

import (
	"path"
	"strings"

	"codegraph/internal/graph"
	"codegraph/internal/scanner"
)

// Stats summarizes one build.
type Stats struct {
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`
	Files int `json:"files"`
}

// Result is a fully populated store plus its build statistics.
type Result struct {
	Store *graph.Store
	Stats Stats
}

// importSuffixes are tried in this fixed order when resolving a relative
// import; the first candidate present in the project's file set wins.
var importSuffixes = []string{".js", ".ts", ".jsx", ".tsx", "/index.js", "/index.ts"}

type nameKey struct {
	kind string
	name string
}

// Build populates a fresh store from the facts of every file in the
// project. Files whose extraction failed are simply absent from facts;
// their symbols are omitted and resolution continues without them.
func Build(projectPath string, facts []*scanner.FileFacts) *Result {
	store := graph.NewStore(projectPath)

	fileSet := make(map[string]bool, len(facts))
	byPath := make(map[string]*scanner.FileFacts, len(facts))
	for _, f := range facts {
		fileSet[f.Path] = true
		byPath[f.Path] = f
	}

	// Pass 1: every declaration becomes a node, indexed by (kind, name)
	// so call and extends resolution are O(1) lookups instead of a scan
	// over every node.
	byName := make(map[nameKey][]string)
	for _, f := range facts {
		for _, sym := range f.Symbols {
			if sym.Kind == scanner.SymbolCall {
				continue
			}
			n := nodeFromSymbol(f.Path, sym)
			store.AddNode(n)
			k := nameKey{kind: n.Kind, name: n.Name}
			byName[k] = append(byName[k], n.ID)
		}
	}

	// Pass 2: imports. Only relative sources are resolved; bare module
	// specifiers (packages) have no nodes to link to.
	for _, f := range facts {
		for _, imp := range f.Imports {
			if !strings.HasPrefix(imp.Source, ".") {
				continue
			}
			target, ok := resolveImportPath(f.Path, imp.Source, fileSet)
			if !ok {
				continue
			}
			defaults := defaultExportNames(byPath[target])
			site := graph.ImportSiteID(f.Path, imp.Line)
			for _, n := range store.FileNodes(target) {
				if n.Name == imp.Local || (imp.Default && defaults[n.Name]) {
					store.AddEdge(site, n.ID, graph.EdgeImports)
				}
			}
		}
	}

	// Pass 3: calls. Every function node whose name equals the callee
	// name gets an edge; no scoping or shadowing awareness, so a calls
	// edge means "possible target", not "the" target.
	for _, f := range facts {
		for _, sym := range f.Symbols {
			if sym.Kind != scanner.SymbolCall {
				continue
			}
			site := graph.CallSiteID(f.Path, sym.Line)
			for _, id := range byName[nameKey{kind: graph.KindFunction, name: sym.Name}] {
				store.AddEdge(site, id, graph.EdgeCalls)
			}
		}
	}

	// Pass 4: extends. Same any-match semantics as calls.
	for _, n := range store.Nodes() {
		if n.Kind != graph.KindClass || n.Class == nil || n.Class.Superclass == "" {
			continue
		}
		for _, id := range byName[nameKey{kind: graph.KindClass, name: n.Class.Superclass}] {
			store.AddEdge(n.ID, id, graph.EdgeExtends)
		}
	}

	store.Touch()
	return &Result{
		Store: store,
		Stats: Stats{
			Nodes: store.NodeCount(),
			Edges: store.EdgeCount(),
			Files: store.FileCount(),
		},
	}
}

func nodeFromSymbol(file string, sym scanner.Symbol) *graph.Node {
	n := &graph.Node{
		ID:   graph.NodeID(file, sym.Name, sym.Line),
		Name: sym.Name,
		Kind: sym.Kind,
		File: file,
		Line: sym.Line,
	}
	switch sym.Kind {
	case scanner.SymbolFunction:
		n.Function = &graph.FunctionInfo{
			Params:      sym.Params,
			IsAsync:     sym.IsAsync,
			IsGenerator: sym.IsGenerator,
		}
	case scanner.SymbolClass:
		n.Class = &graph.ClassInfo{
			Superclass: sym.Superclass,
			Methods:    sym.Methods,
			Properties: sym.Properties,
		}
	case scanner.SymbolVariable:
		n.Variable = &graph.VariableInfo{DeclKind: sym.DeclKind}
	}
	return n
}

// resolveImportPath joins the importer's directory with the import source
// and tries each candidate suffix in order against the project file set.
func resolveImportPath(importer, source string, fileSet map[string]bool) (string, bool) {
	base := path.Join(path.Dir(importer), source)
	for _, suffix := range importSuffixes {
		if candidate := base + suffix; fileSet[candidate] {
			return candidate, true
		}
	}
	return "", false
}

func defaultExportNames(f *scanner.FileFacts) map[string]bool {
	if f == nil {
		return nil
	}
	var names map[string]bool
	for _, exp := range f.Exports {
		if !exp.Default {
			continue
		}
		if names == nil {
			names = make(map[string]bool)
		}
		names[exp.Name] = true
	}
	return names
}
