// Package query is a stateless, read-only façade over one loaded graph
// store.
package query

import (
	"sort"

	"codegraph/internal/graph"
)

const (
	// maxSearchResults caps FindSymbol output.
	maxSearchResults = 50
	// maxCallGraphRoots caps how many name-matched functions seed a call
	// graph.
	maxCallGraphRoots = 5
)

// Engine answers read queries against a single store.
type Engine struct {
	store *graph.Store
}

// New wraps a loaded store.
func New(store *graph.Store) *Engine {
	return &Engine{store: store}
}

// FindSymbol searches nodes by name or file path, returning at most the
// top 50 results.
func (e *Engine) FindSymbol(query, kind string) []graph.SearchResult {
	results := e.store.Search(query, kind)
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}
	return results
}

// Dependencies returns the connections reachable from id over outgoing
// edges within depth hops.
func (e *Engine) Dependencies(id string, depth int) []graph.Connection {
	return e.store.Connections(id, graph.DirectionOutgoing, depth)
}

// Dependents returns the connections reaching id over incoming edges
// within depth hops.
func (e *Engine) Dependents(id string, depth int) []graph.Connection {
	return e.store.Connections(id, graph.DirectionIncoming, depth)
}

// CallGraph is the call neighborhood of one function node.
type CallGraph struct {
	Root  *graph.Node        `json:"root"`
	Calls []graph.Connection `json:"calls"`
}

// CallGraphs resolves up to 5 function nodes matching name and returns,
// for each, its surrounding calls edges in both directions within depth
// hops.
func (e *Engine) CallGraphs(name string, depth int) []CallGraph {
	matches := e.store.Search(name, graph.KindFunction)
	if len(matches) > maxCallGraphRoots {
		matches = matches[:maxCallGraphRoots]
	}

	graphs := make([]CallGraph, 0, len(matches))
	for _, m := range matches {
		all := e.store.Connections(m.Node.ID, graph.DirectionBoth, depth)
		var calls []graph.Connection
		for _, c := range all {
			if c.Type == graph.EdgeCalls {
				calls = append(calls, c)
			}
		}
		graphs = append(graphs, CallGraph{Root: m.Node, Calls: calls})
	}
	return graphs
}

// FileSymbols lists the nodes declared in a file, sorted by ascending
// declaration line.
func (e *Engine) FileSymbols(file string) []*graph.Node {
	nodes := e.store.FileNodes(file)
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Line < nodes[j].Line
	})
	return nodes
}

// Stats aggregates store-wide counts.
type Stats struct {
	Nodes       int            `json:"nodes"`
	Edges       int            `json:"edges"`
	Files       int            `json:"files"`
	NodesByKind map[string]int `json:"nodes_by_kind"`
	EdgesByType map[string]int `json:"edges_by_type"`
}

// GraphStats returns node and edge counts grouped by kind and type.
func (e *Engine) GraphStats() Stats {
	stats := Stats{
		Nodes:       e.store.NodeCount(),
		Edges:       e.store.EdgeCount(),
		Files:       e.store.FileCount(),
		NodesByKind: make(map[string]int),
		EdgesByType: make(map[string]int),
	}
	for _, n := range e.store.Nodes() {
		stats.NodesByKind[n.Kind]++
	}
	for _, edge := range e.store.Edges() {
		stats.EdgesByType[edge.Type]++
	}
	return stats
}
