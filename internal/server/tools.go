package server

import (
	"context"
	"encoding/json"
	"fmt"

	"codegraph/internal/query"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// defaultDepth bounds traversal when the caller does not pass one.
const defaultDepth = 2

// Arguments structs

type AnalyzeArgs struct {
	Path  string `json:"path" jsonschema:"description:Project root to analyze; defaults to the enclosing git root"`
	Force bool   `json:"force" jsonschema:"description:Rebuild the graph even if a cached one exists"`
}

type LoadCachedArgs struct {
	Path string `json:"path" jsonschema:"description:Project root whose cached graph to load; defaults to the enclosing git root"`
}

type ClearCacheArgs struct {
	Path string `json:"path" jsonschema:"description:Project root whose cache entry to remove; empty removes all entries"`
}

type ListCachedArgs struct{}

type FindSymbolArgs struct {
	Query string `json:"query" jsonschema:"required,description:Case-insensitive substring matched against symbol names and file paths"`
	Type  string `json:"type" jsonschema:"description:Optional kind filter: function, class, or variable"`
}

type GetDependenciesArgs struct {
	ID    string `json:"id" jsonschema:"required,description:Node id (file:name:line) to start from"`
	Depth int    `json:"depth" jsonschema:"description:Traversal hop limit; defaults to 2"`
}

type GetDependentsArgs struct {
	ID    string `json:"id" jsonschema:"required,description:Node id (file:name:line) to start from"`
	Depth int    `json:"depth" jsonschema:"description:Traversal hop limit; defaults to 2"`
}

type GetCallGraphArgs struct {
	Name  string `json:"name" jsonschema:"required,description:Function name to build the call graph around"`
	Depth int    `json:"depth" jsonschema:"description:Traversal hop limit; defaults to 2"`
}

type GetFileSymbolsArgs struct {
	File string `json:"file" jsonschema:"required,description:File path relative to the project root"`
}

type GetGraphStatsArgs struct{}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "analyze",
		Description: "Builds or reloads the relationship graph for a project",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args AnalyzeArgs) (*mcp.CallToolResult, any, error) {
		result, err := s.engine.Analyze(ctx, args.Path, args.Force)
		if err != nil {
			return errorResult(fmt.Sprintf("Analysis failed: %v", err)), nil, nil
		}
		return jsonResult(result), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "load_cached",
		Description: "Loads a previously built graph from the cache without re-analyzing",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args LoadCachedArgs) (*mcp.CallToolResult, any, error) {
		result, found, err := s.engine.LoadCached(args.Path)
		if err != nil {
			return errorResult(fmt.Sprintf("Load failed: %v", err)), nil, nil
		}
		if !found {
			return textResult("No cached graph for this project. Run analyze first."), nil, nil
		}
		return jsonResult(result), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "clear_cache",
		Description: "Removes one project's cache entry, or all entries",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ClearCacheArgs) (*mcp.CallToolResult, any, error) {
		removed, err := s.engine.ClearCache(args.Path)
		if err != nil {
			return errorResult(fmt.Sprintf("Clear failed: %v", err)), nil, nil
		}
		if removed == 0 {
			return textResult("Nothing to delete."), nil, nil
		}
		return textResult(fmt.Sprintf("Removed %d cache entries.", removed)), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_cached",
		Description: "Lists every cached graph with its metadata and counts",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ListCachedArgs) (*mcp.CallToolResult, any, error) {
		summaries, err := s.engine.ListCached()
		if err != nil {
			return errorResult(fmt.Sprintf("List failed: %v", err)), nil, nil
		}
		if len(summaries) == 0 {
			return textResult("No cached graphs."), nil, nil
		}
		return jsonResult(summaries), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "find_symbol",
		Description: "Searches graph nodes by name or file path",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args FindSymbolArgs) (*mcp.CallToolResult, any, error) {
		q, ok := s.query()
		if !ok {
			return noGraphResult(), nil, nil
		}
		results := q.FindSymbol(args.Query, args.Type)
		if len(results) == 0 {
			return textResult("No matching symbols."), nil, nil
		}
		return jsonResult(results), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_dependencies",
		Description: "Lists what a symbol depends on, following outgoing edges",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args GetDependenciesArgs) (*mcp.CallToolResult, any, error) {
		q, ok := s.query()
		if !ok {
			return noGraphResult(), nil, nil
		}
		conns := q.Dependencies(args.ID, depthOrDefault(args.Depth))
		if len(conns) == 0 {
			return textResult("No dependencies found."), nil, nil
		}
		return jsonResult(conns), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_dependents",
		Description: "Lists what depends on a symbol, following incoming edges",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args GetDependentsArgs) (*mcp.CallToolResult, any, error) {
		q, ok := s.query()
		if !ok {
			return noGraphResult(), nil, nil
		}
		conns := q.Dependents(args.ID, depthOrDefault(args.Depth))
		if len(conns) == 0 {
			return textResult("No dependents found."), nil, nil
		}
		return jsonResult(conns), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_call_graph",
		Description: "Extracts the call graph around a named function",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args GetCallGraphArgs) (*mcp.CallToolResult, any, error) {
		q, ok := s.query()
		if !ok {
			return noGraphResult(), nil, nil
		}
		graphs := q.CallGraphs(args.Name, depthOrDefault(args.Depth))
		if len(graphs) == 0 {
			return textResult("No matching functions."), nil, nil
		}
		return jsonResult(graphs), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_file_symbols",
		Description: "Lists the symbols declared in a file, ordered by line",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args GetFileSymbolsArgs) (*mcp.CallToolResult, any, error) {
		q, ok := s.query()
		if !ok {
			return noGraphResult(), nil, nil
		}
		nodes := q.FileSymbols(args.File)
		if len(nodes) == 0 {
			return textResult("No symbols found in this file."), nil, nil
		}
		return jsonResult(nodes), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_graph_stats",
		Description: "Returns node and edge counts grouped by kind and type",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args GetGraphStatsArgs) (*mcp.CallToolResult, any, error) {
		q, ok := s.query()
		if !ok {
			return noGraphResult(), nil, nil
		}
		return jsonResult(q.GraphStats()), nil, nil
	})
}

func (s *Server) query() (*query.Engine, bool) {
	return s.engine.Query()
}

func noGraphResult() *mcp.CallToolResult {
	return errorResult("No graph loaded. Run analyze or load_cached first.")
}

func depthOrDefault(depth int) int {
	if depth <= 0 {
		return defaultDepth
	}
	return depth
}

func jsonResult(v any) *mcp.CallToolResult {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to encode result: %v", err))
	}
	return textResult(string(jsonBytes))
}
