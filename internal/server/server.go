// Package server exposes the graph engine over MCP: one tool per engine
// operation plus usage-guideline and schema resources.
package server

import (
	"context"

	"codegraph/internal/engine"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverVersion = "0.1.0"

const systemPrompt = `# CodeGraph MCP Server

CodeGraph builds a persistent relationship graph of a JavaScript/TypeScript
project: functions, classes, and variables become nodes; imports, calls,
and extends clauses become directed edges.

## Workflow

1. Run ` + "`analyze`" + ` once per project (pass ` + "`force: true`" + ` after editing
   sources — the cache is keyed by project path, not content).
2. Query with ` + "`find_symbol`" + `, ` + "`get_dependencies`" + `, ` + "`get_dependents`" + `,
   ` + "`get_call_graph`" + `, ` + "`get_file_symbols`" + `, and ` + "`get_graph_stats`" + `.

## Caveats

Resolution is heuristic and best-effort. A ` + "`calls`" + ` edge means "possible
target": same-named functions in different files all get an edge. Imports
through barrel files or re-exports may not be linked at all. Treat missing
edges as unknown, not as proof of no relationship.
`

// Server wires an engine to an MCP server instance.
type Server struct {
	mcpServer    *mcp.Server
	engine       *engine.Engine
	systemPrompt string
}

// New creates a Server with all tools and resources registered.
func New(eng *engine.Engine) *Server {
	s := &Server{
		engine:       eng,
		systemPrompt: systemPrompt,
	}
	s.mcpServer = mcp.NewServer(&mcp.Implementation{
		Name:    "codegraph",
		Version: serverVersion,
	}, nil)
	s.registerTools()
	s.registerResources()
	return s
}

// Run serves MCP over stdio until the context is canceled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
