package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// ToolAsk is the name of the only tool the server exposes.
const ToolAsk = "ask-drkube"

// registerTools registers all MCP tools with the server.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(ToolAsk,
			mcp.WithDescription("Ask DrKube a question about the Kubernetes cluster and return its answer"),
			mcp.WithString("question", mcp.Required(), mcp.Description("The question, in plain language")),
		),
		s.handleAsk,
	)
}
