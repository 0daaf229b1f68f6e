package mcpserver

import (
	"context"

	"github.com/drkube/drkube/internal/drkube"
	"github.com/mark3labs/mcp-go/mcp"
)

// handleAsk forwards the question to DrKube. The result text is always what
// the form would show: the reply or one of the fallback messages.
func (s *Server) handleAsk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("missing 'question' parameter"), nil
	}
	if drkube.IsBlank(question) {
		return mcp.NewToolResultError("question must not be blank"), nil
	}

	answer, err := drkube.Consult(ctx, s.asker, question)
	if err != nil {
		// Consult already logged the failure
		return mcp.NewToolResultError(answer), nil
	}
	return mcp.NewToolResultText(answer), nil
}
