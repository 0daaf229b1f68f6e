package mcpserver

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drkube/drkube/internal/drkube"
)

type stubAsker struct {
	mu        sync.Mutex
	questions []string
	reply     string
	err       error
}

func (s *stubAsker) Ask(ctx context.Context, question string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = append(s.questions, question)
	return s.reply, s.err
}

// extractText extracts text from CallToolResult.Content[0]
func extractText(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	if textContent, ok := result.Content[0].(mcp.TextContent); ok {
		return textContent.Text
	}
	return ""
}

func askRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      ToolAsk,
			Arguments: args,
		},
	}
}

func TestHandleAsk_Success(t *testing.T) {
	asker := &stubAsker{reply: "Cluster healthy"}
	srv := New(asker)

	result, err := srv.handleAsk(context.Background(), askRequest(map[string]any{"question": "pods down?"}))
	require.NoError(t, err)

	assert.False(t, result.IsError)
	assert.Equal(t, "Cluster healthy", extractText(result))
	assert.Equal(t, []string{"pods down?"}, asker.questions)
}

func TestHandleAsk_EmptyReply(t *testing.T) {
	srv := New(&stubAsker{})

	result, err := srv.handleAsk(context.Background(), askRequest(map[string]any{"question": "anything"}))
	require.NoError(t, err)

	assert.False(t, result.IsError)
	assert.Equal(t, drkube.NoResponse, extractText(result))
}

func TestHandleAsk_ServiceDown(t *testing.T) {
	srv := New(&stubAsker{err: errors.New("connection refused")})

	result, err := srv.handleAsk(context.Background(), askRequest(map[string]any{"question": "pods down?"}))
	require.NoError(t, err)

	assert.True(t, result.IsError)
	assert.Equal(t, drkube.ErrorContacting, extractText(result))
}

func TestHandleAsk_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"missing", map[string]any{}, "missing 'question'"},
		{"wrong type", map[string]any{"question": 42}, "missing 'question'"},
		{"blank", map[string]any{"question": "  \n "}, "must not be blank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asker := &stubAsker{reply: "unused"}
			srv := New(asker)

			result, err := srv.handleAsk(context.Background(), askRequest(tt.args))
			require.NoError(t, err)

			assert.True(t, result.IsError)
			assert.Contains(t, extractText(result), tt.want)
			assert.Empty(t, asker.questions, "no request for invalid input")
		})
	}
}
