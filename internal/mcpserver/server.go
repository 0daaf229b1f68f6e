// Package mcpserver exposes DrKube to MCP clients as a single ask-drkube tool.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"

	"github.com/drkube/drkube/internal/drkube"
	derrors "github.com/drkube/drkube/internal/errors"
	"github.com/drkube/drkube/internal/logger"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "drkube"
	serverVersion = "1.0.0"
)

// Server wraps an MCP server whose tools forward questions to DrKube.
// It can be served over stdio or over streamable HTTP.
type Server struct {
	asker      drkube.Asker
	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
	addr       string
	mu         sync.Mutex
}

// New creates a server that answers through asker.
func New(asker drkube.Asker) *Server {
	s := &Server{asker: asker}
	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	s.registerTools()
	return s
}

// Start serves MCP over HTTP on addr. An empty addr picks a free port on
// 127.0.0.1. Returns the bound port.
func (s *Server) Start(ctx context.Context, addr string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpServer != nil {
		return 0, fmt.Errorf("server already started")
	}

	if addr == "" {
		addr = "127.0.0.1:0"
	}

	// Resolve port 0 to a concrete port before handing the address over
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return 0, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	tcpAddr := listener.Addr().(*net.TCPAddr)
	if err := listener.Close(); err != nil {
		return 0, fmt.Errorf("failed to close listener: %w", err)
	}
	s.addr = tcpAddr.String()

	// Stateless: every tool call stands alone
	s.httpServer = server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	)

	logger.Info("Starting MCP server on %s", s.addr)

	httpServer, listenAddr := s.httpServer, s.addr
	go func() {
		err := derrors.Recover(func() error {
			return httpServer.Start(listenAddr)
		})
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("MCP server error: %v", err)
		}
	}()

	return tcpAddr.Port, nil
}

// Stop shuts the HTTP server down. Stopping a stopped server is a no-op.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpServer == nil {
		return nil
	}

	logger.Debug("Stopping MCP server")
	if err := s.httpServer.Shutdown(context.Background()); err != nil {
		logger.Warn("Error stopping MCP server: %v", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	s.httpServer = nil
	logger.Debug("MCP server stopped")
	return nil
}

// URL returns the HTTP URL of the MCP endpoint.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://%s/mcp", s.addr)
}

// ServeStdio serves MCP over the given streams until ctx is done or in closes.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	logger.Info("Serving MCP over stdio")
	return server.NewStdioServer(s.mcpServer).Listen(ctx, in, out)
}
