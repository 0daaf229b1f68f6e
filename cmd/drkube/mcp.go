package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/drkube/drkube/internal/drkube"
	"github.com/drkube/drkube/internal/mcpserver"
)

var mcpFlags struct {
	httpAddr string
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve DrKube as an MCP tool",
	Long: `Run an MCP server exposing the ask-drkube tool.

The server speaks MCP over stdio by default so it can be launched by an
MCP client directly. Use --http to serve streamable HTTP instead.`,
	RunE:        runMCP,
	Annotations: map[string]string{annotationHeadless: "true"},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpFlags.httpAddr, "http", "", "Serve over HTTP on this address (e.g. 127.0.0.1:8092)")
}

func runMCP(cmd *cobra.Command, args []string) error {
	if err := requireValidConfig(); err != nil {
		return err
	}

	ctx := cmd.Context()
	srv := mcpserver.New(drkube.NewClient(cfg.Endpoint, drkube.WithTimeout(cfg.Timeout)))

	if mcpFlags.httpAddr == "" {
		return srv.ServeStdio(ctx, os.Stdin, os.Stdout)
	}

	if _, err := srv.Start(ctx, mcpFlags.httpAddr); err != nil {
		return fmt.Errorf("failed to start MCP server: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on %s\n", srv.URL())

	<-ctx.Done()
	return srv.Stop()
}
