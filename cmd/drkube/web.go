package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/drkube/drkube/internal/drkube"
	"github.com/drkube/drkube/internal/web"
)

var webFlags struct {
	addr string
}

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the question form as a web page",
	Long: `Serve the question form over HTTP.

The listen address defaults to web_addr from the config (127.0.0.1:8090).`,
	RunE:        runWeb,
	Annotations: map[string]string{annotationHeadless: "true"},
}

func init() {
	webCmd.Flags().StringVar(&webFlags.addr, "addr", "", "Listen address (overrides web_addr)")
}

func runWeb(cmd *cobra.Command, args []string) error {
	if err := requireValidConfig(); err != nil {
		return err
	}

	addr := cfg.WebAddr
	if webFlags.addr != "" {
		addr = webFlags.addr
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv, err := web.New(drkube.NewClient(cfg.Endpoint, drkube.WithTimeout(cfg.Timeout)))
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "DrKube form on http://%s\n", addr)
	return srv.Run(cmd.Context(), addr)
}
