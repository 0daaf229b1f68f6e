package main

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/drkube/drkube/internal/config"
	"github.com/drkube/drkube/internal/logger"
	"github.com/drkube/drkube/internal/tui/ask"
)

var (
	// Version information (set via ldflags during build)
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootFlags struct {
	endpoint string
	logLevel string
	logFile  string
	envFile  string
}

// annotationHeadless marks commands that do not take over the terminal.
const annotationHeadless = "headless"

// cfg is the configuration resolved before any command runs.
var cfg *config.Config

func main() {
	err := fang.Execute(context.Background(), rootCmd,
		fang.WithVersion(version),
		fang.WithCommit(commit),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	)
	_ = logger.Close()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "drkube",
	Short: "Ask DrKube about your Kubernetes cluster",
	Long: `drkube is a small front end for the DrKube query service.

Type a question about your cluster, send it to DrKube and read the answer.
Without a subcommand drkube opens the full-screen question form.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntime,
	RunE:              runForm,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.endpoint, "endpoint", "", "DrKube service URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logFile, "log-file", "", "Log file, or - for stderr (overrides config)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.envFile, "env-file", ".env", "Load environment variables from this file if it exists")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadRuntime resolves configuration and starts logging. Validation is left to
// the commands that talk to DrKube so config and doctor can report problems.
func loadRuntime(cmd *cobra.Command, args []string) error {
	if err := config.LoadEnvFile(rootFlags.envFile); err != nil {
		return err
	}

	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagOverrides(cmd, loaded)

	logFile := loaded.LogFile
	if logFile == "" && cmd.Annotations[annotationHeadless] == "true" {
		// Nothing owns the terminal, so stderr is safe
		logFile = "-"
	}
	if err := logger.Setup(loaded.LogLevel, logFile); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	logger.Debug("drkube %s (%s), endpoint %s", version, commit, loaded.Endpoint)

	cfg = loaded
	return nil
}

func applyFlagOverrides(cmd *cobra.Command, c *config.Config) {
	if changed(cmd, "endpoint") {
		c.Endpoint = rootFlags.endpoint
	}
	if changed(cmd, "log-level") {
		c.LogLevel = rootFlags.logLevel
	}
	if changed(cmd, "log-file") {
		c.LogFile = rootFlags.logFile
	}
}

func changed(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}

// requireValidConfig is called by commands that send questions.
func requireValidConfig() error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration (run 'drkube config' to inspect): %w", err)
	}
	return nil
}

func runForm(cmd *cobra.Command, args []string) error {
	if err := requireValidConfig(); err != nil {
		return err
	}
	return ask.Run(cmd.Context(), cfg)
}
