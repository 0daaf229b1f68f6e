package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/drkube/drkube/internal/config"
	"github.com/drkube/drkube/internal/tui/setup"
)

var setupFlags struct {
	project bool
	force   bool
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create drkube configuration file",
	Long: `Create a drkube configuration file.

A short wizard asks for the DrKube service URL and how answers are shown.
By default the config is written to ~/.config/drkube/drkube.yml.
Use --project to create a project-local config in the current directory.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	// The wizard starts from the resolved config and writes the file itself
	result, err := setup.RunSetup(setupFlags.project, cfg)
	if err != nil {
		return fmt.Errorf("setup wizard failed: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "\nConfig written to: %s\n", targetPath)
	_, _ = fmt.Fprintf(out, "  endpoint:        %s\n", result.Endpoint)
	_, _ = fmt.Fprintf(out, "  render_markdown: %t\n\n", result.RenderMarkdown)
	_, _ = fmt.Fprintln(out, "Run 'drkube' to ask your first question.")
	return nil
}
