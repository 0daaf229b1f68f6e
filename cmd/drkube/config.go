package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/drkube/drkube/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display current configuration",
	Long: `Display the current resolved configuration showing values from all sources.

Configuration precedence (highest to lowest):
  1. Command line flags (--endpoint, --log-level, --log-file)
  2. Environment variables (DRKUBE_*, also read from .env)
  3. Project config (./drkube.yml)
  4. Global config (~/.config/drkube/drkube.yml)
  5. Defaults`,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	globalPath := config.GlobalPath()
	projectPath := config.ProjectPath()
	absProjectPath, err := filepath.Abs(projectPath)
	if err != nil {
		absProjectPath = projectPath
	}

	globalExists := fileExists(globalPath)
	projectExists := fileExists(projectPath)

	_, _ = fmt.Fprintln(out, titleStyle.Render("Configuration"))
	_, _ = fmt.Fprintln(out, newTable([]string{"Key", "Value"}, cfg.Values(), nil))
	_, _ = fmt.Fprintln(out)

	fileRows := [][]string{
		{"Global", globalPath, foundStatus(globalExists)},
		{"Project", absProjectPath, foundStatus(projectExists)},
	}
	filesTable := newTable([]string{"Type", "Path", "Status"}, fileRows, func(row, col int, base lipgloss.Style) (lipgloss.Style, bool) {
		if col != 2 {
			return base, false
		}
		if fileRows[row][2] == "✓" {
			return base.Foreground(colorSuccess), true
		}
		return base.Foreground(colorWarning), true
	})
	_, _ = fmt.Fprintln(out, titleStyle.Render("Config Files"))
	_, _ = fmt.Fprintln(out, filesTable)

	if envRows := envOverrides(); len(envRows) > 0 {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, titleStyle.Render("Environment Overrides"))
		_, _ = fmt.Fprintln(out, newTable([]string{"Variable", "Value"}, envRows, nil))
	}

	if err := cfg.Validate(); err != nil {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, lipgloss.NewStyle().Foreground(colorError).Render("Invalid configuration: "+err.Error()))
	}

	if !globalExists && !projectExists {
		_, _ = fmt.Fprintln(out)
		noteStyle := lipgloss.NewStyle().Foreground(colorWarning)
		_, _ = fmt.Fprintln(out, noteStyle.Render("No config files found. Run 'drkube setup' to create one."))
	}

	return nil
}

// envOverrides lists the DRKUBE_* variables that are set.
func envOverrides() [][]string {
	var rows [][]string
	for _, key := range config.Keys {
		name := config.EnvPrefix + "_" + strings.ToUpper(key)
		if val := os.Getenv(name); val != "" {
			rows = append(rows, []string{name, val})
		}
	}
	return rows
}

func foundStatus(exists bool) string {
	if exists {
		return "✓"
	}
	return "not found"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
