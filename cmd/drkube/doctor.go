package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/drkube/drkube/internal/config"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and connectivity",
	Long: `Check that drkube is ready to ask questions.

This command verifies that:
- The resolved configuration is valid
- The DrKube service answers at the configured endpoint
- $EDITOR points at an installed editor (used by ctrl+e in the form)`,
	RunE: runDoctor,
}

// doctorTimeout bounds the reachability probe.
const doctorTimeout = 3 * time.Second

type checkResult struct {
	name    string
	status  string
	details string
}

func runDoctor(cmd *cobra.Command, args []string) error {
	results := []checkResult{
		checkConfig(cfg),
		checkEndpoint(cmd.Context(), cfg.Endpoint, &http.Client{Timeout: doctorTimeout}),
		checkEditor(os.Getenv("EDITOR")),
	}

	allOk := true
	rows := make([][]string, len(results))
	for i, r := range results {
		var icon string
		switch r.status {
		case "OK":
			icon = "✓"
		case "FAIL":
			icon = "⊗"
			allOk = false
		case "WARN":
			icon = "⊘"
		}
		rows[i] = []string{r.name, icon, r.details}
	}

	t := newTable([]string{"Check", "Status", "Details"}, rows, func(row, col int, base lipgloss.Style) (lipgloss.Style, bool) {
		if col != 1 {
			return base, false
		}
		switch results[row].status {
		case "OK":
			return base.Foreground(colorSuccess), true
		case "FAIL":
			return base.Foreground(colorError), true
		case "WARN":
			return base.Foreground(colorWarning), true
		}
		return base, false
	})

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, t)
	_, _ = fmt.Fprintln(out)

	if allOk {
		_, _ = fmt.Fprintln(out, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ All checks passed!"))
		return nil
	}
	_, _ = fmt.Fprintln(out, lipgloss.NewStyle().Foreground(colorError).Render("⊗ Some checks failed."))
	return fmt.Errorf("doctor check failed")
}

func checkConfig(c *config.Config) checkResult {
	if err := c.Validate(); err != nil {
		return checkResult{name: "config", status: "FAIL", details: err.Error()}
	}
	if !config.Exists() {
		return checkResult{name: "config", status: "WARN", details: "Using defaults. Run 'drkube setup' to create a config file"}
	}
	return checkResult{name: "config", status: "OK", details: "Valid"}
}

// checkEndpoint probes the service root. Any HTTP response counts as
// reachable; no question is sent.
func checkEndpoint(ctx context.Context, endpoint string, client *http.Client) checkResult {
	name := "endpoint"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return checkResult{name: name, status: "FAIL", details: fmt.Sprintf("Bad URL %q", endpoint)}
	}

	resp, err := client.Do(req)
	if err != nil {
		return checkResult{name: name, status: "FAIL", details: fmt.Sprintf("%s unreachable: %v", endpoint, err)}
	}
	_ = resp.Body.Close()

	return checkResult{name: name, status: "OK", details: fmt.Sprintf("%s (HTTP %d)", endpoint, resp.StatusCode)}
}

func checkEditor(editorEnv string) checkResult {
	name := "editor"
	fields := strings.Fields(editorEnv)
	if len(fields) == 0 {
		return checkResult{name: name, status: "WARN", details: "$EDITOR not set, ctrl+e uses the system default"}
	}
	path, err := exec.LookPath(fields[0])
	if err != nil {
		return checkResult{name: name, status: "WARN", details: fmt.Sprintf("%s not found in PATH", fields[0])}
	}
	return checkResult{name: name, status: "OK", details: path}
}
