package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/drkube/drkube/internal/drkube"
)

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Ask a single question without the form",
	Long: `Send one question to DrKube and print the answer.

The arguments are joined with spaces. Use - to read the question from stdin.
A blank question is rejected without contacting DrKube.`,
	Example: `  drkube ask why are my pods pending?
  kubectl describe pod web-0 | drkube ask -`,
	RunE:        runAsk,
	Annotations: map[string]string{annotationHeadless: "true"},
}

func runAsk(cmd *cobra.Command, args []string) error {
	question, err := questionFromArgs(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	if drkube.IsBlank(question) {
		return fmt.Errorf("question must not be blank")
	}
	if err := requireValidConfig(); err != nil {
		return err
	}

	client := drkube.NewClient(cfg.Endpoint, drkube.WithTimeout(cfg.Timeout))
	answer, err := drkube.Consult(cmd.Context(), client, question)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), answer)
	return err
}

func questionFromArgs(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read question from stdin: %w", err)
		}
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}
