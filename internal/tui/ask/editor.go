package ask

import (
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/editor"
	"github.com/drkube/drkube/internal/logger"
)

// editorFinishedMsg is sent when the external editor exits.
type editorFinishedMsg struct {
	path string
	err  error
}

// openEditor hands the question to $EDITOR and suspends the program until it exits.
func (f *Form) openEditor() tea.Cmd {
	file, err := os.CreateTemp("", "drkube-question-*.md")
	if err != nil {
		logger.Warn("Failed to create editor file: %v", err)
		return nil
	}
	path := file.Name()

	if _, err := file.WriteString(f.input.Value()); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		logger.Warn("Failed to write editor file: %v", err)
		return nil
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		logger.Warn("Failed to close editor file: %v", err)
		return nil
	}

	cmd, err := editor.Cmd("drkube", path)
	if err != nil {
		_ = os.Remove(path)
		logger.Warn("Failed to prepare editor: %v", err)
		return nil
	}

	f.input.Blur()
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{path: path, err: err}
	})
}

// applyEditorResult loads the edited question and removes the temp file.
func (f *Form) applyEditorResult(msg editorFinishedMsg) {
	defer func() { _ = os.Remove(msg.path) }()

	if msg.err != nil {
		logger.Warn("Editor exited with error: %v", msg.err)
		return
	}
	data, err := os.ReadFile(msg.path)
	if err != nil {
		logger.Warn("Failed to read editor file: %v", err)
		return
	}
	// Editors append a final newline on save.
	f.input.SetValue(strings.TrimSuffix(string(data), "\n"))
}
