package setup

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/drkube/drkube/internal/tui/theme"
)

type markdownOption struct {
	label       string
	description string
	enabled     bool
}

var markdownOptions = []markdownOption{
	{"Literal text", "Show answers exactly as DrKube sends them", false},
	{"Render markdown", "Format answers with headings, lists and code blocks", true},
}

// MarkdownStep asks how answers are displayed.
type MarkdownStep struct {
	selected int
	width    int
	height   int
}

// NewMarkdownStep creates the step with the current choice selected.
func NewMarkdownStep(current bool) *MarkdownStep {
	step := &MarkdownStep{width: 60, height: 10}
	for i, opt := range markdownOptions {
		if opt.enabled == current {
			step.selected = i
		}
	}
	return step
}

// Init initializes the step.
func (m *MarkdownStep) Init() tea.Cmd {
	return nil
}

// SetSize updates the dimensions for the step.
func (m *MarkdownStep) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the markdown step.
func (m *MarkdownStep) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(markdownOptions)-1 {
			m.selected++
		}
	case "enter", " ", "space":
		enabled := markdownOptions[m.selected].enabled
		return func() tea.Msg {
			return MarkdownSelectedMsg{Enabled: enabled}
		}
	}
	return nil
}

// View renders the markdown step.
func (m *MarkdownStep) View() string {
	t := theme.Current()
	s := t.S()

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(t.Subtext)).Render("How should answers be shown?"))
	b.WriteString("\n\n")
	for i, opt := range markdownOptions {
		cursor := "  "
		label := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text))
		if i == m.selected {
			cursor = s.Title.Render("> ")
			label = label.Foreground(lipgloss.Color(t.Primary)).Bold(true)
		}
		b.WriteString(cursor + label.Render(opt.label))
		b.WriteString("\n")
		b.WriteString("    " + s.Hint.Render(opt.description))
		b.WriteString("\n")
	}
	return b.String()
}

// PreferredHeight returns the preferred height for this step's content.
func (m *MarkdownStep) PreferredHeight() int {
	return 2 + 2*len(markdownOptions)
}
