package setup

import (
	"net/url"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/drkube/drkube/internal/tui/theme"
)

// EndpointStep collects the DrKube service URL.
type EndpointStep struct {
	input      textinput.Model
	validError string
	width      int
	height     int
}

// NewEndpointStep creates the step prefilled with current.
func NewEndpointStep(current string) *EndpointStep {
	t := theme.Current()

	input := textinput.New()
	input.Placeholder = "http://localhost:8091"
	input.Prompt = ""
	input.SetStyles(textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Subtext)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Secondary)),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Subtext)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Subtext)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		},
		Cursor: textinput.CursorStyle{
			Color: lipgloss.Color(t.Primary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	})
	input.SetWidth(50)
	input.SetValue(current)

	return &EndpointStep{
		input:  input,
		width:  60,
		height: 10,
	}
}

// Init focuses the input.
func (e *EndpointStep) Init() tea.Cmd {
	return e.input.Focus()
}

// SetSize updates the dimensions for the step.
func (e *EndpointStep) SetSize(width, height int) {
	e.width = width
	e.height = height
	e.input.SetWidth(width - 4)
}

// Update handles messages for the endpoint step.
func (e *EndpointStep) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok && keyMsg.String() == "enter" {
		if !e.validate() {
			return nil
		}
		endpoint := e.Endpoint()
		return func() tea.Msg {
			return EndpointSelectedMsg{Endpoint: endpoint}
		}
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	if _, ok := msg.(tea.KeyPressMsg); ok {
		e.validError = ""
	}
	return cmd
}

// View renders the endpoint step.
func (e *EndpointStep) View() string {
	s := theme.Current().S()

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current().Subtext)).Render("DrKube service URL"))
	b.WriteString("\n")
	b.WriteString(s.Hint.Render("(questions are sent to <url>/issue?q=...)"))
	b.WriteString("\n\n")
	b.WriteString(e.input.View())
	b.WriteString("\n")
	if e.validError != "" {
		b.WriteString("\n")
		b.WriteString(s.Error.Render(e.validError))
	}
	return b.String()
}

// Endpoint returns the trimmed input value.
func (e *EndpointStep) Endpoint() string {
	return strings.TrimSpace(e.input.Value())
}

func (e *EndpointStep) validate() bool {
	endpoint := e.Endpoint()
	if endpoint == "" {
		e.validError = "URL cannot be empty"
		return false
	}
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		e.validError = "URL must start with http:// or https:// and include a host"
		return false
	}
	e.validError = ""
	return true
}

// PreferredHeight returns the preferred height for this step's content.
func (e *EndpointStep) PreferredHeight() int {
	// label, hint, blank, input, blank, error
	return 6
}
