// Package theme holds the catppuccin mocha palette and the shared lipgloss styles.
package theme

import (
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme is a color palette. Colors are hex strings so callers can feed them
// to lipgloss.Color directly.
type Theme struct {
	Primary   string // Mauve
	Secondary string // Lavender
	Text      string
	Subtext   string
	Muted     string // Overlay0
	Surface   string // Surface0
	Border    string // Surface2
	Success   string
	Warning   string
	Error     string
	Accent    string // Blue, submit control
	AccentDim string // Submit control while busy

	once   sync.Once
	styles *Styles
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Title          lipgloss.Style
	Hint           lipgloss.Style
	Key            lipgloss.Style
	Logo           lipgloss.Style
	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	ButtonBusy     lipgloss.Style
	AnswerPanel    lipgloss.Style
	Card           lipgloss.Style
	ModalTitle     lipgloss.Style
	ModalContainer lipgloss.Style
	Error          lipgloss.Style
}

var mocha = &Theme{
	Primary:   "#cba6f7",
	Secondary: "#b4befe",
	Text:      "#cdd6f4",
	Subtext:   "#a6adc8",
	Muted:     "#6c7086",
	Surface:   "#313244",
	Border:    "#585b70",
	Success:   "#a6e3a1",
	Warning:   "#f9e2af",
	Error:     "#f38ba8",
	Accent:    "#89b4fa",
	AccentDim: "#45475a",
}

// Current returns the active theme.
func Current() *Theme {
	return mocha
}

// S returns the theme's styles, built on first use.
func (t *Theme) S() *Styles {
	t.once.Do(func() {
		t.styles = buildStyles(t)
	})
	return t.styles
}

func buildStyles(t *Theme) *Styles {
	button := lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(lipgloss.Color("#1e1e2e")).
		Background(lipgloss.Color(t.Accent))

	return &Styles{
		Title: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary)).Bold(true),
		Hint:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		Key:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Secondary)),
		Logo:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),

		Button:        button,
		ButtonFocused: button.Bold(true).Underline(true),
		ButtonBusy: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color(t.Subtext)).
			Background(lipgloss.Color(t.AccentDim)),

		AnswerPanel: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Secondary)).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(1, 2),

		ModalTitle: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary)).Bold(true),
		ModalContainer: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Primary)).
			Padding(1, 2),

		Error: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Error)),
	}
}
