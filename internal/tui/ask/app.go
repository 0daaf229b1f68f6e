// Package ask is the interactive question form: type a question, send it to
// DrKube, read the answer.
package ask

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/drkube/drkube/internal/config"
	"github.com/drkube/drkube/internal/drkube"
	"github.com/drkube/drkube/internal/logger"
)

// App is the full-screen BubbleTea model hosting the Form.
type App struct {
	form     *Form
	width    int
	height   int
	quitting bool
}

// NewApp creates the app around a fresh form.
func NewApp(ctx context.Context, asker drkube.Asker) *App {
	return &App{
		form: NewForm(ctx, asker),
	}
}

// Run shows the question form until the user quits.
func Run(ctx context.Context, cfg *config.Config) error {
	client := drkube.NewClient(cfg.Endpoint, drkube.WithTimeout(cfg.Timeout))

	app := NewApp(ctx, client)
	if cfg.RenderMarkdown {
		app.form.EnableMarkdown()
	}

	logger.Info("Starting question form against %s", cfg.Endpoint)
	p := tea.NewProgram(app, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("question form failed: %w", err)
	}
	return nil
}

// Init initializes the app.
func (a *App) Init() tea.Cmd {
	return a.form.Init()
}

// Update handles messages for the app.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			a.quitting = true
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.form.SetSize(msg.Width, msg.Height)
		return a, nil
	}

	return a, a.form.Update(msg)
}

// View renders the form centered on screen.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if a.quitting || a.width == 0 || a.height == 0 {
		view.Content = lipgloss.NewLayer("")
		return view
	}

	content := lipgloss.Place(a.width, a.height,
		lipgloss.Center, lipgloss.Center,
		a.form.View(),
	)

	canvas := uv.NewScreenBuffer(a.width, a.height)
	uv.NewStyledString(content).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: a.width, Y: a.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}
