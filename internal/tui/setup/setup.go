package setup

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/drkube/drkube/internal/config"
	"github.com/drkube/drkube/internal/tui/theme"
)

// ContentChangedMsg is sent when a step's content changes in a way that affects preferred height.
// The setup wizard handles this by recalculating modal dimensions.
type ContentChangedMsg struct{}

// SetupResult holds the output values from the setup wizard.
type SetupResult struct {
	Endpoint       string // DrKube service URL
	RenderMarkdown bool   // Render answers as markdown
}

// SetupModel is the main BubbleTea model for the setup wizard.
// It manages the two-step flow: endpoint → answer rendering.
type SetupModel struct {
	step      int            // Current step (0-1)
	cancelled bool           // User cancelled via ESC
	result    SetupResult    // Accumulated result from each step
	base      *config.Config // Values the wizard starts from and does not ask about
	width     int            // Terminal width
	height    int            // Terminal height
	isProject bool           // True if --project flag set (write to ./drkube.yml)

	// Step components
	endpointStep *EndpointStep
	markdownStep *MarkdownStep
}

// NewSetupModel creates the wizard starting from base.
func NewSetupModel(isProject bool, base *config.Config) *SetupModel {
	if base == nil {
		base = config.Default()
	}
	return &SetupModel{
		isProject: isProject,
		base:      base,
		result: SetupResult{
			Endpoint:       base.Endpoint,
			RenderMarkdown: base.RenderMarkdown,
		},
	}
}

// RunSetup is the entry point for the setup wizard.
// It runs a standalone BubbleTea program and, unless the user cancels,
// writes the resulting config file.
func RunSetup(isProject bool, base *config.Config) (*SetupResult, error) {
	m := NewSetupModel(isProject, base)

	// Create BubbleTea program
	p := tea.NewProgram(m)

	// Run the program
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("setup wizard failed: %w", err)
	}

	// Extract result from final model
	setupModel, ok := finalModel.(*SetupModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}

	// Check if user cancelled
	if setupModel.cancelled {
		return nil, fmt.Errorf("setup wizard cancelled by user")
	}

	if err := setupModel.WriteConfig(); err != nil {
		return nil, err
	}

	return &setupModel.result, nil
}

// Init initializes the setup model.
func (m *SetupModel) Init() tea.Cmd {
	m.endpointStep = NewEndpointStep(m.result.Endpoint)
	return m.endpointStep.Init()
}

// Update handles messages for the setup wizard.
func (m *SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		// Global keybindings
		switch msg.String() {
		case "ctrl+c":
			// Always allow Ctrl+C to quit
			m.cancelled = true
			return m, tea.Quit
		case "esc":
			// ESC behavior depends on step
			if m.step == 0 {
				// On first step, exit wizard
				m.cancelled = true
				return m, tea.Quit
			} else {
				// On other steps, go back
				return m.goBack()
			}
		}

	case tea.WindowSizeMsg:
		// Store terminal dimensions
		m.width = msg.Width
		m.height = msg.Height
		// Update size of current step
		m.updateCurrentStepSize()
		return m, nil

	case EndpointSelectedMsg:
		m.result.Endpoint = msg.Endpoint
		m.step++
		m.initCurrentStep()
		return m, m.markdownStep.Init()

	case MarkdownSelectedMsg:
		m.result.RenderMarkdown = msg.Enabled
		// Wizard complete - quit
		return m, tea.Quit

	case ContentChangedMsg:
		// A step's content changed, recalculate modal dimensions
		m.updateCurrentStepSize()
		return m, nil
	}

	// Forward to current step
	var cmd tea.Cmd
	switch m.step {
	case 0:
		if m.endpointStep != nil {
			cmd = m.endpointStep.Update(msg)
		}
	case 1:
		if m.markdownStep != nil {
			cmd = m.markdownStep.Update(msg)
		}
	}

	return m, cmd
}

// goBack returns to the previous step.
func (m *SetupModel) goBack() (tea.Model, tea.Cmd) {
	if m.step > 0 {
		m.step--
		m.initCurrentStep()
	}
	return m, nil
}

// initCurrentStep initializes the current step component if not already initialized.
func (m *SetupModel) initCurrentStep() {
	switch m.step {
	case 0:
		if m.endpointStep == nil {
			m.endpointStep = NewEndpointStep(m.result.Endpoint)
		}
	case 1:
		if m.markdownStep == nil {
			m.markdownStep = NewMarkdownStep(m.result.RenderMarkdown)
		}
	}
	m.updateCurrentStepSize()
}

// getStepPreferredHeight returns the preferred content height for the current step.
func (m *SetupModel) getStepPreferredHeight() int {
	switch m.step {
	case 0:
		if m.endpointStep != nil {
			return m.endpointStep.PreferredHeight()
		}
	case 1:
		if m.markdownStep != nil {
			return m.markdownStep.PreferredHeight()
		}
	}
	return 10 // Default fallback
}

// calculateModalDimensions calculates the modal dimensions based on terminal size and content.
// Returns modalWidth, modalHeight, contentWidth, contentHeight.
func (m *SetupModel) calculateModalDimensions() (int, int, int, int) {
	// Calculate modal width
	modalWidth := m.width - 6
	if modalWidth < 60 {
		modalWidth = 60
	}
	if modalWidth > 100 {
		modalWidth = 100
	}

	// Content width = modal width minus padding (2 each side) minus border (1 each side)
	contentWidth := modalWidth - 6
	if contentWidth < 40 {
		contentWidth = 40
	}

	// Calculate max modal height (don't overflow screen)
	maxModalHeight := m.height - 4
	if maxModalHeight < 15 {
		maxModalHeight = 15
	}

	// Modal overhead:
	// - padding top/bottom: 2
	// - border top/bottom: 2
	// - title line: 1
	// - blank after title: 1
	// Total overhead: 6
	const modalOverhead = 6

	// Get preferred content height from current step
	preferredContentHeight := m.getStepPreferredHeight()

	// Calculate ideal modal height based on content
	idealModalHeight := preferredContentHeight + modalOverhead

	// Clamp modal height between min and max
	modalHeight := idealModalHeight
	if modalHeight > maxModalHeight {
		modalHeight = maxModalHeight
	}
	if modalHeight < 15 {
		modalHeight = 15
	}

	// Calculate actual content height
	contentHeight := modalHeight - modalOverhead
	if contentHeight < 5 {
		contentHeight = 5
	}

	return modalWidth, modalHeight, contentWidth, contentHeight
}

// updateCurrentStepSize updates the size of the current step component.
func (m *SetupModel) updateCurrentStepSize() {
	_, _, contentWidth, contentHeight := m.calculateModalDimensions()

	switch m.step {
	case 0:
		if m.endpointStep != nil {
			m.endpointStep.SetSize(contentWidth, contentHeight)
		}
	case 1:
		if m.markdownStep != nil {
			m.markdownStep.SetSize(contentWidth, contentHeight)
		}
	}
}

// View renders the setup wizard UI.
func (m *SetupModel) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion // Enable mouse clicks
	view.KeyboardEnhancements = tea.KeyboardEnhancements{
		ReportEventTypes: true,
	}

	// Render current step content
	var stepContent string
	switch m.step {
	case 0:
		if m.endpointStep != nil {
			stepContent = m.endpointStep.View()
		}
	case 1:
		if m.markdownStep != nil {
			stepContent = m.markdownStep.View()
		}
	}

	// Wrap in modal container with title
	content := m.renderModal(stepContent)

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(content).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// renderModal wraps the step content in a modal container with title and step indicator.
func (m *SetupModel) renderModal(stepContent string) string {
	// Calculate modal dimensions dynamically based on content and terminal size
	modalWidth, modalHeight, _, _ := m.calculateModalDimensions()

	var sections []string

	// Title with step indicator and step name
	stepNames := []string{
		"Service Endpoint",
		"Answers",
	}
	title := fmt.Sprintf("Setup - Step %d of 2: %s", m.step+1, stepNames[m.step])
	sections = append(sections, theme.Current().S().ModalTitle.Render(title))
	sections = append(sections, "")

	// Step content
	sections = append(sections, stepContent)

	// Join all sections
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Apply modal container style with fixed dimensions
	modalStyle := theme.Current().S().ModalContainer.Width(modalWidth).Height(modalHeight)

	modalContent := modalStyle.Render(content)

	// Center the modal on screen
	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		modalContent,
	)
}

// Config returns the configuration the wizard will write.
func (m *SetupModel) Config() *config.Config {
	cfg := *m.base
	cfg.Endpoint = m.result.Endpoint
	cfg.RenderMarkdown = m.result.RenderMarkdown
	return &cfg
}

// WriteConfig writes the setup result to the appropriate config file.
func (m *SetupModel) WriteConfig() error {
	cfg := m.Config()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if m.isProject {
		return config.WriteProject(cfg)
	}
	return config.WriteGlobal(cfg)
}

// EndpointSelectedMsg is sent when the endpoint is confirmed in step 0.
type EndpointSelectedMsg struct {
	Endpoint string
}

// MarkdownSelectedMsg is sent when the rendering choice is made in step 1.
type MarkdownSelectedMsg struct {
	Enabled bool
}
