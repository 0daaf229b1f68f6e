package ask

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/drkube/drkube/internal/drkube"
	"github.com/drkube/drkube/internal/logger"
	"github.com/drkube/drkube/internal/tui/theme"
)

const (
	// Title is the form heading.
	Title = "Ask DrKube about your cluster"

	// Placeholder is shown in the empty question input.
	Placeholder = "Ask anything about your Kubernetes cluster..."

	// LabelIdle and LabelBusy are the submit control labels.
	LabelIdle = "Ask DrKube"
	LabelBusy = "Consulting DrKube…"
)

// focusTarget is which control receives key presses.
type focusTarget int

const (
	focusInput focusTarget = iota
	focusButton
)

// Form is the question form: a question input, a submit control and an
// answer panel. Question, answer and the loading flag live here and are only
// changed from Update and Submit.
type Form struct {
	ctx     context.Context
	asker   drkube.Asker
	input   textarea.Model // Question
	answer  string         // Answer, or a fallback message
	loading bool           // A submission is in flight
	focus   focusTarget
	spinner spinner.Model
	md      *markdownRenderer // nil unless markdown rendering is enabled
	width   int
	height  int
}

// NewForm creates an idle form that sends questions through asker.
func NewForm(ctx context.Context, asker drkube.Asker) *Form {
	t := theme.Current()

	ta := textarea.New()
	ta.Placeholder = Placeholder
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0

	styles := textarea.Styles{
		Focused: textarea.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Subtext)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Secondary)),
		},
		Blurred: textarea.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		},
		Cursor: textarea.CursorStyle{
			Color: lipgloss.Color(t.Primary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	}
	ta.SetStyles(styles)
	ta.SetWidth(56)
	ta.SetHeight(4)

	sp := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(t.Subtext))),
	)

	if ctx == nil {
		ctx = context.Background()
	}

	return &Form{
		ctx:     ctx,
		asker:   asker,
		input:   ta,
		spinner: sp,
		focus:   focusInput,
		width:   80,
		height:  24,
	}
}

// EnableMarkdown renders answers through glamour instead of as literal text.
func (f *Form) EnableMarkdown() {
	f.md = newMarkdownRenderer()
}

// Init focuses the question input.
func (f *Form) Init() tea.Cmd {
	return f.input.Focus()
}

// Question returns the question text as typed.
func (f *Form) Question() string {
	return f.input.Value()
}

// SetQuestion replaces the question text.
func (f *Form) SetQuestion(q string) {
	f.input.SetValue(q)
}

// Answer returns the answer currently shown, or "" when the panel is hidden.
func (f *Form) Answer() string {
	return f.answer
}

// Loading reports whether a submission is in flight.
func (f *Form) Loading() bool {
	return f.loading
}

// SetSize updates the available area.
func (f *Form) SetSize(width, height int) {
	f.width = width
	f.height = height

	inputWidth := f.contentWidth() - 2
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.input.SetWidth(inputWidth)
}

// contentWidth is the width of the card body, excluding the logo column.
func (f *Form) contentWidth() int {
	w := f.width - cardOverhead
	if f.showLogo() {
		w -= logoWidth + logoGap
	}
	if w > maxContentWidth {
		w = maxContentWidth
	}
	if w < 24 {
		w = 24
	}
	return w
}

// Submit sends the current question. A blank question is ignored: no request
// and no state change. Otherwise the answer is cleared, the form enters the
// loading state and the returned command performs exactly one request.
//
// Submit does not refuse to run while a request is outstanding; key handling
// in Update does that.
func (f *Form) Submit() tea.Cmd {
	question := f.input.Value()
	if drkube.IsBlank(question) {
		return nil
	}

	f.loading = true
	f.answer = ""
	f.input.Blur()

	logger.Info("Submitting question (%d bytes)", len(question))
	return tea.Batch(f.spinner.Tick, f.ask(question))
}

// ask performs the request off the event loop and reports back with an AnswerMsg.
func (f *Form) ask(question string) tea.Cmd {
	ctx, asker := f.ctx, f.asker
	return func() tea.Msg {
		answer, err := drkube.Consult(ctx, asker, question)
		return AnswerMsg{Question: question, Answer: answer, Err: err}
	}
}

// Update handles messages for the form.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case AnswerMsg:
		f.answer = msg.Answer
		f.loading = false
		if f.focus == focusInput {
			return f.input.Focus()
		}
		return nil

	case spinner.TickMsg:
		if !f.loading {
			return nil
		}
		var cmd tea.Cmd
		f.spinner, cmd = f.spinner.Update(msg)
		return cmd

	case editorFinishedMsg:
		f.applyEditorResult(msg)
		if f.focus == focusInput && !f.loading {
			return f.input.Focus()
		}
		return nil

	case tea.KeyPressMsg:
		// Input and submit control are disabled while loading.
		if f.loading {
			return nil
		}
		return f.handleKey(msg)
	}

	if f.focus == focusInput && !f.loading {
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return cmd
	}
	return nil
}

func (f *Form) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+s":
		return f.Submit()

	case "tab", "shift+tab":
		if f.focus == focusInput {
			f.focus = focusButton
			f.input.Blur()
			return nil
		}
		f.focus = focusInput
		return f.input.Focus()

	case "enter", "space", " ":
		if f.focus == focusButton {
			return f.Submit()
		}

	case "ctrl+e":
		return f.openEditor()
	}

	if f.focus != focusInput {
		return nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

// View renders the form.
func (f *Form) View() string {
	s := theme.Current().S()
	width := f.contentWidth()

	var b strings.Builder
	b.WriteString(s.Title.Render(Title))
	b.WriteString("\n\n")
	b.WriteString(f.input.View())
	b.WriteString("\n\n")
	b.WriteString(f.renderButton())
	b.WriteString("\n")
	b.WriteString(f.renderHints())

	if f.answer != "" {
		b.WriteString("\n\n")
		b.WriteString(f.renderAnswer(width))
	}

	card := s.Card.Width(width + cardOverhead).Render(b.String())
	if !f.showLogo() {
		return card
	}
	logo := s.Logo.Render(Logo)
	return lipgloss.JoinHorizontal(lipgloss.Center, logo, strings.Repeat(" ", logoGap), card)
}

func (f *Form) renderButton() string {
	s := theme.Current().S()
	if f.loading {
		return s.ButtonBusy.Render(f.spinner.View() + " " + LabelBusy)
	}
	if f.focus == focusButton {
		return s.ButtonFocused.Render(LabelIdle)
	}
	return s.Button.Render(LabelIdle)
}

func (f *Form) renderHints() string {
	s := theme.Current().S()
	if f.loading {
		return s.Hint.Render("waiting for DrKube…")
	}
	hints := []string{
		s.Key.Render("ctrl+s") + s.Hint.Render(" ask"),
		s.Key.Render("tab") + s.Hint.Render(" focus"),
		s.Key.Render("ctrl+e") + s.Hint.Render(" editor"),
		s.Key.Render("esc") + s.Hint.Render(" quit"),
	}
	return strings.Join(hints, s.Hint.Render("  ·  "))
}

// renderAnswer draws the answer panel. Literal text keeps its whitespace and
// newlines; markdown rendering is opt-in.
func (f *Form) renderAnswer(width int) string {
	s := theme.Current().S()
	body := f.answer
	if f.md != nil {
		if out, err := f.md.Render(f.answer, width-4); err == nil {
			body = strings.TrimRight(out, "\n")
		} else {
			logger.Warn("Markdown rendering failed, showing raw answer: %v", err)
		}
	}
	return s.AnswerPanel.Width(width).Render(body)
}

// AnswerMsg carries the outcome of one submission back to the form.
type AnswerMsg struct {
	Question string // The question as sent
	Answer   string // Reply text or a fallback message
	Err      error  // Non-nil when the service could not be contacted
}
