package ask

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drkube/drkube/internal/drkube"
)

// stubAsker records every question and replies with a canned outcome.
type stubAsker struct {
	mu        sync.Mutex
	questions []string
	reply     string
	err       error
}

func (s *stubAsker) Ask(ctx context.Context, question string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = append(s.questions, question)
	return s.reply, s.err
}

func (s *stubAsker) calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.questions...)
}

// runCmd executes cmd and flattens batches into their messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, runCmd(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func answerFrom(t *testing.T, cmd tea.Cmd) AnswerMsg {
	t.Helper()
	for _, msg := range runCmd(cmd) {
		if ans, ok := msg.(AnswerMsg); ok {
			return ans
		}
	}
	t.Fatal("command produced no AnswerMsg")
	return AnswerMsg{}
}

func TestNewForm(t *testing.T) {
	form := NewForm(context.Background(), &stubAsker{})

	assert.Equal(t, "", form.Question())
	assert.Equal(t, "", form.Answer())
	assert.False(t, form.Loading())
	assert.Equal(t, focusInput, form.focus)
	assert.Nil(t, form.md, "markdown rendering should be off by default")
}

func TestForm_SubmitBlankIsNoop(t *testing.T) {
	for _, q := range []string{"", "   ", "\n\t  \n"} {
		t.Run(fmt.Sprintf("%q", q), func(t *testing.T) {
			asker := &stubAsker{reply: "unused"}
			form := NewForm(context.Background(), asker)
			form.answer = "previous answer"
			form.SetQuestion(q)

			cmd := form.Submit()

			assert.Nil(t, cmd)
			assert.Empty(t, asker.calls())
			assert.Equal(t, "previous answer", form.Answer())
			assert.False(t, form.Loading())
		})
	}
}

func TestForm_SubmitSuccess(t *testing.T) {
	asker := &stubAsker{reply: "Cluster healthy"}
	form := NewForm(context.Background(), asker)
	form.answer = "stale"
	form.SetQuestion("  pods down? ")

	cmd := form.Submit()
	require.NotNil(t, cmd)

	// Loading starts and the old answer is cleared before the reply arrives.
	assert.True(t, form.Loading())
	assert.Equal(t, "", form.Answer())

	ans := answerFrom(t, cmd)
	assert.Equal(t, []string{"  pods down? "}, asker.calls(), "question is sent untrimmed, once")
	assert.NoError(t, ans.Err)

	// Still loading until the outcome is processed.
	assert.True(t, form.Loading())

	form.Update(ans)
	assert.False(t, form.Loading())
	assert.Equal(t, "Cluster healthy", form.Answer())
	assert.Equal(t, "  pods down? ", form.Question(), "question is not reset after submission")
}

func TestForm_SubmitEmptyReply(t *testing.T) {
	form := NewForm(context.Background(), &stubAsker{reply: ""})
	form.SetQuestion("anything?")

	form.Update(answerFrom(t, form.Submit()))

	assert.False(t, form.Loading())
	assert.Equal(t, drkube.NoResponse, form.Answer())
}

func TestForm_SubmitFailure(t *testing.T) {
	form := NewForm(context.Background(), &stubAsker{err: errors.New("connection refused")})
	form.SetQuestion("pods down?")

	ans := answerFrom(t, form.Submit())
	assert.Error(t, ans.Err)

	form.Update(ans)
	assert.False(t, form.Loading())
	assert.Equal(t, drkube.ErrorContacting, form.Answer())
}

func TestForm_SubmitAgainstService(t *testing.T) {
	var gotURI string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.RequestURI
		_, _ = fmt.Fprint(w, "3 pods in CrashLoopBackOff\n  kube-system/coredns")
	}))
	defer srv.Close()

	form := NewForm(context.Background(), drkube.NewClient(srv.URL))
	form.SetQuestion("pods down?")
	form.Update(answerFrom(t, form.Submit()))

	assert.Equal(t, "/issue?q=pods%20down%3F", gotURI)
	assert.Equal(t, "3 pods in CrashLoopBackOff\n  kube-system/coredns", form.Answer())
}

func TestForm_KeysIgnoredWhileLoading(t *testing.T) {
	asker := &stubAsker{reply: "ok"}
	form := NewForm(context.Background(), asker)
	form.SetQuestion("pods down?")

	require.NotNil(t, form.Update(tea.KeyPressMsg{Text: "ctrl+s"}))
	require.True(t, form.Loading())

	assert.Nil(t, form.Update(tea.KeyPressMsg{Text: "ctrl+s"}), "submit control is disabled while loading")
	assert.Nil(t, form.Update(tea.KeyPressMsg{Text: "x"}))
	assert.Nil(t, form.Update(tea.KeyPressMsg{Text: "tab"}))
	assert.Equal(t, "pods down?", form.Question(), "input is disabled while loading")
	assert.Equal(t, focusInput, form.focus)
}

func TestForm_DirectSubmitWhileLoading(t *testing.T) {
	form := NewForm(context.Background(), &stubAsker{reply: "ok"})
	form.SetQuestion("pods down?")

	require.NotNil(t, form.Submit())
	// Only the key handling guards against overlap; Submit itself does not.
	assert.NotNil(t, form.Submit())
	assert.True(t, form.Loading())
}

func TestForm_TabAndEnterOnButton(t *testing.T) {
	form := NewForm(context.Background(), &stubAsker{reply: "ok"})
	form.SetQuestion("pods down?")

	// Enter in the input is a newline, not a submit.
	form.Update(tea.KeyPressMsg{Text: "enter"})
	assert.False(t, form.Loading())

	form.Update(tea.KeyPressMsg{Text: "tab"})
	assert.Equal(t, focusButton, form.focus)

	cmd := form.Update(tea.KeyPressMsg{Text: "enter"})
	assert.NotNil(t, cmd)
	assert.True(t, form.Loading())

	form.Update(answerFrom(t, cmd))
	form.Update(tea.KeyPressMsg{Text: "shift+tab"})
	assert.Equal(t, focusInput, form.focus)
}

func TestForm_View(t *testing.T) {
	form := NewForm(context.Background(), &stubAsker{reply: "Cluster healthy"})
	form.SetSize(80, 30)

	view := form.View()
	assert.Contains(t, view, Title)
	assert.Contains(t, view, LabelIdle)
	assert.NotContains(t, view, LabelBusy)
	assert.NotContains(t, view, "Cluster healthy", "answer panel hidden while answer is empty")

	form.SetQuestion("pods down?")
	cmd := form.Submit()
	assert.Contains(t, form.View(), LabelBusy)

	form.Update(answerFrom(t, cmd))
	view = form.View()
	assert.Contains(t, view, LabelIdle)
	assert.Contains(t, view, "Cluster healthy")
}

func TestForm_ViewKeepsAnswerLines(t *testing.T) {
	form := NewForm(context.Background(), &stubAsker{})
	form.SetSize(80, 30)
	form.answer = "line one\nline two"

	lines := strings.Split(form.View(), "\n")
	var one, two int = -1, -1
	for i, l := range lines {
		if strings.Contains(l, "line one") {
			one = i
		}
		if strings.Contains(l, "line two") {
			two = i
		}
	}
	require.NotEqual(t, -1, one)
	require.NotEqual(t, -1, two)
	assert.Equal(t, one+1, two, "newlines in the answer are preserved")
}

func TestForm_ViewMarkdown(t *testing.T) {
	form := NewForm(context.Background(), &stubAsker{})
	form.EnableMarkdown()
	form.SetSize(80, 30)
	form.answer = "Check **coredns** first"

	view := form.View()
	assert.Contains(t, view, "coredns")
	assert.NotContains(t, view, "**coredns**")
}

func TestForm_LogoOnWideTerminals(t *testing.T) {
	form := NewForm(context.Background(), &stubAsker{})

	form.SetSize(80, 30)
	assert.NotContains(t, form.View(), "DrKube  )")

	form.SetSize(140, 40)
	assert.Contains(t, form.View(), "DrKube  )")
}

func TestForm_EditorResult(t *testing.T) {
	form := NewForm(context.Background(), &stubAsker{})

	path := filepath.Join(t.TempDir(), "question.md")
	require.NoError(t, os.WriteFile(path, []byte("why is coredns pending?\n"), 0644))

	form.Update(editorFinishedMsg{path: path})

	assert.Equal(t, "why is coredns pending?", form.Question())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "temp file should be removed")
}

func TestForm_EditorErrorKeepsQuestion(t *testing.T) {
	form := NewForm(context.Background(), &stubAsker{})
	form.SetQuestion("original")

	path := filepath.Join(t.TempDir(), "question.md")
	require.NoError(t, os.WriteFile(path, []byte("edited"), 0644))

	form.Update(editorFinishedMsg{path: path, err: errors.New("exit status 1")})
	assert.Equal(t, "original", form.Question())
}
