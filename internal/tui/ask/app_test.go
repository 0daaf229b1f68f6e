package ask

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestNewApp(t *testing.T) {
	app := NewApp(context.Background(), &stubAsker{})

	if app == nil {
		t.Fatal("expected non-nil app")
		return
	}
	if app.form == nil {
		t.Error("expected non-nil form")
	}
	if app.quitting {
		t.Error("app should not start quitting")
	}
}

func TestApp_Quit(t *testing.T) {
	for _, key := range []string{"ctrl+c", "esc"} {
		t.Run(key, func(t *testing.T) {
			app := NewApp(context.Background(), &stubAsker{})

			_, cmd := app.Update(tea.KeyPressMsg{Text: key})

			if !app.quitting {
				t.Error("expected quitting to be true")
			}
			if cmd == nil {
				t.Error("expected quit command")
			}
		})
	}
}

func TestApp_QuitWhileLoading(t *testing.T) {
	app := NewApp(context.Background(), &stubAsker{reply: "ok"})
	app.form.SetQuestion("pods down?")
	app.form.Submit()

	_, cmd := app.Update(tea.KeyPressMsg{Text: "ctrl+c"})
	if cmd == nil || !app.quitting {
		t.Error("ctrl+c should quit even while a request is in flight")
	}
}

func TestApp_WindowSize(t *testing.T) {
	app := NewApp(context.Background(), &stubAsker{})

	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	if app.width != 120 || app.height != 40 {
		t.Errorf("size: got %dx%d, want 120x40", app.width, app.height)
	}
	if app.form.width != 120 || app.form.height != 40 {
		t.Errorf("form size: got %dx%d, want 120x40", app.form.width, app.form.height)
	}
}

func TestApp_ForwardsToForm(t *testing.T) {
	app := NewApp(context.Background(), &stubAsker{reply: "Cluster healthy"})
	app.form.SetQuestion("pods down?")

	_, cmd := app.Update(tea.KeyPressMsg{Text: "ctrl+s"})
	if !app.form.Loading() {
		t.Fatal("ctrl+s should reach the form and submit")
	}

	app.Update(answerFrom(t, cmd))
	if app.form.Answer() != "Cluster healthy" {
		t.Errorf("answer: got %q", app.form.Answer())
	}
}

func TestApp_View(t *testing.T) {
	app := NewApp(context.Background(), &stubAsker{})
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := app.View()
	if !view.AltScreen {
		t.Error("expected alt screen")
	}
}
