package tui

import (
	"context"

	"github.com/derailed/tview"
)

// Dialogs satisfies the orchestrator's Confirmer and Notifier
// capabilities with modal dialogs. Both calls block the calling workflow
// goroutine (never the UI goroutine) until the user answers.
type Dialogs struct {
	app *App
}

// NewDialogs creates the modal dialog capability for an app
func NewDialogs(app *App) *Dialogs {
	return &Dialogs{app: app}
}

// Confirm shows a Yes/No modal and waits for the answer
func (d *Dialogs) Confirm(ctx context.Context, prompt string) bool {
	answer := make(chan bool, 1)

	d.app.QueueUpdateDraw(func() {
		modal := tview.NewModal().
			SetText(prompt).
			AddButtons([]string{"Yes", "No"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				d.app.pages.RemovePage("confirm")
				d.app.SetFocus(d.app.inputField)
				answer <- buttonIndex == 0
			})
		d.app.pages.AddPage("confirm", modal, true, true)
	})

	select {
	case ok := <-answer:
		return ok
	case <-ctx.Done():
		return false
	}
}

// Notify shows a blocking notification and waits for dismissal
func (d *Dialogs) Notify(ctx context.Context, message string) {
	dismissed := make(chan struct{})

	d.app.QueueUpdateDraw(func() {
		modal := tview.NewModal().
			SetText(message).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				d.app.pages.RemovePage("notify")
				d.app.SetFocus(d.app.inputField)
				close(dismissed)
			})
		d.app.pages.AddPage("notify", modal, true, true)
	})

	select {
	case <-dismissed:
	case <-ctx.Done():
	}
}
