package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/ajramos/mailchat/internal/backend"
	"github.com/ajramos/mailchat/internal/config"
	"github.com/ajramos/mailchat/internal/db"
	"github.com/ajramos/mailchat/internal/services"
	"github.com/ajramos/mailchat/internal/version"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// App encapsulates the terminal chat UI and the orchestrator
type App struct {
	*tview.Application

	chat    services.ChatService
	history *db.HistoryStore
	theme   *config.Theme
	logger  *log.Logger

	ctx    context.Context
	cancel context.CancelFunc

	pages          *tview.Pages
	transcriptView *tview.TextView
	inputField     *tview.InputField
	statusView     *tview.TextView
	dialogs        *Dialogs

	// Latest list entries, for :reply/:send/:delete index resolution
	visibleEmails  []backend.Email
	visibleReplies []backend.Reply
	// Local draft edits; reply index -> edited content. Sending never
	// clears an edit on failure, but a regenerated reply list overwrites
	// the displayed drafts, so edits are dropped when the visible list
	// changes.
	draftEdits      map[int]string
	visibleReplyIdx int

	// Input history navigation
	historyLines []string
	historyIndex int
}

// NewApp builds the chat application around an orchestrator
func NewApp(chat services.ChatService, history *db.HistoryStore, theme *config.Theme, logger *log.Logger) *App {
	ctx, cancel := context.WithCancel(context.Background())

	if theme == nil {
		theme = config.DefaultTheme()
	}

	a := &App{
		Application:  tview.NewApplication(),
		chat:         chat,
		history:      history,
		theme:        theme,
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
		draftEdits:      make(map[int]string),
		visibleReplyIdx: -1,
		historyIndex:    -1,
	}
	a.dialogs = NewDialogs(a)
	a.initViews()
	return a
}

// Dialogs exposes the modal capabilities (Confirmer and Notifier) so
// they can be injected into the orchestrator
func (a *App) Dialogs() *Dialogs {
	return a.dialogs
}

func (a *App) initViews() {
	a.transcriptView = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true).
		SetScrollable(true)
	a.transcriptView.SetBorder(true).SetTitle(" " + version.GetVersionString() + " ")

	a.inputField = tview.NewInputField().
		SetLabel("> ").
		SetFieldBackgroundColor(tcell.ColorDefault)
	a.inputField.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			a.submitInput()
		}
	})
	a.inputField.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp:
			a.recallHistory(1)
			return nil
		case tcell.KeyDown:
			a.recallHistory(-1)
			return nil
		}
		return event
	})

	a.statusView = tview.NewTextView().SetDynamicColors(true)
	a.setStatus("Type a message, or :help for commands")

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.transcriptView, 0, 1, false).
		AddItem(a.inputField, 1, 0, true).
		AddItem(a.statusView, 1, 0, false)

	a.pages = tview.NewPages().AddPage("main", layout, true, true)

	a.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlQ {
			a.Stop()
			return nil
		}
		return event
	})

	a.SetRoot(a.pages, true)
	a.loadInputHistory()
}

// Run starts the UI event loop
func (a *App) Run() error {
	defer a.cancel()
	a.redrawTranscript()
	return a.Application.Run()
}

// submitInput routes Enter on the input field: ":" prefix is a command,
// anything else is a chat message
func (a *App) submitInput() {
	text := strings.TrimSpace(a.inputField.GetText())
	if text == "" {
		return
	}
	if a.chat.Busy() {
		a.setStatus("[#ff5f5f]Still working on the previous request...")
		return
	}

	a.inputField.SetText("")
	a.historyIndex = -1
	a.rememberInput(text)

	if strings.HasPrefix(text, ":") {
		a.runCommand(text)
		return
	}
	a.dispatchMessage(text)
}

// dispatchMessage runs the classify-and-act workflow off the UI goroutine
func (a *App) dispatchMessage(text string) {
	a.setBusyStatus(true)
	go func() {
		err := a.chat.SendMessage(a.ctx, text)
		a.QueueUpdateDraw(func() {
			a.setBusyStatus(false)
			if errors.Is(err, services.ErrBusy) {
				a.setStatus("[#ff5f5f]Still working on the previous request...")
			}
			a.redrawTranscript()
		})
	}()

	// Render the optimistic user entry and pending placeholders while
	// the workflow is in flight
	go a.pollWhileBusy()
}

// pollWhileBusy refreshes the transcript while a workflow holds the gate
// so pending placeholders show up as they are appended
func (a *App) pollWhileBusy() {
	ticker := time.NewTicker(120 * time.Millisecond)
	defer ticker.Stop()
	for a.chat.Busy() {
		a.QueueUpdateDraw(a.redrawTranscript)
		select {
		case <-a.ctx.Done():
			return
		case <-ticker.C:
		}
	}
	a.QueueUpdateDraw(a.redrawTranscript)
}

func (a *App) runCommand(input string) {
	fields := strings.Fields(strings.TrimPrefix(input, ":"))
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "q", "quit":
		a.Stop()
	case "help":
		a.setStatus(":reply N | :edit N text | :send N | :delete N | :quit")
	case "reply":
		a.commandWithIndex(fields, len(a.visibleEmails), func(i int) {
			a.generateReply(a.visibleEmails[i].ID)
		})
	case "delete":
		a.commandWithIndex(fields, len(a.visibleEmails), func(i int) {
			a.deleteEmail(a.visibleEmails[i].ID)
		})
	case "send":
		a.commandWithIndex(fields, len(a.visibleReplies), func(i int) {
			a.sendReply(i)
		})
	case "edit":
		a.editDraft(fields)
	default:
		a.setStatus(fmt.Sprintf("[#ff5f5f]Unknown command :%s (try :help)", fields[0]))
	}
}

// commandWithIndex parses a 1-based card index argument and runs fn
func (a *App) commandWithIndex(fields []string, count int, fn func(int)) {
	if len(fields) < 2 {
		a.setStatus(fmt.Sprintf("[#ff5f5f]Usage: :%s N", fields[0]))
		return
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 1 || n > count {
		a.setStatus(fmt.Sprintf("[#ff5f5f]No card numbered %s", fields[1]))
		return
	}
	fn(n - 1)
}

func (a *App) editDraft(fields []string) {
	if len(fields) < 3 {
		a.setStatus("[#ff5f5f]Usage: :edit N new reply text")
		return
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 1 || n > len(a.visibleReplies) {
		a.setStatus(fmt.Sprintf("[#ff5f5f]No draft numbered %s", fields[1]))
		return
	}
	a.draftEdits[n-1] = strings.Join(fields[2:], " ")
	a.redrawTranscript()
	a.setStatus(fmt.Sprintf("Draft %d updated", n))
}

func (a *App) generateReply(emailID string) {
	a.setBusyStatus(true)
	go func() {
		_, err := a.chat.GenerateSingleReply(a.ctx, emailID)
		a.QueueUpdateDraw(func() {
			a.setBusyStatus(false)
			a.redrawTranscript()
			if err != nil && a.logger != nil {
				a.logger.Printf("generate reply: %v", err)
			}
		})
	}()
}

// sendReply sends draft i with any local edit applied. On failure the
// edited content stays in draftEdits so the user can retry.
func (a *App) sendReply(i int) {
	reply := a.visibleReplies[i]
	content := reply.ReplyContent
	if edited, ok := a.draftEdits[i]; ok {
		content = edited
	}

	a.setBusyStatus(true)
	go func() {
		err := a.chat.SendReply(a.ctx, reply.EmailID, content)
		a.QueueUpdateDraw(func() {
			a.setBusyStatus(false)
			if err == nil {
				delete(a.draftEdits, i)
			} else if a.logger != nil && !errors.Is(err, services.ErrCancelled) {
				a.logger.Printf("send reply: %v", err)
			}
			a.redrawTranscript()
		})
	}()
}

func (a *App) deleteEmail(emailID string) {
	a.setBusyStatus(true)
	go func() {
		err := a.chat.DeleteEmail(a.ctx, emailID)
		a.QueueUpdateDraw(func() {
			a.setBusyStatus(false)
			if err != nil && a.logger != nil && !errors.Is(err, services.ErrCancelled) {
				a.logger.Printf("delete email: %v", err)
			}
			a.redrawTranscript()
		})
	}()
}

// redrawTranscript re-renders the full transcript snapshot and refreshes
// the index tables used by card commands
func (a *App) redrawTranscript() {
	snap := a.chat.Snapshot()

	// The most recent list entries define what :reply/:send refer to
	a.visibleEmails = nil
	a.visibleReplies = nil
	replyIdx := -1
	for i, entry := range snap {
		switch entry.Kind {
		case services.KindEmailList:
			a.visibleEmails = entry.Emails
		case services.KindReplyList:
			a.visibleReplies = entry.Replies
			replyIdx = i
		}
	}

	// The transcript is append-only, so the position of the newest
	// reply_list entry identifies it. When a regenerated list takes
	// over, its drafts replace any locally edited ones.
	if replyIdx != a.visibleReplyIdx {
		a.visibleReplyIdx = replyIdx
		a.draftEdits = make(map[int]string)
	}

	a.transcriptView.SetText(RenderTranscript(snap, a.theme, a.draftEdits))
	a.transcriptView.ScrollToEnd()
}

func (a *App) setBusyStatus(busy bool) {
	if busy {
		a.setStatus(fmt.Sprintf("[%s]Working...", a.theme.Status))
		return
	}
	a.setStatus("Type a message, or :help for commands")
}

func (a *App) setStatus(text string) {
	a.statusView.SetText(text)
}

func (a *App) rememberInput(text string) {
	a.historyLines = append([]string{text}, a.historyLines...)
	if a.history != nil {
		if err := a.history.SaveInput(a.ctx, text); err != nil && a.logger != nil {
			a.logger.Printf("save input history: %v", err)
		}
	}
}

func (a *App) loadInputHistory() {
	if a.history == nil {
		return
	}
	lines, err := a.history.RecentInputs(a.ctx, 50)
	if err != nil {
		if a.logger != nil {
			a.logger.Printf("load input history: %v", err)
		}
		return
	}
	a.historyLines = lines
}

// recallHistory moves through previous inputs; direction +1 is older
func (a *App) recallHistory(direction int) {
	if len(a.historyLines) == 0 {
		return
	}
	next := a.historyIndex + direction
	if next < -1 {
		next = -1
	}
	if next >= len(a.historyLines) {
		next = len(a.historyLines) - 1
	}
	a.historyIndex = next
	if next == -1 {
		a.inputField.SetText("")
		return
	}
	a.inputField.SetText(a.historyLines[next])
}
