package tui

import (
	"fmt"
	"strings"

	"github.com/ajramos/mailchat/internal/config"
	"github.com/ajramos/mailchat/internal/services"
	"github.com/derailed/tview"
	"github.com/mattn/go-runewidth"
)

const cardWidth = 72

// RenderTranscript formats the full transcript snapshot as tview markup.
// draftEdits overlays locally edited reply content by card index.
func RenderTranscript(entries []services.TranscriptEntry, theme *config.Theme, draftEdits map[int]string) string {
	if theme == nil {
		theme = config.DefaultTheme()
	}

	var b strings.Builder
	for _, entry := range entries {
		switch entry.Kind {
		case services.KindEmailList:
			renderTextLine(&b, theme.BotText, "Assistant", entry.Text, entry.Pending)
			renderEmailCards(&b, theme, entry)
		case services.KindReplyList:
			renderTextLine(&b, theme.BotText, "Assistant", entry.Text, entry.Pending)
			renderReplyCards(&b, theme, entry, draftEdits)
		default:
			color, label := theme.BotText, "Assistant"
			if entry.Role == services.RoleUser {
				color, label = theme.UserText, "You"
			}
			renderTextLine(&b, color, label, entry.Text, entry.Pending)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderTextLine(b *strings.Builder, color, label, text string, pending bool) {
	suffix := ""
	if pending {
		suffix = " ⏳"
	}
	fmt.Fprintf(b, "[%s::b]%s:[-::-] %s%s\n", color, label, tview.Escape(text), suffix)
}

func renderEmailCards(b *strings.Builder, theme *config.Theme, entry services.TranscriptEntry) {
	for i, email := range entry.Emails {
		fmt.Fprintf(b, "  [%s]┌ %d. %s[-]\n", theme.EmailCard, i+1,
			truncate(tview.Escape(email.Sender), cardWidth-8))
		fmt.Fprintf(b, "  [%s]│[-]  %s\n", theme.EmailCard,
			truncate(tview.Escape(email.Subject), cardWidth))
		if !email.Date.IsZero() {
			fmt.Fprintf(b, "  [%s]│[-]  [%s]%s[-]\n", theme.EmailCard, theme.Status,
				email.Date.Format("Mon, 02 Jan 2006 15:04"))
		}
		if email.Summary != "" {
			fmt.Fprintf(b, "  [%s]└[-]  %s\n", theme.EmailCard,
				truncate(tview.Escape(email.Summary), cardWidth))
		} else {
			fmt.Fprintf(b, "  [%s]└[-]\n", theme.EmailCard)
		}
	}
}

func renderReplyCards(b *strings.Builder, theme *config.Theme, entry services.TranscriptEntry, draftEdits map[int]string) {
	for i, reply := range entry.Replies {
		content := reply.ReplyContent
		edited := false
		if draftEdits != nil {
			if override, ok := draftEdits[i]; ok {
				content, edited = override, true
			}
		}

		header := fmt.Sprintf("%d. Re: %s", i+1, truncate(tview.Escape(reply.OriginalSubject), cardWidth-12))
		if edited {
			header += " (edited)"
		}
		fmt.Fprintf(b, "  [%s]┌ %s[-]\n", theme.ReplyCard, header)
		for _, line := range strings.Split(content, "\n") {
			fmt.Fprintf(b, "  [%s]│[-]  %s\n", theme.ReplyCard, tview.Escape(line))
		}
		fmt.Fprintf(b, "  [%s]└[-]  [%s]:send %d to send, :edit %d to rewrite[-]\n",
			theme.ReplyCard, theme.Status, i+1, i+1)
	}
}

// truncate shortens s to the given display width, rune-width aware
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
