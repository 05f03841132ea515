package tui

import (
	"context"
	"testing"

	"github.com/ajramos/mailchat/internal/backend"
	"github.com/ajramos/mailchat/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChatService implements services.ChatService with a canned snapshot
type stubChatService struct {
	entries []services.TranscriptEntry
}

func (s *stubChatService) SendMessage(ctx context.Context, text string) error { return nil }

func (s *stubChatService) GenerateSingleReply(ctx context.Context, emailID string) (*backend.Reply, error) {
	return nil, nil
}

func (s *stubChatService) SendReply(ctx context.Context, emailID, content string) error { return nil }

func (s *stubChatService) DeleteEmail(ctx context.Context, emailID string) error { return nil }

func (s *stubChatService) Snapshot() []services.TranscriptEntry { return s.entries }

func (s *stubChatService) Busy() bool { return false }

func replyListEntry(ids ...string) services.TranscriptEntry {
	replies := make([]backend.Reply, len(ids))
	for i, id := range ids {
		replies[i] = backend.Reply{EmailID: id, ReplyContent: "draft for " + id}
	}
	return services.TranscriptEntry{
		Role:    services.RoleAssistant,
		Kind:    services.KindReplyList,
		Replies: replies,
	}
}

func TestRedrawTranscript_KeepsEditsForSameReplyList(t *testing.T) {
	stub := &stubChatService{entries: []services.TranscriptEntry{replyListEntry("e1", "e2")}}
	app := NewApp(stub, nil, nil, nil)

	app.redrawTranscript()
	app.draftEdits[0] = "my edited text"

	// Redrawing the same list leaves local edits alone
	app.redrawTranscript()
	assert.Equal(t, "my edited text", app.draftEdits[0])
	require.Len(t, app.visibleReplies, 2)
}

func TestRedrawTranscript_DropsEditsWhenListRegenerated(t *testing.T) {
	stub := &stubChatService{entries: []services.TranscriptEntry{replyListEntry("e1", "e2")}}
	app := NewApp(stub, nil, nil, nil)

	app.redrawTranscript()
	app.draftEdits[0] = "stale edit"

	// A new batch appends a fresh reply list; its drafts must replace
	// the edited ones so :send never picks up stale text
	stub.entries = append(stub.entries,
		services.TranscriptEntry{Role: services.RoleAssistant, Kind: services.KindText, Text: "regenerated"},
		replyListEntry("e3", "e4"),
	)
	app.redrawTranscript()

	assert.Empty(t, app.draftEdits)
	require.Len(t, app.visibleReplies, 2)
	assert.Equal(t, "e3", app.visibleReplies[0].EmailID)

	// The rendered card shows the regenerated draft, not the stale edit
	out := RenderTranscript(stub.entries, nil, app.draftEdits)
	assert.Contains(t, out, "draft for e3")
	assert.NotContains(t, out, "stale edit")
}
