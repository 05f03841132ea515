package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ajramos/mailchat/internal/backend"
	"github.com/google/uuid"
)

// User-visible messages for absorbed failures. Backend failures never
// surface raw error text in the transcript.
const (
	msgClassifyFailed = "Sorry, I couldn't process that request. Please try again."
	msgFetchPending   = "Fetching your recent emails..."
	msgFetchFailed    = "I couldn't reach your inbox right now. Please check your connection and try again."
	msgNoEmails       = "I didn't find any recent emails in your inbox."
	msgNothingToReply = "There are no emails to reply to right now."
	msgBatchFailed    = "I couldn't generate any replies right now. Please try again later."
	msgReplySent      = "Your reply has been sent."
	msgEmailDeleted   = "The email has been deleted."

	confirmSendPrompt   = "Ready to send this reply?"
	confirmDeletePrompt = "Are you sure you want to delete this email?"
)

// ChatServiceImpl implements ChatService
type ChatServiceImpl struct {
	client     CapabilityClient
	transcript *TranscriptStore
	gate       *BusyGate
	confirmer  Confirmer
	notifier   Notifier
	logger     *log.Logger // Optional - for debug logging
}

// NewChatService creates a new chat orchestrator
func NewChatService(client CapabilityClient, confirmer Confirmer, notifier Notifier) *ChatServiceImpl {
	return &ChatServiceImpl{
		client:     client,
		transcript: NewTranscriptStore(),
		gate:       NewBusyGate(),
		confirmer:  confirmer,
		notifier:   notifier,
	}
}

// SetDialogs sets the confirmation and notification capabilities.
// This is called after initialization to avoid a circular dependency
// with the presentation layer.
func (s *ChatServiceImpl) SetDialogs(confirmer Confirmer, notifier Notifier) {
	s.confirmer = confirmer
	s.notifier = notifier
}

// SetLogger sets the logger for debug output
func (s *ChatServiceImpl) SetLogger(logger *log.Logger) {
	s.logger = logger
}

// Snapshot returns the transcript for rendering
func (s *ChatServiceImpl) Snapshot() []TranscriptEntry {
	return s.transcript.Snapshot()
}

// Busy reports whether a top-level workflow is in flight
func (s *ChatServiceImpl) Busy() bool {
	return s.gate.Busy()
}

// Transcript exposes the underlying store
func (s *ChatServiceImpl) Transcript() *TranscriptStore {
	return s.transcript
}

// SendMessage dispatches free-form user text. The gate is checked first:
// a rejected dispatch appends nothing to the transcript. All backend
// failures on this path are absorbed as assistant text entries.
func (s *ChatServiceImpl) SendMessage(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyInput
	}

	if !s.gate.TryBegin() {
		return ErrBusy
	}
	defer s.gate.End()

	wf := s.newWorkflowID("dispatch")

	// Optimistic echo of the user's message, before any network call
	s.transcript.Append(TranscriptEntry{Role: RoleUser, Kind: KindText, Text: text})

	s.appendPending("Thinking...")
	resp, err := s.client.SendChatMessage(ctx, text)
	if err != nil {
		s.logf("%s classify failed: %v", wf, err)
		s.resolvePendingText(msgClassifyFailed)
		return nil
	}
	s.resolvePendingText(resp.Message)

	switch intent := ParseIntent(resp.Intent); intent {
	case IntentReadEmails:
		s.logf("%s intent=%s", wf, intent)
		s.fetchAndDisplay(ctx, wf)
	case IntentGenerateReplies:
		s.logf("%s intent=%s", wf, intent)
		s.generateAllReplies(ctx, wf)
	default:
		// Chat-only response, nothing more to do
	}

	return nil
}

// fetchAndDisplay runs the READ_EMAILS workflow: list the inbox and
// resolve the pending placeholder into an email_list entry
func (s *ChatServiceImpl) fetchAndDisplay(ctx context.Context, wf string) []backend.Email {
	s.appendPending(msgFetchPending)

	emails, err := s.client.ListRecentEmails(ctx)
	if err != nil {
		s.logf("%s list failed: %v", wf, err)
		s.resolvePendingText(msgFetchFailed)
		return nil
	}
	if len(emails) == 0 {
		s.resolvePendingText(msgNoEmails)
		return nil
	}

	// Backend order is preserved, never re-sorted
	s.transcript.ReplaceLast(isPending, TranscriptEntry{
		Role:   RoleAssistant,
		Kind:   KindEmailList,
		Text:   fmt.Sprintf("Here are your %d most recent emails:", len(emails)),
		Emails: emails,
	})
	return emails
}

// generateAllReplies runs the GENERATE_REPLIES batch: one generate call
// per email, strictly sequential, continuing past individual failures
func (s *ChatServiceImpl) generateAllReplies(ctx context.Context, wf string) {
	s.appendPending(msgFetchPending)

	emails, err := s.client.ListRecentEmails(ctx)
	if err != nil {
		s.logf("%s batch list failed: %v", wf, err)
		s.resolvePendingText(msgFetchFailed)
		return
	}
	if len(emails) == 0 {
		s.resolvePendingText(msgNothingToReply)
		return
	}

	s.resolvePendingText(fmt.Sprintf("Generating replies for %d emails. This may take a moment...", len(emails)))
	s.appendPending(fmt.Sprintf("Drafting replies (0/%d)...", len(emails)))

	collector := &batchCollector{}
	for i, email := range emails {
		reply, err := s.client.GenerateReply(ctx, email.ID)
		if err != nil {
			// A single item's failure never aborts the batch
			s.logf("%s generate %s failed: %v", wf, email.ID, err)
			collector.failure(email.ID, err)
			continue
		}
		collector.success(*reply)
		s.transcript.ReplaceLast(isPending, TranscriptEntry{
			Role:    RoleAssistant,
			Kind:    KindText,
			Text:    fmt.Sprintf("Drafting replies (%d/%d)...", i+1, len(emails)),
			Pending: true,
		})
	}

	if collector.allFailed() {
		s.resolvePendingText(msgBatchFailed)
		return
	}

	s.transcript.ReplaceLast(isPending, TranscriptEntry{
		Role:    RoleAssistant,
		Kind:    KindReplyList,
		Text:    fmt.Sprintf("I've drafted %d replies for you. Review and edit them before sending:", len(collector.replies)),
		Replies: collector.replies,
	})
}

// GenerateSingleReply drafts a reply for one email, triggered from an
// already-visible email card. Unlike the batch path, a failure here is
// surfaced as a blocking notification and returned to the caller.
func (s *ChatServiceImpl) GenerateSingleReply(ctx context.Context, emailID string) (*backend.Reply, error) {
	if emailID == "" {
		return nil, ErrInvalidEmailID
	}

	if !s.gate.TryBegin() {
		return nil, ErrBusy
	}
	defer s.gate.End()

	wf := s.newWorkflowID("generate-one")

	reply, err := s.client.GenerateReply(ctx, emailID)
	if err != nil {
		s.logf("%s failed: %v", wf, err)
		s.notify(ctx, "Could not generate a reply for this email. Please try again.")
		return nil, fmt.Errorf("generate reply failed: %w", err)
	}

	s.transcript.Append(TranscriptEntry{
		Role:    RoleAssistant,
		Kind:    KindReplyList,
		Text:    fmt.Sprintf("Here's a draft reply to %q:", reply.OriginalSubject),
		Replies: []backend.Reply{*reply},
	})
	return reply, nil
}

// SendReply sends an edited draft. The draft content is never discarded
// here: on failure the error is returned so the caller keeps the draft
// editable.
func (s *ChatServiceImpl) SendReply(ctx context.Context, emailID, content string) error {
	if emailID == "" {
		return ErrInvalidEmailID
	}

	if !s.gate.TryBegin() {
		return ErrBusy
	}
	defer s.gate.End()

	if !s.confirm(ctx, confirmSendPrompt) {
		return ErrCancelled
	}

	wf := s.newWorkflowID("send-reply")

	if err := s.client.SendReply(ctx, emailID, content); err != nil {
		s.logf("%s failed: %v", wf, err)
		s.notify(ctx, "Could not send the reply. Your draft is unchanged.")
		return fmt.Errorf("send reply failed: %w", err)
	}

	s.transcript.Append(TranscriptEntry{Role: RoleAssistant, Kind: KindText, Text: msgReplySent})
	return nil
}

// DeleteEmail deletes one email. The rendered email card is left as-is
// on failure; there is no speculative removal before confirmation.
func (s *ChatServiceImpl) DeleteEmail(ctx context.Context, emailID string) error {
	if emailID == "" {
		return ErrInvalidEmailID
	}

	if !s.gate.TryBegin() {
		return ErrBusy
	}
	defer s.gate.End()

	if !s.confirm(ctx, confirmDeletePrompt) {
		return ErrCancelled
	}

	wf := s.newWorkflowID("delete-email")

	if err := s.client.DeleteEmail(ctx, emailID); err != nil {
		s.logf("%s failed: %v", wf, err)
		s.notify(ctx, "Could not delete the email. Please try again.")
		return fmt.Errorf("delete email failed: %w", err)
	}

	s.transcript.Append(TranscriptEntry{Role: RoleAssistant, Kind: KindText, Text: msgEmailDeleted})
	return nil
}

func (s *ChatServiceImpl) appendPending(text string) {
	s.transcript.Append(TranscriptEntry{
		Role:    RoleAssistant,
		Kind:    KindText,
		Text:    text,
		Pending: true,
	})
}

// resolvePendingText converts the trailing pending placeholder into a
// final text entry
func (s *ChatServiceImpl) resolvePendingText(text string) {
	s.transcript.ReplaceLast(isPending, TranscriptEntry{
		Role: RoleAssistant,
		Kind: KindText,
		Text: text,
	})
}

func (s *ChatServiceImpl) confirm(ctx context.Context, prompt string) bool {
	if s.confirmer == nil {
		return true
	}
	return s.confirmer.Confirm(ctx, prompt)
}

func (s *ChatServiceImpl) notify(ctx context.Context, message string) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, message)
	}
}

// newWorkflowID returns a short correlation tag for log lines
func (s *ChatServiceImpl) newWorkflowID(kind string) string {
	return fmt.Sprintf("[%s %s]", kind, uuid.NewString()[:8])
}

func (s *ChatServiceImpl) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

func isPending(e TranscriptEntry) bool {
	return e.Pending
}
