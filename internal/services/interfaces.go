package services

import (
	"context"

	"github.com/ajramos/mailchat/internal/backend"
)

// CapabilityClient is the backend surface the orchestrator depends on.
// Every call is a single asynchronous request/response; failures are
// treated uniformly as "operation failed".
type CapabilityClient interface {
	SendChatMessage(ctx context.Context, text string) (*backend.ChatResponse, error)
	ListRecentEmails(ctx context.Context) ([]backend.Email, error)
	GenerateReply(ctx context.Context, emailID string) (*backend.Reply, error)
	SendReply(ctx context.Context, emailID, content string) error
	DeleteEmail(ctx context.Context, emailID string) error
}

// Confirmer asks the user to approve an action before it runs. The
// presentation layer satisfies this with a modal dialog; tests satisfy it
// with a canned answer.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// Notifier surfaces blocking notifications for single-item action
// failures (the batch path reports through the transcript instead)
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// ChatService owns the conversation transcript and orchestrates backend
// workflows
type ChatService interface {
	// SendMessage dispatches free-form user text: classification, then
	// the intent-selected workflow. Backend failures are absorbed into
	// the transcript; only ErrBusy and validation errors are returned.
	SendMessage(ctx context.Context, text string) error

	// GenerateSingleReply drafts a reply for one already-displayed email
	GenerateSingleReply(ctx context.Context, emailID string) (*backend.Reply, error)

	// SendReply sends an edited draft after user confirmation
	SendReply(ctx context.Context, emailID, content string) error

	// DeleteEmail deletes one email after user confirmation
	DeleteEmail(ctx context.Context, emailID string) error

	// Snapshot returns the transcript for rendering
	Snapshot() []TranscriptEntry

	// Busy reports whether a top-level workflow is in flight
	Busy() bool
}
