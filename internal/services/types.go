package services

import (
	"time"

	"github.com/ajramos/mailchat/internal/backend"
)

// Role identifies the author of a transcript entry
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// EntryKind disambiguates how a transcript entry's payload is rendered
type EntryKind string

const (
	KindText      EntryKind = "text"
	KindEmailList EntryKind = "email_list"
	KindReplyList EntryKind = "reply_list"
)

// TranscriptEntry is one unit of conversation content. Entries are value
// objects: once a terminal (non-pending) entry is in the transcript it is
// never mutated.
type TranscriptEntry struct {
	Role      Role
	Kind      EntryKind
	Text      string
	Emails    []backend.Email
	Replies   []backend.Reply
	Timestamp time.Time

	// Pending marks the transient loading placeholder of an in-flight
	// workflow; only the most recent entry may carry it
	Pending bool
}

// Intent is the orchestrator-side view of the backend classifier's label.
// Only ReadEmails and GenerateReplies select workflows; every other label
// collapses to None.
type Intent int

const (
	IntentNone Intent = iota
	IntentReadEmails
	IntentGenerateReplies
)

// String returns the intent name
func (i Intent) String() string {
	switch i {
	case IntentReadEmails:
		return "READ_EMAILS"
	case IntentGenerateReplies:
		return "GENERATE_REPLIES"
	default:
		return "NONE"
	}
}

// ParseIntent maps a backend intent label to an Intent. Unknown or absent
// labels, and labels that carry no client-side workflow (GREETING,
// GENERAL_QUERY, DELETE_EMAIL, SEND_REPLY), map to IntentNone.
func ParseIntent(classification *backend.IntentClassification) Intent {
	if classification == nil {
		return IntentNone
	}
	switch classification.Intent {
	case "READ_EMAILS":
		return IntentReadEmails
	case "GENERATE_REPLIES":
		return IntentGenerateReplies
	default:
		return IntentNone
	}
}

// batchItemFailure records one failed generation inside a batch
type batchItemFailure struct {
	EmailID string
	Err     error
}

// batchCollector accumulates per-item results of a generate-replies batch.
// Successes keep the order they were generated in, which matches email
// order because generation is strictly sequential.
type batchCollector struct {
	replies  []backend.Reply
	failures []batchItemFailure
}

func (b *batchCollector) success(reply backend.Reply) {
	b.replies = append(b.replies, reply)
}

func (b *batchCollector) failure(emailID string, err error) {
	b.failures = append(b.failures, batchItemFailure{EmailID: emailID, Err: err})
}

// allFailed reports whether every item in a non-empty batch failed
func (b *batchCollector) allFailed() bool {
	return len(b.replies) == 0 && len(b.failures) > 0
}
