package backend

import (
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp wraps time.Time to tolerate the backend's timestamp format.
// FastAPI serializes naive Python datetimes as ISO 8601 without a
// timezone offset (e.g. "2026-08-30T12:00:00.123456"), which the strict
// RFC 3339 decoder of time.Time rejects.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps a time.Time
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// timestampLayouts are tried in order; naive datetimes are taken as UTC
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// UnmarshalJSON accepts RFC 3339 timestamps as well as the backend's
// offset-less ISO 8601 form, with or without fractional seconds
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

// MarshalJSON emits RFC 3339
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// Email is a summarized inbox message as returned by the backend.
// Instances are immutable once received; identity is ID.
type Email struct {
	ID          string    `json:"id"`
	Sender      string    `json:"sender"`
	SenderEmail string    `json:"sender_email"`
	Subject     string    `json:"subject"`
	Summary     string    `json:"summary"`
	Date        Timestamp `json:"date"`
}

// Reply is an AI-drafted reply for one email. It exists only client-side
// until sent; ReplyContent is the editable draft text.
type Reply struct {
	EmailID         string `json:"email_id"`
	OriginalSubject string `json:"original_subject"`
	OriginalSender  string `json:"original_sender"`
	ReplyContent    string `json:"reply_content"`
}

// IntentClassification carries the backend classifier's verdict for a
// chat message
type IntentClassification struct {
	Intent     string         `json:"intent"`
	Confidence float64        `json:"confidence"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// ChatResponse is the assistant's answer to a chat message. Intent is
// optional; callers must treat a missing classification as no action.
type ChatResponse struct {
	Message   string                `json:"message"`
	Intent    *IntentClassification `json:"intent,omitempty"`
	Timestamp Timestamp             `json:"timestamp"`
}
