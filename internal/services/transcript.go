package services

import (
	"sync"
	"time"
)

// TranscriptStore is the ordered, append-only log of conversation
// entries. Mutations serialize through the BusyGate (single writer at a
// time); the mutex exists so Snapshot can be called from the render
// goroutine while a workflow is appending.
type TranscriptStore struct {
	mu      sync.RWMutex
	entries []TranscriptEntry
}

// NewTranscriptStore creates an empty transcript
func NewTranscriptStore() *TranscriptStore {
	return &TranscriptStore{}
}

// Append adds an entry at the tail, stamping its timestamp if unset.
// Timestamps are kept monotonically non-decreasing across the sequence.
func (t *TranscriptStore) Append(entry TranscriptEntry) TranscriptEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if n := len(t.entries); n > 0 && entry.Timestamp.Before(t.entries[n-1].Timestamp) {
		entry.Timestamp = t.entries[n-1].Timestamp
	}

	t.entries = append(t.entries, entry)
	return entry
}

// ReplaceLast converts the trailing entry when predicate matches it; used
// only to resolve a pending placeholder into its final result or error
// entry. Returns false (and appends nothing) when the transcript is empty
// or the tail does not match.
func (t *TranscriptStore) ReplaceLast(predicate func(TranscriptEntry) bool, entry TranscriptEntry) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(t.entries)
	if n == 0 || !predicate(t.entries[n-1]) {
		return false
	}

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.Timestamp.Before(t.entries[n-1].Timestamp) {
		entry.Timestamp = t.entries[n-1].Timestamp
	}

	t.entries[n-1] = entry
	return true
}

// Snapshot returns a copy of the full ordered sequence for rendering
func (t *TranscriptStore) Snapshot() []TranscriptEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]TranscriptEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries
func (t *TranscriptStore) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
