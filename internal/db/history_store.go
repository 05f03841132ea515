package db

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// maxHistoryEntries bounds the input history size
const maxHistoryEntries = 200

// HistoryStore persists chat input history so Up/Down recall survives
// restarts. The conversation transcript itself is never persisted.
type HistoryStore struct {
	store *Store
}

// NewHistoryStore creates a history store from a base store
func NewHistoryStore(store *Store) *HistoryStore {
	if store == nil {
		return nil
	}
	return &HistoryStore{store: store}
}

// SaveInput appends one line of chat input and prunes old entries
func (hs *HistoryStore) SaveInput(ctx context.Context, input string) error {
	if hs == nil || hs.store == nil {
		return fmt.Errorf("history store not initialized")
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("empty input")
	}

	if _, err := hs.store.db.ExecContext(ctx,
		`INSERT INTO input_history(input, created_at) VALUES(?,?)`,
		input, time.Now().Unix()); err != nil {
		return err
	}

	_, err := hs.store.db.ExecContext(ctx, `DELETE FROM input_history
WHERE id NOT IN (SELECT id FROM input_history ORDER BY id DESC LIMIT ?)`, maxHistoryEntries)
	return err
}

// RecentInputs returns up to limit inputs, most recent first
func (hs *HistoryStore) RecentInputs(ctx context.Context, limit int) ([]string, error) {
	if hs == nil || hs.store == nil {
		return nil, fmt.Errorf("history store not initialized")
	}
	if limit <= 0 || limit > maxHistoryEntries {
		limit = maxHistoryEntries
	}

	rows, err := hs.store.db.QueryContext(ctx,
		`SELECT input FROM input_history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inputs []string
	for rows.Next() {
		var input string
		if err := rows.Scan(&input); err != nil {
			return nil, err
		}
		inputs = append(inputs, input)
	}
	return inputs, rows.Err()
}
