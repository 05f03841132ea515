package db

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	assert.Error(t, err)
}

func TestHistoryStore_SaveAndRecent(t *testing.T) {
	hs := NewHistoryStore(openTestStore(t))
	ctx := context.Background()

	require.NoError(t, hs.SaveInput(ctx, "show my emails"))
	require.NoError(t, hs.SaveInput(ctx, "generate replies"))

	inputs, err := hs.RecentInputs(ctx, 10)
	require.NoError(t, err)
	// Most recent first
	assert.Equal(t, []string{"generate replies", "show my emails"}, inputs)
}

func TestHistoryStore_EmptyInputRejected(t *testing.T) {
	hs := NewHistoryStore(openTestStore(t))

	assert.Error(t, hs.SaveInput(context.Background(), "   "))
}

func TestHistoryStore_Pruning(t *testing.T) {
	hs := NewHistoryStore(openTestStore(t))
	ctx := context.Background()

	for i := 0; i < maxHistoryEntries+10; i++ {
		require.NoError(t, hs.SaveInput(ctx, fmt.Sprintf("input %d", i)))
	}

	inputs, err := hs.RecentInputs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, inputs, maxHistoryEntries)
	// Newest entry survives, oldest entries were pruned
	assert.Equal(t, fmt.Sprintf("input %d", maxHistoryEntries+9), inputs[0])
}

func TestHistoryStore_NilStore(t *testing.T) {
	var hs *HistoryStore
	assert.Error(t, hs.SaveInput(context.Background(), "x"))
	_, err := hs.RecentInputs(context.Background(), 5)
	assert.Error(t, err)
}
