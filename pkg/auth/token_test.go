package auth

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestTokenStore_SaveAndLoad(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "nested", "token.json"))

	require.NoError(t, store.Save(&oauth2.Token{AccessToken: "abc123", TokenType: "Bearer"}))

	token, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc123", token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
}

func TestTokenStore_LoadMissingFile(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "token.json"))

	_, err := store.Load()
	assert.Error(t, err)
}

func TestTokenStore_EmptyAccessToken(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "token.json"))
	require.NoError(t, store.Save(&oauth2.Token{}))

	_, err := store.Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no access token")
}

func TestTokenStore_TokenSource(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "token.json"))
	require.NoError(t, store.Save(&oauth2.Token{AccessToken: "abc123"}))

	src, err := store.TokenSource()
	require.NoError(t, err)

	token, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc123", token.AccessToken)
}
