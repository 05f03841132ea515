package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// TokenStore loads and saves the bearer token issued by the backend's
// OAuth flow. The flow itself (browser redirect, code exchange) lives in
// the backend; mailchat only consumes the resulting token file.
type TokenStore struct {
	Path string
}

// NewTokenStore creates a token store for the given file path
func NewTokenStore(path string) *TokenStore {
	return &TokenStore{Path: path}
}

// Load reads the cached token from file
func (ts *TokenStore) Load() (*oauth2.Token, error) {
	f, err := os.Open(ts.Path)
	if err != nil {
		return nil, fmt.Errorf("could not read token file: %w", err)
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("could not parse token file: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("token file %s contains no access token", ts.Path)
	}
	return token, nil
}

// Save writes the token to file, creating parent directories as needed
func (ts *TokenStore) Save(token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(ts.Path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(ts.Path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("could not save token: %w", err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}

// TokenSource returns an oauth2 token source backed by the stored token.
// The backend issues long-lived bearer tokens, so a static source is
// enough; expiry shows up as a 401 from the API.
func (ts *TokenStore) TokenSource() (oauth2.TokenSource, error) {
	token, err := ts.Load()
	if err != nil {
		return nil, err
	}
	return oauth2.StaticTokenSource(token), nil
}
