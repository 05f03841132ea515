package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
	assert.Equal(t, "30s", cfg.Backend.Timeout)
	assert.Equal(t, "mailchat-dark", cfg.Theme)
	assert.NotEmpty(t, cfg.Token)
	assert.NotEmpty(t, cfg.LogFile)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Backend.BaseURL, cfg.Backend.BaseURL)
}

func TestLoadConfig_PartialFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"backend":{"base_url":"https://mail.example.com","timeout":"5s"},"debug":true}`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://mail.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.GetBackendTimeout())
	assert.True(t, cfg.Debug)
	// Untouched fields keep defaults
	assert.Equal(t, "mailchat-dark", cfg.Theme)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestGetBackendTimeout_Malformed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend.Timeout = "soon"
	assert.Equal(t, 30*time.Second, cfg.GetBackendTimeout())

	cfg.Backend.Timeout = "-2s"
	assert.Equal(t, 30*time.Second, cfg.GetBackendTimeout())
}

func TestSaveAndReloadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := DefaultConfig()
	cfg.Backend.BaseURL = "http://10.0.0.5:8000"
	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8000", loaded.Backend.BaseURL)
}

func TestThemeLoader_FallbackAndFile(t *testing.T) {
	dir := t.TempDir()
	tl := NewThemeLoader(dir)

	theme, err := tl.LoadTheme("")
	require.NoError(t, err)
	assert.Equal(t, "mailchat-dark", theme.Name)

	custom := DefaultTheme()
	custom.Name = "solar"
	custom.UserText = "#ffaf00"
	require.NoError(t, tl.SaveTheme(custom, "solar"))

	loaded, err := tl.LoadTheme("solar")
	require.NoError(t, err)
	assert.Equal(t, "#ffaf00", loaded.UserText)

	// Unknown theme returns default alongside the error
	fallback, err := tl.LoadTheme("missing")
	assert.Error(t, err)
	assert.Equal(t, "mailchat-dark", fallback.Name)
}
