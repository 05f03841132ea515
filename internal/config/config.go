package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// BackendConfig holds connection settings for the email-assistant backend
type BackendConfig struct {
	// BaseURL is the root of the backend API (e.g. http://localhost:8000)
	BaseURL string `json:"base_url"`

	// Timeout applies to every backend request (Go duration string)
	Timeout string `json:"timeout"`
}

// Config holds all configuration for the mailchat client
type Config struct {
	// Backend API settings
	Backend BackendConfig `json:"backend"`

	// Token is the path to the bearer token file
	Token string `json:"token"`

	// Theme is the name of the YAML theme file (without extension)
	Theme string `json:"theme"`

	// History is the path to the SQLite input-history database
	History string `json:"history"`

	// Logging
	LogFile string `json:"log_file"`
	Debug   bool   `json:"debug"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL: "http://localhost:8000",
			Timeout: "30s",
		},
		Token:   filepath.Join(configDir(), "token.json"),
		Theme:   "mailchat-dark",
		History: filepath.Join(configDir(), "history.db"),
		LogFile: filepath.Join(configDir(), "mailchat.log"),
	}
}

// LoadConfig loads configuration from a JSON file, falling back to defaults
// for any missing fields
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	return cfg, nil
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() string {
	if env := os.Getenv("MAILCHAT_CONFIG"); env != "" {
		return env
	}
	return filepath.Join(configDir(), "config.json")
}

// SaveConfig writes the configuration to disk as indented JSON
func (c *Config) SaveConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// GetBackendTimeout parses the backend timeout, defaulting to 30s on
// missing or malformed values
func (c *Config) GetBackendTimeout() time.Duration {
	if c.Backend.Timeout == "" {
		return 30 * time.Second
	}
	d, err := time.ParseDuration(c.Backend.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "mailchat")
}
