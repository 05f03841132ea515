package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Theme defines the color palette used by the chat UI
type Theme struct {
	Name       string `yaml:"name"`
	Background string `yaml:"background"`
	UserText   string `yaml:"userText"`
	BotText    string `yaml:"botText"`
	EmailCard  string `yaml:"emailCard"`
	ReplyCard  string `yaml:"replyCard"`
	Status     string `yaml:"status"`
	ErrorText  string `yaml:"errorText"`
}

// DefaultTheme returns the built-in dark palette
func DefaultTheme() *Theme {
	return &Theme{
		Name:       "mailchat-dark",
		Background: "default",
		UserText:   "#5fafff",
		BotText:    "#d0d0d0",
		EmailCard:  "#87d787",
		ReplyCard:  "#d7af5f",
		Status:     "#808080",
		ErrorText:  "#ff5f5f",
	}
}

// ThemeLoader loads named themes from a directory of YAML files
type ThemeLoader struct {
	themesDir string
}

// NewThemeLoader creates a theme loader rooted at dir
func NewThemeLoader(dir string) *ThemeLoader {
	return &ThemeLoader{themesDir: dir}
}

// LoadTheme reads <name>.yaml from the themes directory; unknown names
// fall back to the default theme
func (tl *ThemeLoader) LoadTheme(name string) (*Theme, error) {
	if name == "" || name == "mailchat-dark" {
		return DefaultTheme(), nil
	}

	path := filepath.Join(tl.themesDir, name+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultTheme(), fmt.Errorf("could not read theme %q: %w", name, err)
	}

	theme := DefaultTheme()
	if err := yaml.Unmarshal(data, theme); err != nil {
		return DefaultTheme(), fmt.Errorf("could not parse theme %q: %w", name, err)
	}
	return theme, nil
}

// SaveTheme writes a theme to <name>.yaml in the themes directory
func (tl *ThemeLoader) SaveTheme(theme *Theme, name string) error {
	if err := os.MkdirAll(tl.themesDir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(theme)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(tl.themesDir, name+".yaml"), data, 0o644)
}
