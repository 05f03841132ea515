package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ajramos/mailchat/internal/backend"
	"github.com/ajramos/mailchat/internal/config"
	"github.com/ajramos/mailchat/internal/db"
	"github.com/ajramos/mailchat/internal/services"
	"github.com/ajramos/mailchat/internal/tui"
	"github.com/ajramos/mailchat/internal/version"
	"github.com/ajramos/mailchat/pkg/auth"
)

func main() {
	configPathFlag := flag.String("config", "", "Path to JSON configuration file (default: ~/.config/mailchat/config.json)")
	tokenPathFlag := flag.String("token", "", "Path to bearer token file (default: ~/.config/mailchat/token.json)")
	backendFlag := flag.String("backend", "", "Backend base URL (overrides config)")
	versionFlag := flag.Bool("version", false, "Show version information and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n\n", version.GetVersionString())
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                  # Run with default configuration\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --backend http://localhost:8000  # Point at a local backend\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --version                        # Show version information\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  MAILCHAT_CONFIG  Override default config file path\n")
		fmt.Fprintf(os.Stderr, "  MAILCHAT_TOKEN   Override default token file path\n")
	}

	flag.Parse()

	if *versionFlag {
		fmt.Println(version.GetDetailedVersionString())
		return
	}

	configPath := *configPathFlag
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Could not load configuration from %s: %v", configPath, err)
	}
	if *backendFlag != "" {
		cfg.Backend.BaseURL = *backendFlag
	}

	tokenPath := getTokenPath(*tokenPathFlag, cfg.Token)

	// Bearer credential for every backend call; the OAuth flow itself
	// happens in the backend's web login
	tokenStore := auth.NewTokenStore(tokenPath)
	tokenSource, err := tokenStore.TokenSource()
	if err != nil {
		log.Fatalf("Could not load bearer token from %s: %v\nLog in through the backend's web UI first, or point --token at a valid token file.", tokenPath, err)
	}

	logger, logFile := setupLogger(cfg)
	if logFile != nil {
		defer logFile.Close()
	}

	client := backend.NewClient(cfg.Backend.BaseURL, tokenSource, cfg.GetBackendTimeout())

	ctx := context.Background()

	var historyStore *db.HistoryStore
	if store, err := db.Open(ctx, cfg.History); err == nil {
		historyStore = db.NewHistoryStore(store)
		defer store.Close()
	} else if logger != nil {
		logger.Printf("input history disabled: %v", err)
	}

	themeLoader := config.NewThemeLoader(filepath.Join(filepath.Dir(configPath), "themes"))
	theme, err := themeLoader.LoadTheme(cfg.Theme)
	if err != nil && logger != nil {
		logger.Printf("using default theme: %v", err)
	}

	// The chat service needs the dialogs for confirm/notify, and the app
	// needs the chat service; wire in two steps
	chatService := services.NewChatService(client, nil, nil)
	if logger != nil {
		chatService.SetLogger(logger)
	}

	app := tui.NewApp(chatService, historyStore, theme, logger)
	chatService.SetDialogs(app.Dialogs(), app.Dialogs())

	if err := app.Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

// setupLogger opens the configured log file; logging is best-effort
func setupLogger(cfg *config.Config) (*log.Logger, *os.File) {
	if cfg.LogFile == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil
	}
	return log.New(f, "", log.LstdFlags|log.Lshortfile), f
}

// getTokenPath resolves the token file path: flag > env > config
func getTokenPath(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("MAILCHAT_TOKEN"); env != "" {
		return env
	}
	return configValue
}
