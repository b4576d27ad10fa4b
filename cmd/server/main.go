// Package main is the entry point for the FocusFlow server.
//
// The main package is kept minimal — its job is to:
//  1. Load configuration (env vars via the config package)
//  2. Create shared dependencies (logger, data directory)
//  3. Start the application
//
// All actual logic lives in imported packages (internal/server,
// internal/handler, and so on). This separation keeps components
// testable and reusable.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tahmid/focusflow/internal/config"
	"github.com/tahmid/focusflow/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger isn't built yet, so fall back to a bare line.
		os.Stderr.WriteString("focusflow: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))

	// Ensure the data directory exists before sqlite tries to create
	// the database file inside it.
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until shutdown (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
