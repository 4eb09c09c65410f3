// Package main implements the entry point for the FlashCarder API server,
// which stores study notes and turns them into flashcard batches with an
// LLM.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/r4yfon/flashcarder/internal/platform/logger"
	"github.com/r4yfon/flashcarder/internal/redact"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"Run database migrations and exit: up, down, reset, status, version")
	verbose := flag.Bool("verbose", false, "Enable verbose migration output")
	flag.Parse()

	if err := run(*migrateCmd, *verbose); err != nil {
		slog.Error("server exited with error", slog.String("error", redact.Error(err)))
		os.Exit(1)
	}
}

// run wires the application and blocks until the server stops or the
// requested migration command finishes.
func run(migrateCmd string, verbose bool) error {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	logConfigSummary(log, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := setupAppDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer closeDatabase(db, log)
		return runMigrations(db, migrateCmd, verbose, log)
	}

	if cfg.Database.AutoMigrate {
		if err := runMigrations(db, "up", verbose, log); err != nil {
			closeDatabase(db, log)
			return err
		}
	}

	app, err := newApplication(ctx, cfg, log, db)
	if err != nil {
		closeDatabase(db, log)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
