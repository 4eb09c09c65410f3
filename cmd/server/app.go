package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/r4yfon/flashcarder/internal/api"
	"github.com/r4yfon/flashcarder/internal/config"
	"github.com/r4yfon/flashcarder/internal/generation"
	"github.com/r4yfon/flashcarder/internal/platform/llm"
	"github.com/r4yfon/flashcarder/internal/platform/postgres"
	"github.com/r4yfon/flashcarder/internal/service"
	"github.com/r4yfon/flashcarder/internal/store"
)

// dependencies are the infrastructure pieces the application is built from.
// Production code fills them from Postgres and the configured LLM provider.
type dependencies struct {
	notes      store.NoteStore
	flashcards store.FlashcardStore
	users      store.UserStore
	tx         store.Transactor
	completer  generation.Completer
}

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	users            service.UserResolver
	noteService      service.NoteService
	flashcardService service.FlashcardService

	noteHandler      *api.NoteHandler
	flashcardHandler *api.FlashcardHandler
}

// newApplication creates the application on an open database connection.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger, db *sql.DB) (*application, error) {
	completer, err := llm.NewCompleter(ctx, cfg.LLM, log)
	if err != nil {
		return nil, err
	}

	deps := dependencies{
		notes:      postgres.NewPostgresNoteStore(db, log),
		flashcards: postgres.NewPostgresFlashcardStore(db, log),
		users:      postgres.NewPostgresUserStore(db, log),
		tx:         store.NewTransactor(db),
		completer:  completer,
	}

	app, err := buildApplication(ctx, cfg, log, deps)
	if err != nil {
		return nil, err
	}
	app.db = db
	return app, nil
}

// buildApplication wires services and handlers on top of deps. The demo
// user is resolved once here and attached to every write.
func buildApplication(ctx context.Context, cfg *config.Config, log *slog.Logger, deps dependencies) (*application, error) {
	users, err := service.BootstrapDemoUser(ctx, deps.users, cfg.User.DemoUsername, log)
	if err != nil {
		return nil, fmt.Errorf("failed to bootstrap demo user: %w", err)
	}

	prompts, err := generation.NewPromptBuilder(cfg.LLM.PromptTemplatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt template: %w", err)
	}

	generator, err := generation.NewGenerator(deps.completer, prompts, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	noteService, err := service.NewNoteService(deps.notes, deps.flashcards, deps.tx, users, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create note service: %w", err)
	}

	flashcardService, err := service.NewFlashcardService(
		deps.notes,
		deps.flashcards,
		deps.tx,
		generator,
		users,
		service.GenerationPolicy{
			MaxCount:        cfg.Generation.MaxCount,
			PersistFallback: cfg.Generation.PersistFallback,
		},
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create flashcard service: %w", err)
	}

	app := &application{
		config:           cfg,
		logger:           log,
		users:            users,
		noteService:      noteService,
		flashcardService: flashcardService,
		noteHandler:      api.NewNoteHandler(noteService, log),
		flashcardHandler: api.NewFlashcardHandler(flashcardService, cfg.Generation.DefaultCount, log),
	}

	log.Info("application initialized",
		slog.String("llm_provider", cfg.LLM.Provider),
		slog.String("prompt_template", promptSource(cfg.LLM.PromptTemplatePath)))
	return app, nil
}

func promptSource(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		closeDatabase(app.db, app.logger)
	}
	app.logger.Info("application shutdown completed")
}
