package main

import (
	"fmt"
	"log/slog"

	"github.com/r4yfon/flashcarder/internal/config"
)

// loadAppConfig loads the application configuration from defaults, an
// optional config.yaml and the environment.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// logConfigSummary logs the settings an operator usually wants to confirm.
// Secrets are reported only as present or absent.
func logConfigSummary(log *slog.Logger, cfg *config.Config) {
	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("llm_provider", cfg.LLM.Provider),
		slog.String("llm_model", cfg.LLM.Model),
		slog.Int("default_count", cfg.Generation.DefaultCount),
		slog.Int("max_count", cfg.Generation.MaxCount),
		slog.Bool("persist_fallback", cfg.Generation.PersistFallback))

	log.Debug("secret configuration",
		slog.Bool("database_url_present", cfg.Database.URL != ""),
		slog.Bool("llm_api_key_present", cfg.LLM.APIKey != ""))
}
