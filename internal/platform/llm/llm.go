// Package llm selects the completion backend named by the configuration.
package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/r4yfon/flashcarder/internal/config"
	"github.com/r4yfon/flashcarder/internal/generation"
	"github.com/r4yfon/flashcarder/internal/platform/gemini"
	"github.com/r4yfon/flashcarder/internal/platform/openrouter"
)

// NewCompleter returns the completion backend selected by cfg.Provider.
func NewCompleter(ctx context.Context, cfg config.LLMConfig, log *slog.Logger) (generation.Completer, error) {
	switch cfg.Provider {
	case config.ProviderOpenRouter:
		client, err := openrouter.NewClient(cfg, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenRouter client: %w", err)
		}
		return client, nil
	case config.ProviderGemini:
		completer, err := gemini.NewCompleter(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini completer: %w", err)
		}
		return completer, nil
	default:
		return nil, fmt.Errorf("%w: unknown LLM provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
}
