package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/r4yfon/flashcarder/internal/platform/logger"
)

// Completer sends one prompt to a language model and returns the raw text of
// its reply. Failures are reported as *UpstreamError.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generator runs the prompt, completion and normalization steps for one
// request. It holds no per-request state and is safe for concurrent use.
type Generator struct {
	prompts   *PromptBuilder
	completer Completer
	logger    *slog.Logger
}

// NewGenerator creates a Generator. A nil prompts selects the built-in template.
func NewGenerator(completer Completer, prompts *PromptBuilder, log *slog.Logger) (*Generator, error) {
	if completer == nil {
		return nil, fmt.Errorf("%w: completer cannot be nil", ErrInvalidConfig)
	}
	if log == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", ErrInvalidConfig)
	}
	if prompts == nil {
		prompts = defaultBuilder
	}

	return &Generator{
		prompts:   prompts,
		completer: completer,
		logger:    log.With(slog.String("component", "generator")),
	}, nil
}

// Generate produces pairs for content. A failed completion call returns the
// upstream placeholder Result together with the error, so the caller decides
// whether to keep the placeholder. Unusable model output is not an error; it
// yields a degraded Result.
func (g *Generator) Generate(ctx context.Context, content string, count int) (Result, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	prompt, err := g.prompts.Build(content, count)
	if err != nil {
		return Result{}, err
	}

	log.DebugContext(ctx, "sending generation prompt",
		slog.Int("requested_count", count),
		slog.Int("prompt_length", len(prompt)))

	raw, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		var ue *UpstreamError
		if errors.As(err, &ue) {
			log.ErrorContext(ctx, "completion request failed",
				slog.String("kind", string(ue.Kind)),
				slog.Int("status_code", ue.StatusCode),
				slog.String("error", err.Error()))
		} else {
			log.ErrorContext(ctx, "completion request failed",
				slog.String("error", err.Error()))
		}
		return UpstreamFallback(err), err
	}

	result := Normalize(raw)
	if result.Degraded() {
		log.WarnContext(ctx, "model output could not be used, returning placeholder",
			slog.String("failure", string(result.Failure)),
			slog.Int("response_length", len(raw)))
	} else {
		log.InfoContext(ctx, "normalized model output",
			slog.Int("requested_count", count),
			slog.Int("pair_count", len(result.Pairs)))
	}

	return result, nil
}
