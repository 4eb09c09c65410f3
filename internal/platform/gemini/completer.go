package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/r4yfon/flashcarder/internal/config"
	"github.com/r4yfon/flashcarder/internal/generation"
	"github.com/r4yfon/flashcarder/internal/platform/logger"
	"google.golang.org/genai"
)

// DefaultModel is used when the configured model is an OpenRouter-style
// identifier that the Gemini API does not understand.
const DefaultModel = "gemini-2.0-flash"

// Completer sends prompts to the Gemini API.
type Completer struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

type options struct {
	httpClient *http.Client
}

// Option customizes a Completer.
type Option func(*options)

// WithHTTPClient replaces the HTTP client handed to the Gemini SDK. The
// configured timeout is not applied to a client passed this way.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		if hc != nil {
			o.httpClient = hc
		}
	}
}

// NewCompleter creates a Completer. Unlike the OpenRouter client the SDK
// refuses to start without an API key, so a missing key fails here.
func NewCompleter(ctx context.Context, cfg config.LLMConfig, log *slog.Logger, opts ...Option) (*Completer, error) {
	if log == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", generation.ErrInvalidConfig)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	o := options{httpClient: &http.Client{Timeout: timeout}}
	for _, opt := range opts {
		opt(&o)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: o.httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Completer{
		client: client,
		model:  ModelName(cfg.Model),
		logger: log.With(slog.String("component", "gemini_completer")),
	}, nil
}

// ModelName strips an OpenRouter-style "google/" prefix and ":free" suffix,
// falling back to DefaultModel for non-Google identifiers.
func ModelName(configured string) string {
	name := strings.TrimSpace(configured)
	if i := strings.IndexByte(name, ':'); i >= 0 {
		name = name[:i]
	}
	if strings.Contains(name, "/") {
		if !strings.HasPrefix(name, "google/") {
			return DefaultModel
		}
		name = strings.TrimPrefix(name, "google/")
	}
	if name == "" {
		return DefaultModel
	}
	return name
}

// Complete implements generation.Completer.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(generation.SystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.3),
		MaxOutputTokens:   2500,
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		log.ErrorContext(ctx, "gemini request failed",
			slog.String("model", c.model),
			slog.String("error", err.Error()))
		return "", &generation.UpstreamError{Kind: generation.UpstreamTransport, Err: err}
	}

	text, err := extractText(resp)
	if err != nil {
		log.ErrorContext(ctx, "gemini response has no usable content",
			slog.String("model", c.model),
			slog.String("error", err.Error()))
		return "", &generation.UpstreamError{Kind: generation.UpstreamEnvelope, Err: err}
	}

	return text, nil
}

// extractText concatenates the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("response blocked by safety filters")
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("candidate has no content")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("candidate has no text parts")
	}

	return sb.String(), nil
}
