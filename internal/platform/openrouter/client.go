package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/r4yfon/flashcarder/internal/config"
	"github.com/r4yfon/flashcarder/internal/generation"
	"github.com/r4yfon/flashcarder/internal/platform/logger"
)

// Fixed sampling parameters for flashcard generation.
const (
	Temperature = 0.3
	MaxTokens   = 2500
)

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 1 << 20

// Client sends prompts to {BaseURL}/chat/completions. It performs exactly one
// request per Complete call and never retries.
type Client struct {
	endpoint   string
	apiKey     string
	model      string
	referer    string
	appTitle   string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client, e.g. with one from httptest.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Client from cfg. An empty API key is accepted and sent
// as-is.
func NewClient(cfg config.LLMConfig, log *slog.Logger, opts ...Option) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", generation.ErrInvalidConfig)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model cannot be empty", generation.ErrInvalidConfig)
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	c := &Client{
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions",
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		referer:    cfg.Referer,
		appTitle:   cfg.AppTitle,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.With(slog.String("component", "openrouter_client")),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Complete implements generation.Completer.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: generation.SystemInstruction},
			{Role: "user", Content: prompt},
		},
		Temperature:    Temperature,
		MaxTokens:      MaxTokens,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &generation.UpstreamError{Kind: generation.UpstreamTransport, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.referer != "" {
		req.Header.Set("HTTP-Referer", c.referer)
	}
	if c.appTitle != "" {
		req.Header.Set("X-Title", c.appTitle)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.ErrorContext(ctx, "completion transport failure",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))
		return "", &generation.UpstreamError{Kind: generation.UpstreamTransport, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.ErrorContext(ctx, "failed to read completion response",
			slog.String("error", err.Error()))
		return "", &generation.UpstreamError{
			Kind:       generation.UpstreamTransport,
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.ErrorContext(ctx, "completion endpoint returned error status",
			slog.Int("status_code", resp.StatusCode),
			slog.Int("body_length", len(body)))
		return "", &generation.UpstreamError{
			Kind:       generation.UpstreamStatus,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		log.ErrorContext(ctx, "completion response is not valid JSON",
			slog.String("error", err.Error()))
		return "", &generation.UpstreamError{
			Kind:       generation.UpstreamEnvelope,
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Err:        err,
		}
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		log.ErrorContext(ctx, "completion response has no message content",
			slog.Int("choices", len(parsed.Choices)))
		return "", &generation.UpstreamError{
			Kind:       generation.UpstreamEnvelope,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	log.DebugContext(ctx, "completion received",
		slog.Int("content_length", len(parsed.Choices[0].Message.Content)),
		slog.Duration("elapsed", time.Since(start)))

	return parsed.Choices[0].Message.Content, nil
}
