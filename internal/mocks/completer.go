package mocks

import (
	"context"
	"sync"
)

// MockCompleter implements generation.Completer.
type MockCompleter struct {
	// CompleteFn overrides the default response when set.
	CompleteFn func(ctx context.Context, prompt string) (string, error)

	// Response and Err are returned when CompleteFn is nil.
	Response string
	Err      error

	mu      sync.Mutex
	prompts []string
}

// Complete records the prompt and returns the configured response.
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, prompt)
	}
	return m.Response, m.Err
}

// CallCount returns how many times Complete was called.
func (m *MockCompleter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// Prompts returns a copy of every prompt received, in call order.
func (m *MockCompleter) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}
