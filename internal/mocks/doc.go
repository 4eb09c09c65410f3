// Package mocks provides hand-written test doubles for the interfaces in
// internal/store and internal/generation.
//
// Each mock exposes a function field per method. Unset fields fall back to a
// harmless default, and calls are counted so tests can assert on them:
//
//	completer := &mocks.MockCompleter{Response: `{"flashcards":[]}`}
//	// ... run the code under test ...
//	assert.Equal(t, 0, completer.CallCount())
package mocks
