// Package openrouter implements generation.Completer against an
// OpenAI-compatible chat completions endpoint such as OpenRouter.
package openrouter
