// Package gemini implements generation.Completer with the Google Gen AI SDK,
// as an alternative to the OpenRouter completion endpoint.
package gemini
