// Package generation turns note text into question/answer pairs with the
// help of a hosted language model.
//
// The pipeline is prompt, completion, normalization:
//
//   - PromptBuilder renders the instruction prompt from a template, cutting
//     the note content to MaxContentRunes characters.
//   - A Completer (see internal/platform/openrouter and
//     internal/platform/gemini) sends the prompt upstream and returns the raw
//     model text, or an *UpstreamError.
//   - Normalize strips code fences, parses the JSON, drops malformed entries
//     and, when nothing usable remains, substitutes a single placeholder pair.
//
// Generator wires the three together. Model output is never trusted: the
// only outcome of a bad response is a degraded Result, never an error.
package generation
