package generation

import (
	"encoding/json"
	"errors"
	"strings"
)

// Pair is one generated question and its answer.
type Pair struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer"   yaml:"answer"`
}

// FailureKind records why a Result is degraded. FailureNone means the pairs
// came from the model.
type FailureKind string

const (
	FailureNone     FailureKind = ""
	FailureParse    FailureKind = "parse"
	FailureShape    FailureKind = "shape"
	FailureEmpty    FailureKind = "empty"
	FailureUpstream FailureKind = "upstream"
)

// Placeholder texts used when no model output can be used.
const (
	SentinelQuestion         = "Failed to generate structured flashcards"
	SentinelUpstreamQuestion = "Error during flashcard generation"

	sentinelParseAnswer = "The AI response could not be processed. Please check the logs or try again."
	sentinelShapeAnswer = "The AI response did not match the expected JSON structure."
	sentinelEmptyAnswer = "The AI response did not contain any valid question and answer pairs."
)

// Result is the outcome of normalizing model output: either the usable
// pairs (Failure == FailureNone) or exactly one placeholder pair describing
// the failure. Pairs is never empty.
type Result struct {
	Pairs   []Pair
	Failure FailureKind
}

// Degraded reports whether Pairs holds the placeholder instead of model output.
func (r Result) Degraded() bool {
	return r.Failure != FailureNone
}

func sentinel(kind FailureKind, question, answer string) Result {
	return Result{
		Pairs:   []Pair{{Question: question, Answer: answer}},
		Failure: kind,
	}
}

// UpstreamFallback returns the placeholder Result for a failed completion call.
func UpstreamFallback(err error) Result {
	answer := "The AI service request failed. Please try again later."
	var ue *UpstreamError
	if errors.As(err, &ue) {
		answer = ue.Summary()
	}
	return sentinel(FailureUpstream, SentinelUpstreamQuestion, answer)
}

// Normalize converts raw model text into pairs. It never fails: unusable
// input yields a degraded Result with a single placeholder pair. Entries
// without non-blank string question and answer values are dropped.
func Normalize(raw string) Result {
	cleaned := StripCodeFence(raw)

	var parsed any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return sentinel(FailureParse, SentinelQuestion, sentinelParseAnswer)
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return sentinel(FailureShape, SentinelQuestion, sentinelShapeAnswer)
	}
	items, ok := obj["flashcards"].([]any)
	if !ok {
		return sentinel(FailureShape, SentinelQuestion, sentinelShapeAnswer)
	}

	pairs := make([]Pair, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		question, qok := entry["question"].(string)
		answer, aok := entry["answer"].(string)
		if !qok || !aok {
			continue
		}
		// Text is kept as the model wrote it; only blank entries are dropped.
		if strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
			continue
		}
		pairs = append(pairs, Pair{Question: question, Answer: answer})
	}

	if len(pairs) == 0 {
		return sentinel(FailureEmpty, SentinelQuestion, sentinelEmptyAnswer)
	}

	return Result{Pairs: pairs}
}

// StripCodeFence removes leading markdown fences (with an optional "json"
// tag) and their closing fences, then trims whitespace. Nested or repeated
// fences are removed until none is left, so applying it to its own output
// changes nothing. Text without a leading fence is only trimmed.
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	for {
		next := stripOneFence(s)
		if next == s {
			return s
		}
		s = next
	}
}

func stripOneFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
		s = s[4:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")

	return strings.TrimSpace(s)
}
