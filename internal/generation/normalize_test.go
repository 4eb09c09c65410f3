package generation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantPairs   []Pair
		wantFailure FailureKind
	}{
		{
			name:      "plain json",
			raw:       `{"flashcards":[{"question":"Q","answer":"A"}]}`,
			wantPairs: []Pair{{Question: "Q", Answer: "A"}},
		},
		{
			name:      "json fenced block",
			raw:       "```json\n{\"flashcards\":[{\"question\":\"Q\",\"answer\":\"A\"}]}\n```",
			wantPairs: []Pair{{Question: "Q", Answer: "A"}},
		},
		{
			name:      "bare fence with surrounding whitespace",
			raw:       "\n  ```\n{\"flashcards\":[{\"question\":\"Q\",\"answer\":\"A\"}]}\n```  \n",
			wantPairs: []Pair{{Question: "Q", Answer: "A"}},
		},
		{
			name: "malformed entries are dropped",
			raw: `{"flashcards":[{"question":"Q1","answer":"A1"},{"question":123,"answer":"A2"},` +
				`"text",{"question":"Q3"},{"question":"  ","answer":"A4"}]}`,
			wantPairs: []Pair{{Question: "Q1", Answer: "A1"}},
		},
		{
			name: "extra fields are discarded and order kept",
			raw: `{"flashcards":[{"question":"Q1","answer":"A1","hint":"h"},` +
				`{"answer":"A2","question":"Q2","tags":["x"]}],"note":"ignored"}`,
			wantPairs: []Pair{{Question: "Q1", Answer: "A1"}, {Question: "Q2", Answer: "A2"}},
		},
		{
			name:      "inner whitespace is preserved",
			raw:       `{"flashcards":[{"question":"  What is\n ATP? ","answer":"Energy\tcurrency "}]}`,
			wantPairs: []Pair{{Question: "  What is\n ATP? ", Answer: "Energy\tcurrency "}},
		},
		{
			name:      "blank answer is dropped",
			raw:       `{"flashcards":[{"question":"Q1","answer":" \n "},{"question":"Q2","answer":"A2"}]}`,
			wantPairs: []Pair{{Question: "Q2", Answer: "A2"}},
		},
		{
			name:      "nested fences",
			raw:       "``` ```json {\"flashcards\":[{\"question\":\"Q\",\"answer\":\"A\"}]}```",
			wantPairs: []Pair{{Question: "Q", Answer: "A"}},
		},
		{
			name:        "not json",
			raw:         "not json at all",
			wantFailure: FailureParse,
		},
		{
			name:        "empty response",
			raw:         "",
			wantFailure: FailureParse,
		},
		{
			name:        "top-level array",
			raw:         `[{"question":"Q","answer":"A"}]`,
			wantFailure: FailureShape,
		},
		{
			name:        "missing flashcards key",
			raw:         `{"cards":[{"question":"Q","answer":"A"}]}`,
			wantFailure: FailureShape,
		},
		{
			name:        "flashcards is not an array",
			raw:         `{"flashcards":{"question":"Q","answer":"A"}}`,
			wantFailure: FailureShape,
		},
		{
			name:        "no valid entries",
			raw:         `{"flashcards":[{"question":1,"answer":2}]}`,
			wantFailure: FailureEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.raw)

			assert.Equal(t, tt.wantFailure, result.Failure)
			require.NotEmpty(t, result.Pairs, "normalize must never return an empty sequence")

			if tt.wantFailure == FailureNone {
				assert.False(t, result.Degraded())
				assert.Equal(t, tt.wantPairs, result.Pairs)
				return
			}

			assert.True(t, result.Degraded())
			require.Len(t, result.Pairs, 1)
			assert.Equal(t, SentinelQuestion, result.Pairs[0].Question)
			assert.NotEmpty(t, result.Pairs[0].Answer)
		})
	}
}

func TestNormalize_FailureMessagesDiffer(t *testing.T) {
	parse := Normalize("nope").Pairs[0].Answer
	shape := Normalize(`{"other":[]}`).Pairs[0].Answer
	empty := Normalize(`{"flashcards":[]}`).Pairs[0].Answer

	assert.NotEqual(t, parse, shape)
	assert.NotEqual(t, shape, empty)
	assert.NotEqual(t, parse, empty)
}

func TestStripCodeFence_Idempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"flashcards\":[{\"question\":\"Q\",\"answer\":\"A\"}]}\n```",
		"```JSON {\"flashcards\":[]}```",
		"```\n{}\n```",
		"  {\"flashcards\":[]}  ",
		"no fence here",
		"``` ```json {}```",
		"```json\n```json\n{}\n```\n```",
		"``````",
	}

	for _, in := range inputs {
		once := StripCodeFence(in)
		assert.Equal(t, once, StripCodeFence(once), "input %q", in)
	}

	assert.Equal(t, `{"flashcards":[]}`, StripCodeFence("```json\n{\"flashcards\":[]}\n```"))
	assert.Equal(t, "text ```", StripCodeFence("text ```"), "a trailing fence alone is kept")
	assert.Equal(t, "{}", StripCodeFence("``` ```json {}```"))
	assert.Equal(t, "{}", StripCodeFence("```json\n```json\n{}\n```\n```"))
}

func TestUpstreamFallback(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantAnswer string
	}{
		{
			name:       "status error",
			err:        &UpstreamError{Kind: UpstreamStatus, StatusCode: 401, Body: `{"error":"bad key"}`},
			wantAnswer: "API error: 401 Unauthorized",
		},
		{
			name:       "envelope error",
			err:        &UpstreamError{Kind: UpstreamEnvelope},
			wantAnswer: "AI response did not contain expected content.",
		},
		{
			name:       "other error",
			err:        errors.New("boom"),
			wantAnswer: "The AI service request failed. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := UpstreamFallback(tt.err)
			assert.Equal(t, FailureUpstream, result.Failure)
			require.Len(t, result.Pairs, 1)
			assert.Equal(t, SentinelUpstreamQuestion, result.Pairs[0].Question)
			assert.Equal(t, tt.wantAnswer, result.Pairs[0].Answer)
			assert.NotContains(t, result.Pairs[0].Answer, "bad key")
		})
	}
}

func TestUpstreamError(t *testing.T) {
	cause := errors.New("connection reset")
	err := error(&UpstreamError{Kind: UpstreamTransport, Err: cause})

	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")

	status := &UpstreamError{Kind: UpstreamStatus, StatusCode: 503, Body: "secret body"}
	assert.ErrorIs(t, status, ErrUpstream)
	assert.Contains(t, status.Error(), "503")
	assert.NotContains(t, status.Error(), "secret body")
}
