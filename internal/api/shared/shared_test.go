package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GetTraceID(context.Background()))

	ctx := SetTraceID(context.Background())
	id := GetTraceID(ctx)
	assert.Len(t, id, 32)
	assert.NotContains(t, id, "-")

	assert.Equal(t, "abc", GetTraceID(WithTraceID(ctx, "abc")))
	assert.NotEqual(t, NewTraceID(), NewTraceID())
}

func TestRespondWithErrorIncludesTraceID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req = req.WithContext(WithTraceID(req.Context(), "trace-123"))
	rec := httptest.NewRecorder()

	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError, "Failed to fetch notes",
		errors.New("dial tcp postgres://app:secret@db:5432"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Failed to fetch notes","trace_id":"trace-123"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestRespondWithErrorOmitsMissingTraceID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	RespondWithError(rec, req, http.StatusNotFound, "Note not found")

	assert.JSONEq(t, `{"error":"Note not found"}`, rec.Body.String())
}

type sampleRequest struct {
	NoteID string `json:"noteId" validate:"required,uuid"`
	Count  *int   `json:"count"  validate:"omitempty,gte=1,lte=50"`
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "empty body", body: "", wantMsg: "Request body is required"},
		{name: "malformed", body: `{"noteId":}`, wantMsg: "Malformed JSON"},
		{name: "wrong type", body: `{"noteId":5}`, wantMsg: "Invalid noteId: wrong type"},
		{name: "unknown field", body: `{"other":1}`, wantMsg: `Unknown field "other"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var v sampleRequest
			err := DecodeJSON(httptest.NewRecorder(), req, &v)
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, ValidationMessage(err))
		})
	}
}

func TestValidateRequestUsesJSONNames(t *testing.T) {
	t.Parallel()

	zero, tooMany := 0, 51
	tests := []struct {
		name    string
		req     sampleRequest
		wantMsg string
	}{
		{name: "missing id", req: sampleRequest{}, wantMsg: "Invalid noteId: required field"},
		{name: "bad id", req: sampleRequest{NoteID: "x"}, wantMsg: "Invalid noteId: must be a valid UUID"},
		{name: "count too small", req: sampleRequest{NoteID: "7f9d7a3e-1c3b-4a5e-9c1d-2b6f0e8a4d21", Count: &zero}, wantMsg: "Invalid count: must be at least 1"},
		{name: "count too large", req: sampleRequest{NoteID: "7f9d7a3e-1c3b-4a5e-9c1d-2b6f0e8a4d21", Count: &tooMany}, wantMsg: "Invalid count: must be at most 50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateRequest(&tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, ValidationMessage(err))
		})
	}

	assert.NoError(t, ValidateRequest(&sampleRequest{NoteID: "7f9d7a3e-1c3b-4a5e-9c1d-2b6f0e8a4d21"}))
}

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	RespondWithJSON(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusCreated, map[string]int{"count": 2})

	assert.Equal(t, http.StatusCreated, rec.Code)
	var got map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 2, got["count"])
}
