package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/r4yfon/flashcarder/internal/api/middleware"
	"github.com/stretchr/testify/require"
)

func newTestRouter(notes *stubNoteService, cards *stubFlashcardService) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if notes == nil {
		notes = &stubNoteService{}
	}
	if cards == nil {
		cards = &stubFlashcardService{}
	}

	r := chi.NewRouter()
	r.Use(middleware.Trace(log))
	r.Route("/api", func(r chi.Router) {
		RegisterRoutes(r, NewNoteHandler(notes, log), NewFlashcardHandler(cards, 5, log))
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type errorBody struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id"`
}
