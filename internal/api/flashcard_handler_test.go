package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/r4yfon/flashcarder/internal/domain"
	"github.com/r4yfon/flashcarder/internal/generation"
	"github.com/r4yfon/flashcarder/internal/service"
	"github.com/r4yfon/flashcarder/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBatch(t *testing.T, noteID uuid.UUID, n int) *domain.Batch {
	t.Helper()
	createdAt := time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)
	cards := make([]*domain.Flashcard, 0, n)
	for i := 0; i < n; i++ {
		card, err := domain.NewFlashcard(&noteID, nil, "batch-xyz", "Q", "A", createdAt)
		require.NoError(t, err)
		cards = append(cards, card)
	}
	return domain.NewBatch("batch-xyz", &noteID, "Cells", cards)
}

func TestGenerateFlashcards(t *testing.T) {
	t.Parallel()

	noteID := uuid.New()

	tests := []struct {
		name        string
		body        string
		serviceErr  error
		degraded    bool
		wantStatus  int
		wantCount   int
		wantMessage string
	}{
		{
			name:       "default count",
			body:       `{"noteId":"` + noteID.String() + `"}`,
			wantStatus: http.StatusCreated,
			wantCount:  5,
		},
		{
			name:       "explicit count",
			body:       `{"noteId":"` + noteID.String() + `","count":3}`,
			wantStatus: http.StatusCreated,
			wantCount:  3,
		},
		{
			name:       "degraded result",
			body:       `{"noteId":"` + noteID.String() + `","count":2}`,
			degraded:   true,
			wantStatus: http.StatusCreated,
			wantCount:  2,
		},
		{
			name:        "missing note id",
			body:        `{"count":3}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid noteId: required field",
		},
		{
			name:        "malformed note id",
			body:        `{"noteId":"abc"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid noteId: must be a valid UUID",
		},
		{
			name:        "zero count",
			body:        `{"noteId":"` + noteID.String() + `","count":0}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid count: must be at least 1",
		},
		{
			name:        "count above max",
			body:        `{"noteId":"` + noteID.String() + `","count":51}`,
			serviceErr:  domain.NewValidationError("count", "must be between 1 and 50"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid count: must be between 1 and 50",
		},
		{
			name:        "note not found",
			body:        `{"noteId":"` + noteID.String() + `"}`,
			serviceErr:  store.ErrNoteNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Note not found",
		},
		{
			name:        "empty note content",
			body:        `{"noteId":"` + noteID.String() + `"}`,
			serviceErr:  domain.ErrEmptyContent,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Content cannot be empty",
		},
		{
			name:        "upstream failure",
			body:        `{"noteId":"` + noteID.String() + `"}`,
			serviceErr:  &generation.UpstreamError{Kind: generation.UpstreamStatus, StatusCode: 500},
			wantStatus:  http.StatusBadGateway,
			wantMessage: "The AI service request failed. Please try again later.",
		},
		{
			name:        "persistence failure",
			body:        `{"noteId":"` + noteID.String() + `"}`,
			serviceErr:  &service.ServiceError{Operation: "generate_batch", Message: "failed", Err: context.Canceled},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Failed to generate flashcards",
		},
		{
			name:        "unknown field",
			body:        `{"noteId":"` + noteID.String() + `","extra":1}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: `Unknown field "extra"`,
		},
		{
			name:        "empty body",
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Request body is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotCount int
			cards := &stubFlashcardService{
				generateFn: func(_ context.Context, id uuid.UUID, count int) (*service.GeneratedBatch, error) {
					gotCount = count
					assert.Equal(t, noteID, id)
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return &service.GeneratedBatch{Batch: sampleBatch(t, id, count), Degraded: tt.degraded}, nil
				},
			}

			rec := doRequest(t, newTestRouter(nil, cards), http.MethodPost, "/api/flashcards", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantStatus != http.StatusCreated {
				body := decodeBody[errorBody](t, rec)
				assert.Equal(t, tt.wantMessage, body.Error)
				assert.NotEmpty(t, body.TraceID)
				return
			}

			assert.Equal(t, tt.wantCount, gotCount)
			body := decodeBody[GenerateFlashcardsResponse](t, rec)
			assert.Equal(t, "batch-xyz", body.BatchID)
			assert.Equal(t, tt.degraded, body.Degraded)
			require.Len(t, body.Flashcards, tt.wantCount)
			for _, card := range body.Flashcards {
				assert.Equal(t, body.BatchID, card.BatchID)
				require.NotNil(t, card.NoteID)
				assert.Equal(t, noteID.String(), *card.NoteID)
			}
		})
	}
}

func TestGenerateFlashcardsWireFormat(t *testing.T) {
	t.Parallel()
	noteID := uuid.New()
	cards := &stubFlashcardService{
		generateFn: func(_ context.Context, id uuid.UUID, count int) (*service.GeneratedBatch, error) {
			return &service.GeneratedBatch{Batch: sampleBatch(t, id, 1)}, nil
		},
	}

	rec := doRequest(t, newTestRouter(nil, cards), http.MethodPost, "/api/flashcards",
		`{"noteId":"`+noteID.String()+`","count":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	raw := decodeBody[map[string]any](t, rec)
	assert.NotContains(t, raw, "degraded")
	card := raw["flashcards"].([]any)[0].(map[string]any)
	for _, key := range []string{"id", "question", "answer", "noteId", "userId", "batchId", "createdAt", "updatedAt"} {
		assert.Contains(t, card, key)
	}
	assert.Equal(t, "2025-04-02T09:30:00Z", card["createdAt"])
}

func TestListBatches(t *testing.T) {
	t.Parallel()
	noteID := uuid.New()
	cards := &stubFlashcardService{
		listFn: func(context.Context) ([]*domain.Batch, error) {
			orphan := sampleBatch(t, noteID, 1)
			orphan.ID, orphan.NoteID, orphan.NoteTitle = "orphan", nil, domain.UnknownNoteTitle
			return []*domain.Batch{sampleBatch(t, noteID, 2), orphan}, nil
		},
	}

	rec := doRequest(t, newTestRouter(nil, cards), http.MethodGet, "/api/flashcards", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[BatchListResponse](t, rec)
	require.Len(t, body.Batches, 2)
	assert.Equal(t, "batch-xyz", body.Batches[0].BatchID)
	assert.Equal(t, "Cells", body.Batches[0].NoteTitle)
	assert.Len(t, body.Batches[0].Cards, 2)
	assert.Nil(t, body.Batches[1].NoteID)
	assert.Equal(t, domain.UnknownNoteTitle, body.Batches[1].NoteTitle)
}

func TestListBatchesEmpty(t *testing.T) {
	t.Parallel()
	cards := &stubFlashcardService{
		listFn: func(context.Context) ([]*domain.Batch, error) { return nil, nil },
	}

	rec := doRequest(t, newTestRouter(nil, cards), http.MethodGet, "/api/flashcards", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"batches":[]}`, rec.Body.String())
}

func TestGetBatch(t *testing.T) {
	t.Parallel()
	noteID := uuid.New()
	cards := &stubFlashcardService{
		getFn: func(_ context.Context, id string) (*domain.Batch, error) {
			if id == "batch-xyz" {
				return sampleBatch(t, noteID, 2), nil
			}
			return nil, service.ErrBatchNotFound
		},
	}
	router := newTestRouter(nil, cards)

	rec := doRequest(t, router, http.MethodGet, "/api/flashcards/batch/batch-xyz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[BatchEnvelope](t, rec)
	assert.Len(t, body.Batch.Cards, 2)

	rec = doRequest(t, router, http.MethodGet, "/api/flashcards/batch/other", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Batch not found", decodeBody[errorBody](t, rec).Error)
}

func TestDeleteFlashcard(t *testing.T) {
	t.Parallel()
	existing := uuid.New()
	cards := &stubFlashcardService{
		deleteFn: func(_ context.Context, id uuid.UUID) error {
			if id == existing {
				return nil
			}
			return store.ErrFlashcardNotFound
		},
	}
	router := newTestRouter(nil, cards)

	rec := doRequest(t, router, http.MethodDelete, "/api/flashcards/"+existing.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = doRequest(t, router, http.MethodDelete, "/api/flashcards/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Flashcard not found", decodeBody[errorBody](t, rec).Error)

	rec = doRequest(t, router, http.MethodDelete, "/api/flashcards/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid id: has invalid format", decodeBody[errorBody](t, rec).Error)
}

func TestDeleteBatch(t *testing.T) {
	t.Parallel()
	cards := &stubFlashcardService{
		deleteBatchFn: func(_ context.Context, id string) (int64, error) {
			if id == "batch-xyz" {
				return 4, nil
			}
			return 0, nil
		},
	}
	router := newTestRouter(nil, cards)

	rec := doRequest(t, router, http.MethodDelete, "/api/flashcards/batch/batch-xyz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[DeleteBatchResponse](t, rec)
	assert.Equal(t, int64(4), body.Count)
	assert.Equal(t, "Deleted 4 flashcards", body.Message)

	rec = doRequest(t, router, http.MethodDelete, "/api/flashcards/batch/unknown", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, decodeBody[DeleteBatchResponse](t, rec).Count)
}
