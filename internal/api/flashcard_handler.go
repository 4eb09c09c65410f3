package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/r4yfon/flashcarder/internal/api/shared"
	"github.com/r4yfon/flashcarder/internal/platform/logger"
	"github.com/r4yfon/flashcarder/internal/service"
)

// DefaultGenerateCount is used when a generation request has no count.
const DefaultGenerateCount = 5

// FlashcardHandler handles flashcard and batch HTTP requests.
type FlashcardHandler struct {
	flashcards   service.FlashcardService
	defaultCount int
	logger       *slog.Logger
}

// NewFlashcardHandler creates a new FlashcardHandler. A defaultCount below
// one selects DefaultGenerateCount.
func NewFlashcardHandler(
	flashcards service.FlashcardService,
	defaultCount int,
	logger *slog.Logger,
) *FlashcardHandler {
	if flashcards == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("flashcard service cannot be nil for FlashcardHandler")
	}
	if defaultCount < 1 {
		defaultCount = DefaultGenerateCount
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &FlashcardHandler{
		flashcards:   flashcards,
		defaultCount: defaultCount,
		logger:       logger.With(slog.String("component", "flashcard_handler")),
	}
}

// GenerateFlashcards handles POST /api/flashcards.
func (h *FlashcardHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GenerateFlashcardsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	// validated as a UUID above
	noteID := uuid.MustParse(req.NoteID)
	count := h.defaultCount
	if req.Count != nil {
		count = *req.Count
	}

	out, err := h.flashcards.GenerateBatch(r.Context(), noteID, count)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to generate flashcards")
		return
	}

	if out.Degraded {
		log.Warn("returning placeholder flashcards",
			slog.String("batch_id", out.Batch.ID),
			slog.String("failure", string(out.Failure)))
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, GenerateFlashcardsResponse{
		BatchID:    out.Batch.ID,
		Flashcards: flashcardsToResponse(out.Batch.Cards),
		Degraded:   out.Degraded,
	})
}

// ListBatches handles GET /api/flashcards.
func (h *FlashcardHandler) ListBatches(w http.ResponseWriter, r *http.Request) {
	batches, err := h.flashcards.ListBatches(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to fetch flashcards")
		return
	}

	resp := BatchListResponse{Batches: make([]BatchResponse, 0, len(batches))}
	for _, b := range batches {
		resp.Batches = append(resp.Batches, batchToResponse(b))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetBatch handles GET /api/flashcards/batch/{batchId}.
func (h *FlashcardHandler) GetBatch(w http.ResponseWriter, r *http.Request) {
	batch, err := h.flashcards.GetBatch(r.Context(), chi.URLParam(r, "batchId"))
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to fetch batch")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, BatchEnvelope{Batch: batchToResponse(batch)})
}

// DeleteFlashcard handles DELETE /api/flashcards/{id}.
func (h *FlashcardHandler) DeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	if err := h.flashcards.DeleteFlashcard(r.Context(), id); err != nil {
		respondWithServiceError(w, r, err, "Failed to delete flashcard")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteFlashcardResponse{Success: true})
}

// DeleteBatch handles DELETE /api/flashcards/batch/{batchId}.
func (h *FlashcardHandler) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	n, err := h.flashcards.DeleteBatch(r.Context(), chi.URLParam(r, "batchId"))
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to delete flashcard batch")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteBatchResponse{
		Count:   n,
		Message: fmt.Sprintf("Deleted %d flashcards", n),
	})
}
