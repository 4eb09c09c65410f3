package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/r4yfon/flashcarder/internal/api/shared"
	"github.com/r4yfon/flashcarder/internal/domain"
	"github.com/r4yfon/flashcarder/internal/platform/logger"
	"github.com/r4yfon/flashcarder/internal/service"
)

// NoteHandler handles note HTTP requests.
type NoteHandler struct {
	notes  service.NoteService
	logger *slog.Logger
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(notes service.NoteService, logger *slog.Logger) *NoteHandler {
	if notes == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("note service cannot be nil for NoteHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &NoteHandler{
		notes:  notes,
		logger: logger.With(slog.String("component", "note_handler")),
	}
}

// CreateNote handles POST /api/notes.
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	note, err := h.notes.CreateNote(r.Context(), req.Title, req.Content)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to create note")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NoteEnvelope{Note: noteToResponse(note)})
}

// ListNotes handles GET /api/notes.
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.ListNotes(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to fetch notes")
		return
	}

	resp := NoteListResponse{Notes: make([]NoteResponse, 0, len(notes))}
	for _, n := range notes {
		item := noteToResponse(n)
		item.Preview = domain.Excerpt(n.Content, PreviewLength)
		resp.Notes = append(resp.Notes, item)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetNote handles GET /api/notes/{id}.
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	note, err := h.notes.GetNote(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to fetch note")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NoteEnvelope{Note: noteToResponse(note)})
}

// UpdateNote handles PATCH /api/notes/{id}.
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	var req UpdateNoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	note, err := h.notes.UpdateNote(r.Context(), id, req.Title, req.Content)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to update note")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NoteEnvelope{Note: noteToResponse(note)})
}

// DeleteNote handles DELETE /api/notes/{id}[?cascade=true].
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	cascade := false
	if raw := r.URL.Query().Get("cascade"); raw != "" {
		cascade, err = strconv.ParseBool(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid cascade: must be true or false")
			return
		}
	}

	if err := h.notes.DeleteNote(r.Context(), id, cascade); err != nil {
		respondWithServiceError(w, r, err, "Failed to delete note")
		return
	}

	log.Debug("note deleted", slog.String("note_id", id.String()), slog.Bool("cascade", cascade))
	w.WriteHeader(http.StatusNoContent)
}
