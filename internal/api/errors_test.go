package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/r4yfon/flashcarder/internal/domain"
	"github.com/r4yfon/flashcarder/internal/generation"
	"github.com/r4yfon/flashcarder/internal/service"
	"github.com/r4yfon/flashcarder/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrEmptyContent, http.StatusBadRequest},
		{domain.NewValidationError("count", "too big"), http.StatusBadRequest},
		{fmt.Errorf("%w: check", store.ErrInvalidEntity), http.StatusBadRequest},
		{store.ErrNoteNotFound, http.StatusNotFound},
		{store.ErrFlashcardNotFound, http.StatusNotFound},
		{service.ErrBatchNotFound, http.StatusNotFound},
		{errors.Join(service.ErrNoteInUse, store.ErrReferenced), http.StatusConflict},
		{&generation.UpstreamError{Kind: generation.UpstreamEnvelope}, http.StatusBadGateway},
		{&service.ServiceError{Operation: "x", Err: errors.New("boom")}, http.StatusInternalServerError},
		{errors.New("anything"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err), tt.err.Error())
	}
}

func TestGetSafeErrorMessageDoesNotLeak(t *testing.T) {
	err := &service.ServiceError{
		Operation: "generate_batch",
		Message:   "failed to save flashcards",
		Err:       errors.New("pq: password authentication failed for postgres://app:pw@db"),
	}
	msg := GetSafeErrorMessage(err)
	assert.Equal(t, "An unexpected error occurred", msg)

	upstream := &generation.UpstreamError{Kind: generation.UpstreamStatus, StatusCode: 401, Body: "invalid key sk-or-123"}
	assert.NotContains(t, GetSafeErrorMessage(upstream), "sk-or")
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}
