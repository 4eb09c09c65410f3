package service

import (
	"errors"
	"testing"

	"github.com/r4yfon/flashcarder/internal/domain"
	"github.com/r4yfon/flashcarder/internal/generation"
	"github.com/r4yfon/flashcarder/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestNewServiceError(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NewServiceError("op", "msg", nil))

	passthrough := []error{
		ErrNoteInUse,
		ErrBatchNotFound,
		domain.ErrEmptyContent,
		store.ErrNoteNotFound,
		&generation.UpstreamError{Kind: generation.UpstreamTransport, Err: errors.New("dial")},
	}
	for _, err := range passthrough {
		assert.Same(t, err, NewServiceError("op", "msg", err), err.Error())
	}

	cause := errors.New("disk full")
	wrapped := NewServiceError("save", "failed to save", cause)
	var svcErr *ServiceError
	assert.ErrorAs(t, wrapped, &svcErr)
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "service save failed: failed to save: disk full", wrapped.Error())
}
