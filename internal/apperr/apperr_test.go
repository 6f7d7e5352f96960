package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	plain := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.Status)
	assert.Equal(t, "internal server error", plain.Message)

	wrapped := fmt.Errorf("attach: %w", Clone(ErrInvalidStatus, "Invalid status. Valid statuses: Draft"))
	got := FromError(wrapped)
	assert.Equal(t, "INVALID_STATUS", got.Code)
	assert.Equal(t, "Invalid status. Valid statuses: Draft", got.Message)
}

func TestIsMatchesOnCode(t *testing.T) {
	err := fmt.Errorf("svc: %w", WithCause(ErrStorage, errors.New("disk full")))
	assert.ErrorIs(t, err, ErrStorage)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.Contains(t, err.Error(), "disk full")
}

func TestCloneKeepsOriginal(t *testing.T) {
	c := Clone(ErrValidation, "title is too long")
	assert.Equal(t, "title is too long", c.Message)
	assert.Equal(t, "validation failed", ErrValidation.Message)
	assert.Nil(t, Clone(nil, "x"))
}
