package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneKeepsIdentity(t *testing.T) {
	err := Clone(ErrNotFound, "student not found")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "student not found", err.Error())
	assert.Equal(t, "resource not found", ErrNotFound.Message)
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	raw := fmt.Errorf("query attendance: %w", errors.New("boom"))
	appErr := FromError(raw)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.ErrorIs(t, appErr, raw)

	wrapped := fmt.Errorf("load: %w", Clone(ErrValidation, "bad range"))
	assert.Equal(t, http.StatusBadRequest, FromError(wrapped).Status)
	assert.Nil(t, FromError(nil))
}
