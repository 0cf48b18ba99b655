package errors

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatchesByCode(t *testing.T) {
	clone := Clone(ErrInvalidTransition, "scores:math is draft")
	wrapped := fmt.Errorf("approve level 2: %w", clone)

	assert.True(t, errors.Is(clone, ErrInvalidTransition))
	assert.True(t, errors.Is(wrapped, ErrInvalidTransition))
	assert.False(t, errors.Is(wrapped, ErrPermissionDenied))
	assert.Equal(t, "invalid status transition", ErrInvalidTransition.Message)
}

func TestIsBusiness(t *testing.T) {
	assert.True(t, IsBusiness(Clone(ErrPermissionDenied, "not a subject manager")))
	assert.True(t, IsBusiness(ErrNotFound))
	assert.True(t, IsBusiness(Wrap(errors.New("bad"), ErrValidation.Code, http.StatusBadRequest, "invalid")))
	assert.False(t, IsBusiness(ErrConflict))
	assert.False(t, IsBusiness(ErrInternal))
	assert.False(t, IsBusiness(sql.ErrConnDone))
	assert.False(t, IsBusiness(nil))
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	appErr := FromError(fmt.Errorf("lookup: %w", ErrNotFound))
	assert.Equal(t, http.StatusNotFound, appErr.Status)

	internal := FromError(sql.ErrConnDone)
	assert.Equal(t, ErrInternal.Code, internal.Code)
	assert.ErrorIs(t, internal, sql.ErrConnDone)
	assert.Contains(t, internal.Error(), "internal server error: ")
}
