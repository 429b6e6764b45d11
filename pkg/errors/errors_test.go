package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodeMapping(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
	}{
		{NotFound("voice", nil), http.StatusNotFound},
		{InvalidInput("bad field", nil), http.StatusBadRequest},
		{Unauthenticated("", nil), http.StatusUnauthorized},
		{Forbidden(""), http.StatusForbidden},
		{Conflict("duplicate", nil), http.StatusConflict},
		{InvalidRelationship("not linked"), http.StatusUnprocessableEntity},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.StatusCode(), tc.err.Message)
	}
}

func TestCodeExtraction(t *testing.T) {
	err := NotFound("note", nil)

	assert.Equal(t, ErrNotFound, Code(err))
	assert.True(t, IsCode(err, ErrNotFound))
	assert.False(t, IsCode(err, ErrConflict))

	wrapped := fmt.Errorf("lookup failed: %w", err)
	assert.True(t, IsCode(wrapped, ErrNotFound))

	assert.Equal(t, ErrInternal, Code(errors.New("plain")))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "voice not found", NotFound("voice", nil).Error())
	assert.Equal(t, "not enough permissions", Forbidden("").Error())
	assert.Equal(t, "authentication required", Unauthenticated("", nil).Error())

	wrapped := Internal(errors.New("pq: connection refused"))
	assert.Contains(t, wrapped.Error(), "connection refused")
	assert.Equal(t, "pq: connection refused", errors.Unwrap(wrapped).Error())
}
