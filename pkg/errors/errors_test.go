package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Classification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
		check      func(error) bool
	}{
		{
			name:       "validation",
			err:        NewValidation("invalid month format"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid month format",
			check:      IsValidation,
		},
		{
			name:       "not found",
			err:        NewNotFound("employee not found"),
			wantStatus: http.StatusNotFound,
			wantMsg:    "employee not found",
			check:      IsNotFound,
		},
		{
			name:       "conflict",
			err:        NewConflict("leave request already decided"),
			wantStatus: http.StatusConflict,
			wantMsg:    "leave request already decided",
			check:      IsConflict,
		},
		{
			name:       "internal hides its message",
			err:        NewInternal("store exploded", errors.New("boom")),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
			check:      IsInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.Equal(t, tt.wantStatus, HTTPStatus(tt.err))
			assert.Equal(t, tt.wantMsg, Message(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("preserves type of wrapped AppError", func(t *testing.T) {
		err := Wrap(NewNotFound("department not found"), "create employee")
		assert.True(t, IsNotFound(err))
		assert.Equal(t, "NOT_FOUND: create employee: department not found", err.Error())
	})

	t.Run("plain errors become internal", func(t *testing.T) {
		cause := errors.New("disk full")
		err := Wrap(cause, "append attendance")
		assert.True(t, IsInternal(err))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "noop"))
	})

	t.Run("classification survives fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", NewValidation("invalid attendance status"))
		assert.True(t, IsValidation(err))
		assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
	})

	t.Run("unknown errors map to 500", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("x")))
	})
}
