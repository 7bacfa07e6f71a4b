package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skillswap/skillswap-server/internal/services"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", services.ErrValidation, http.StatusBadRequest},
		{"unauthorized", services.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", services.ErrForbidden, http.StatusForbidden},
		{"not found", services.ErrNotFound, http.StatusNotFound},
		{"conflict", services.ErrConflict, http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}

func TestStatusForErrorWrapped(t *testing.T) {
	// Services wrap sentinels with context; the mapping must see through.
	err := fmt.Errorf("%w: a friend request already exists", services.ErrConflict)
	assert.Equal(t, http.StatusConflict, statusForError(err))

	err = fmt.Errorf("%w: swap request not found or permission denied", services.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, statusForError(err))
}
