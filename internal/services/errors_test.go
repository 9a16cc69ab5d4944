package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"mongodeck/pkg/mongodb"

	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want uint
	}{
		{"validation", &ValidationError{Message: "bad input"}, http.StatusBadRequest},
		{"not found", &NotFoundError{Message: "gone"}, http.StatusNotFound},
		{"not connected", mongodb.ErrNotConnected, http.StatusServiceUnavailable},
		{"wrapped not connected", fmt.Errorf("browse: %w", mongodb.ErrNotConnected), http.StatusServiceUnavailable},
		{"connection", &ConnectionError{Message: "unreachable"}, http.StatusInternalServerError},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}

func TestConnectionErrorUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := &ConnectionError{Message: "failed to connect", Err: cause}

	assert.True(t, errors.Is(err, cause))
}
