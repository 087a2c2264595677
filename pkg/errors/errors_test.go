package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFoundError("lead not found"), http.StatusNotFound},
		{"validation", NewValidationError("email is required"), http.StatusBadRequest},
		{"conflict", NewConflictError("course is full"), http.StatusConflict},
		{"rate limited", NewRateLimitedError("slow down"), http.StatusTooManyRequests},
		{"external", NewExternalError("stripe failed", fmt.Errorf("timeout")), http.StatusBadGateway},
		{"wrapped validation", fmt.Errorf("submit: %w", NewValidationError("bad")), http.StatusBadRequest},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessage_HidesInternalCause(t *testing.T) {
	err := NewInternalError("failed to create lead", fmt.Errorf("pq: connection refused"))

	assert.Equal(t, "internal server error", PublicMessage(err))
	assert.Contains(t, err.Error(), "pq: connection refused")
	assert.Equal(t, "email is required", PublicMessage(NewValidationError("email is required")))
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewNotFoundError("course not found"))

	assert.True(t, Is(err, ErrorTypeNotFound))
	assert.False(t, Is(err, ErrorTypeConflict))
	assert.False(t, Is(nil, ErrorTypeInternal))
}
