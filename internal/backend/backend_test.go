package backend

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	t.Run("generation", func(t *testing.T) {
		err := NewGenerationError("gemini", "no text in response", nil)
		require.ErrorIs(t, err, ErrGeneration)
		require.NotErrorIs(t, err, ErrInit)
		require.EqualError(t, err, "gemini: no text in response")
	})

	t.Run("init", func(t *testing.T) {
		err := NewInitError("bedrock", "could not load config", nil)
		require.ErrorIs(t, err, ErrInit)
		require.NotErrorIs(t, err, ErrGeneration)
	})

	t.Run("unwrap", func(t *testing.T) {
		original := errors.New("connection refused")
		err := fmt.Errorf("run: %w", NewGenerationError("gemini", "request failed", original))
		require.ErrorIs(t, err, original)
		require.ErrorIs(t, err, ErrGeneration)
		require.EqualError(t, err, "run: gemini: request failed: connection refused")
	})

	t.Run("status code", func(t *testing.T) {
		err := NewGenerationError("gemini", "bad request", nil)
		err.StatusCode = http.StatusBadRequest
		require.Equal(t, http.StatusBadRequest, StatusCode(fmt.Errorf("wrapped: %w", err)))
		require.Zero(t, StatusCode(errors.New("plain")))
	})
}
