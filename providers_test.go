package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/agentgen/agentgen/internal/backend"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("not implemented", func(t *testing.T) {
		for _, name := range []string{"OPENAI", "", "GEMINI-PRO"} {
			b, err := newBackend(ctx, Config{Provider: name}, zerolog.Nop())
			require.ErrorIs(t, err, backend.ErrNotImplemented)
			require.Nil(t, b)
		}
	})

	t.Run("gemini without key", func(t *testing.T) {
		b, err := newBackend(ctx, Config{Provider: " gemini "}, zerolog.Nop())
		require.ErrorIs(t, err, backend.ErrInit)
		require.Nil(t, b)
	})

	t.Run("bedrock without model", func(t *testing.T) {
		b, err := newBackend(ctx, Config{Provider: "aws_bedrock", AWSRegion: "us-east-1"}, zerolog.Nop())
		require.ErrorIs(t, err, backend.ErrInit)
		require.Nil(t, b)
	})

	t.Run("registry", func(t *testing.T) {
		require.Len(t, backends, 2)
		require.Contains(t, backends, "GEMINI")
		require.Contains(t, backends, "AWS_BEDROCK")
	})
}

func TestGenerateUnknownProvider(t *testing.T) {
	dir := t.TempDir()
	docPath := writeDoc(t, dir, "users.txt", "POST /users creates a user")

	path, err := generate(context.Background(), zerolog.Nop(), Config{
		Provider:  "NOPE",
		DocPath:   docPath,
		Language:  "Python",
		Ext:       ".py",
		OutputDir: dir,
	})
	require.ErrorIs(t, err, backend.ErrNotImplemented)
	require.Empty(t, path)
	require.Equal(t, "Unknown LLM provider.", reasonFor(err))
}

func TestGenerateTimeout(t *testing.T) {
	dir := t.TempDir()
	docPath := writeDoc(t, dir, "users.txt", "POST /users creates a user")

	_, err := generate(context.Background(), zerolog.Nop(), Config{
		Provider:     providerGemini,
		GeminiModel:  "gemini-2.0-flash",
		GoogleAPIKey: "key",
		DocPath:      docPath,
		Language:     "Python",
		Ext:          ".py",
		OutputDir:    dir,
		Timeout:      time.Nanosecond,
	})
	require.ErrorIs(t, err, backend.ErrInit)
	require.NoFileExists(t, filepath.Join(dir, "generated_agent_users.py"))
}
