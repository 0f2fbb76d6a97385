package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentgen/agentgen/internal/backend"
	"github.com/agentgen/agentgen/internal/bedrock"
	"github.com/agentgen/agentgen/internal/google"
	"github.com/agentgen/agentgen/internal/logging"
	"github.com/rs/zerolog"
)

type backendFactory func(ctx context.Context, cfg Config, log zerolog.Logger) (backend.Backend, error)

// backends is the closed set of supported providers.
var backends = map[string]backendFactory{
	providerGemini:  newGeminiBackend,
	providerBedrock: newBedrockBackend,
}

func newGeminiBackend(ctx context.Context, cfg Config, log zerolog.Logger) (backend.Backend, error) {
	gcfg := google.DefaultConfig(cfg.GeminiModel, cfg.GoogleAPIKey)
	gcfg.Logger = logging.Component(log, "gemini")
	c, err := google.New(ctx, gcfg)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return c, nil
}

func newBedrockBackend(ctx context.Context, cfg Config, log zerolog.Logger) (backend.Backend, error) {
	c, err := bedrock.New(ctx, bedrock.Config{
		ModelID:   cfg.BedrockModelID,
		Region:    cfg.AWSRegion,
		MaxTokens: cfg.MaxTokens,
		Logger:    logging.Component(log, "bedrock"),
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return c, nil
}

// newBackend returns the backend of the configured provider.
func newBackend(ctx context.Context, cfg Config, log zerolog.Logger) (backend.Backend, error) {
	name := strings.ToUpper(strings.TrimSpace(cfg.Provider))
	factory, ok := backends[name]
	if !ok {
		log.Error().Str("provider", cfg.Provider).Msg("LLM provider not implemented")
		return nil, fmt.Errorf("%w: %q", backend.ErrNotImplemented, cfg.Provider)
	}
	log.Info().Str("provider", name).Msg("using LLM provider")
	return factory(ctx, cfg, log)
}
