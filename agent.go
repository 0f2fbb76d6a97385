package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/agentgen/agentgen/internal/backend"
	"github.com/agentgen/agentgen/internal/doc"
	"github.com/agentgen/agentgen/internal/extract"
	"github.com/agentgen/agentgen/internal/logging"
	"github.com/agentgen/agentgen/internal/output"
	"github.com/agentgen/agentgen/internal/prompt"
	"github.com/rs/zerolog"
)

// connectFunc builds the backend that will generate the agent.
type connectFunc func(ctx context.Context) (backend.Backend, error)

// generator runs one documentation file through the pipeline.
type generator struct {
	connect   connectFunc
	log       zerolog.Logger
	language  string
	ext       string
	outputDir string
}

func newGenerator(cfg Config, log zerolog.Logger, connect connectFunc) generator {
	return generator{
		connect:   connect,
		log:       log,
		language:  cfg.Language,
		ext:       cfg.Ext,
		outputDir: cfg.OutputDir,
	}
}

// run loads the documentation at docPath, connects to the backend, generates
// an agent and writes the extracted code. It returns the written path, or an empty string
// when the generated code was empty and nothing was written.
func (g generator) run(ctx context.Context, docPath, description string) (string, error) {
	d, err := doc.Load(logging.Component(g.log, "doc"), docPath)
	if err != nil {
		return "", err //nolint:wrapcheck
	}

	p := prompt.Build(logging.Component(g.log, "prompt"), prompt.Options{
		Documentation: d.String(),
		Description:   description,
		Language:      g.language,
	})

	b, err := g.connect(ctx)
	if err != nil {
		return "", err
	}

	raw, err := b.Generate(ctx, p)
	if err != nil {
		g.log.Error().Err(err).Msg("error generating agent code")
		return "", fmt.Errorf("generate agent: %w", err)
	}
	g.log.Info().Msg("generated agent code")

	code := extract.Code(raw, g.language)
	path := filepath.Join(g.outputDir, output.FileName(docPath, g.ext))
	written, err := output.Save(logging.Component(g.log, "output"), code, path)
	if err != nil {
		return "", err //nolint:wrapcheck
	}
	if !written {
		return "", nil
	}
	return path, nil
}
