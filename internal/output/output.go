// Package output writes generated agents to disk.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

const (
	// DefaultDir is where generated agents are written.
	DefaultDir = "agents"
	// DefaultExt is the extension of generated agents.
	DefaultExt = ".py"

	filePrefix = "generated_agent_"
)

// FileName derives the output file name from the documentation path.
func FileName(docPath, ext string) string {
	if ext == "" {
		ext = DefaultExt
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	base := filepath.Base(docPath)
	return filePrefix + strings.TrimSuffix(base, filepath.Ext(base)) + ext
}

// Save writes code to path, creating parent directories and overwriting any
// existing file. Empty code is logged and skipped: Save then reports false
// without touching path.
func Save(log zerolog.Logger, code, path string) (bool, error) {
	if strings.TrimSpace(code) == "" {
		log.Error().Str("path", path).Msg("no code to save, the generated code is empty")
		return false, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec
			log.Error().Err(err).Str("dir", dir).Msg("failed to create output directory")
			return false, fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil { //nolint:gosec
		log.Error().Err(err).Str("path", path).Msg("failed to save agent code")
		return false, fmt.Errorf("write agent: %w", err)
	}
	log.Info().Str("path", path).Msg("agent code saved")
	return true, nil
}
