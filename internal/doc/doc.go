// Package doc loads API documentation from plain text or YAML files.
package doc

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Errors returned by [Load] and [Validate].
var (
	ErrNotFound   = errors.New("documentation not found")
	ErrParse      = errors.New("malformed documentation")
	ErrValidation = errors.New("invalid documentation")
)

// Field names of the structured documentation.
const (
	KeyEndpoints = "endpoints"
	KeyURL       = "url"
	KeyMethod    = "method"

	DefaultMethod = "GET"
)

// Documentation is either an opaque text blob or a validated endpoint
// mapping.
type Documentation struct {
	Text string
	Spec map[string]any
}

// IsStructured reports whether the documentation came from a YAML file.
func (d Documentation) IsStructured() bool {
	return d.Spec != nil
}

// Endpoints returns the endpoint descriptors of structured documentation.
func (d Documentation) Endpoints() []map[string]any {
	list, _ := d.Spec[KeyEndpoints].([]any)
	result := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if ep, ok := item.(map[string]any); ok {
			result = append(result, ep)
		}
	}
	return result
}

// String renders the documentation as prompt text.
func (d Documentation) String() string {
	if !d.IsStructured() {
		return d.Text
	}
	bts, err := yaml.Marshal(d.Spec)
	if err != nil {
		return fmt.Sprint(d.Spec)
	}
	return strings.TrimSpace(string(bts))
}

// IsYAML reports whether path has a YAML extension.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return true
	}
	return false
}

// Load reads the documentation at path. YAML files are parsed and validated,
// anything else is read as trimmed UTF-8 text.
func Load(log zerolog.Logger, path string) (Documentation, error) {
	bts, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Error().Str("path", path).Msg("documentation file not found")
		return Documentation{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return Documentation{}, fmt.Errorf("read %s: %w", path, err)
	}

	if !IsYAML(path) {
		if !utf8.Valid(bts) {
			log.Error().Str("path", path).Msg("documentation is not valid UTF-8")
			return Documentation{}, fmt.Errorf("%w: %s is not valid UTF-8", ErrParse, path)
		}
		log.Info().Str("path", path).Msg("loaded API documentation")
		return Documentation{Text: strings.TrimSpace(string(bts))}, nil
	}

	var parsed any
	if err := yaml.Unmarshal(bts, &parsed); err != nil {
		log.Error().Err(err).Str("path", path).Msg("YAML parsing error")
		return Documentation{}, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}
	spec, ok := parsed.(map[string]any)
	if !ok {
		log.Error().Str("path", path).Msg("invalid API documentation format, expected a mapping")
		return Documentation{}, fmt.Errorf("%w: %s: expected a mapping", ErrValidation, path)
	}
	if err := Validate(log, spec); err != nil {
		return Documentation{}, err
	}

	log.Info().
		Str("path", path).
		Int("endpoints", len(spec[KeyEndpoints].([]any))).
		Msg("loaded API documentation")
	return Documentation{Spec: spec}, nil
}
