package doc

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Validate checks structured documentation and repairs what has a safe
// default: a missing endpoint list becomes empty and a missing method becomes
// GET. A missing url cannot be repaired.
func Validate(log zerolog.Logger, spec map[string]any) error {
	if spec == nil {
		log.Error().Msg("invalid API documentation format, expected a mapping")
		return fmt.Errorf("%w: expected a mapping", ErrValidation)
	}

	raw, ok := spec[KeyEndpoints]
	if !ok || raw == nil {
		log.Warn().Msg("missing 'endpoints' section in API documentation, using an empty list")
		spec[KeyEndpoints] = []any{}
		return nil
	}

	endpoints, ok := raw.([]any)
	if !ok {
		log.Error().Msg("'endpoints' must be a list")
		return fmt.Errorf("%w: %q must be a list", ErrValidation, KeyEndpoints)
	}

	for i, item := range endpoints {
		endpoint, ok := item.(map[string]any)
		if !ok {
			log.Error().Int("endpoint", i).Msg("endpoint must be a mapping")
			return fmt.Errorf("%w: endpoint %d must be a mapping", ErrValidation, i)
		}
		if _, ok := endpoint[KeyMethod]; !ok {
			log.Warn().Int("endpoint", i).Msg("missing 'method' in endpoint, defaulting to GET")
			endpoint[KeyMethod] = DefaultMethod
		}
		url, ok := endpoint[KeyURL].(string)
		if !ok || url == "" {
			log.Error().Int("endpoint", i).Msg("missing 'url' in endpoint")
			return fmt.Errorf("%w: endpoint %d must have a %q", ErrValidation, i, KeyURL)
		}
	}
	return nil
}
