// Package backend defines the code generation backend abstraction shared by
// the provider implementations.
package backend

import (
	"context"
	"errors"
)

// Sentinel errors matched with [errors.Is].
var (
	// ErrGeneration is returned when a backend call fails or yields no text.
	ErrGeneration = errors.New("generation failed")
	// ErrInit is returned when a backend cannot be constructed.
	ErrInit = errors.New("backend initialization failed")
	// ErrNotImplemented is returned for unknown providers.
	ErrNotImplemented = errors.New("provider not implemented")
)

// Backend generates text from a prompt.
type Backend interface {
	// Generate sends the prompt and returns the non-empty generated text.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Error is a provider error carrying the failure kind and the underlying
// provider error, if any.
type Error struct {
	Kind        error
	Provider    string
	Message     string
	StatusCode  int
	ProviderErr error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Provider + ": " + e.Message
	if e.ProviderErr != nil {
		msg += ": " + e.ProviderErr.Error()
	}
	return msg
}

// Is matches the error kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the underlying provider error.
func (e *Error) Unwrap() error {
	return e.ProviderErr
}

// NewGenerationError creates an error matching [ErrGeneration].
func NewGenerationError(provider, message string, providerErr error) *Error {
	return &Error{
		Kind:        ErrGeneration,
		Provider:    provider,
		Message:     message,
		ProviderErr: providerErr,
	}
}

// NewInitError creates an error matching [ErrInit].
func NewInitError(provider, message string, providerErr error) *Error {
	return &Error{
		Kind:        ErrInit,
		Provider:    provider,
		Message:     message,
		ProviderErr: providerErr,
	}
}

// StatusCode extracts the HTTP status code from a backend error, or 0.
func StatusCode(err error) int {
	var berr *Error
	if errors.As(err, &berr) {
		return berr.StatusCode
	}
	return 0
}
