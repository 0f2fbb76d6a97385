package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/agentgen/agentgen/internal/backend"
	"github.com/agentgen/agentgen/internal/doc"
)

// agentgenError is a wrapper around an error that adds additional context.
type agentgenError struct {
	err    error
	reason string
}

func (m agentgenError) Error() string {
	return m.err.Error()
}

func (m agentgenError) Reason() string {
	return m.reason
}

func (m agentgenError) Unwrap() error {
	return m.err
}

// reasonFor returns the user-facing reason of a pipeline failure.
func reasonFor(err error) string {
	switch {
	case errors.Is(err, doc.ErrNotFound):
		return "Could not find the API documentation."
	case errors.Is(err, doc.ErrParse):
		return "Could not parse the API documentation."
	case errors.Is(err, doc.ErrValidation):
		return "The API documentation is invalid."
	case errors.Is(err, backend.ErrNotImplemented):
		return "Unknown LLM provider."
	case errors.Is(err, backend.ErrInit):
		return "Could not initialize the LLM provider."
	case errors.Is(err, backend.ErrGeneration):
		return "The LLM provider did not generate any code."
	default:
		return "Agent generation failed."
	}
}

func handleError(err error) {
	format := "\n%s\n\n"

	var args []any
	var ferr flagParseError
	var merr agentgenError
	if errors.As(err, &ferr) {
		format += "%s\n\n"
		args = []any{
			fmt.Sprintf(
				"Check out %s %s",
				stderrStyles().InlineCode.Render("agentgen -h"),
				stderrStyles().Comment.Render("for help."),
			),
			fmt.Sprintf(
				ferr.ReasonFormat(),
				stderrStyles().InlineCode.Render(ferr.Flag()),
			),
		}
	} else if errors.As(err, &merr) {
		args = []any{
			stderrStyles().ErrPadding.Render(stderrStyles().ErrorHeader.String(), merr.reason),
		}

		if merr.err != nil {
			format += "%s\n\n"
			args = append(args, stderrStyles().ErrPadding.Render(stderrStyles().ErrorDetails.Render(err.Error())))
		}
	} else {
		args = []any{
			stderrStyles().ErrPadding.Render(stderrStyles().ErrorDetails.Render(err.Error())),
		}
	}

	fmt.Fprintf(os.Stderr, format, args...)
}
