// Package prompt renders the code generation prompt.
package prompt

import (
	"strings"
	"text/template"

	"github.com/rs/zerolog"
)

// Defaults applied to empty [Options] fields.
const (
	DefaultDescription = "N/A"
	DefaultLanguage    = "Python"
)

const promptTemplate = `You are an AI developer. Generate production-level {{ .Language }} code for an agent that interacts with an API.

API Documentation:
{{ .Documentation }}

Agent Description:
{{ .Description }}

The generated agent should:
- Utilize the API as documented.
- Include proper error handling.
- Use classes and methods with clean, maintainable code.
- Not use placeholder examples such as '(example@example.com) # Replace with your app's info'; values given in the documentation must be used as they are.
- Be complete and runnable directly through its main entry point.
- Be ready for testing.

Generate the complete {{ .Language }} code.
Respond with {{ .Language }} code only, which can be run directly, with no explanations.`

var tmpl = template.Must(template.New("prompt").Parse(promptTemplate))

// Options are the inputs of the prompt.
type Options struct {
	Documentation string
	Description   string
	Language      string
}

// Build renders the prompt. The documentation is embedded as is.
func Build(log zerolog.Logger, opts Options) string {
	if strings.TrimSpace(opts.Description) == "" {
		opts.Description = DefaultDescription
	}
	if strings.TrimSpace(opts.Language) == "" {
		opts.Language = DefaultLanguage
	}

	var sb strings.Builder
	// the template is static and only takes strings, so it cannot fail.
	_ = tmpl.Execute(&sb, opts)
	prompt := sb.String()
	log.Debug().Str("prompt", prompt).Msg("built prompt")
	return prompt
}
