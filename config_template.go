package main

const configTemplate = `# {{ index .Help "provider" }}
provider: {{ .Defaults.Provider }}
# {{ index .Help "model" }}
gemini-model: {{ .Defaults.GeminiModel }}
# {{ index .Help "api-key" }} Prefer the GOOGLE_API_KEY environment variable.
# google-api-key:
# {{ index .Help "bedrock-model" }}
# bedrock-model-id:
# {{ index .Help "region" }}
aws-region: {{ .Defaults.AWSRegion }}
# {{ index .Help "max-tokens" }}
max-tokens: {{ .Defaults.MaxTokens }}
# {{ index .Help "language" }}
language: {{ .Defaults.Language }}
# {{ index .Help "ext" }}
ext: {{ .Defaults.Ext }}
# {{ index .Help "output-dir" }}
output-dir: {{ .Defaults.OutputDir }}
# {{ index .Help "log-file" }}
log-file: {{ .Defaults.LogFile }}
# {{ index .Help "log-level" }}
log-level: {{ .Defaults.LogLevel }}
# {{ index .Help "timeout" }}
timeout: 0s
`
