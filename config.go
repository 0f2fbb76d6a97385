package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/adrg/xdg"
	"github.com/agentgen/agentgen/internal/bedrock"
	"github.com/agentgen/agentgen/internal/google"
	"github.com/agentgen/agentgen/internal/logging"
	"github.com/agentgen/agentgen/internal/output"
	"github.com/agentgen/agentgen/internal/prompt"
	"github.com/caarlos0/env/v9"
	"gopkg.in/yaml.v3"
)

var help = map[string]string{
	"provider":       "LLM provider to use (GEMINI, AWS_BEDROCK).",
	"model":          "Gemini model to use.",
	"api-key":        "Gemini API key.",
	"bedrock-model":  "AWS Bedrock model id.",
	"region":         "AWS region of the Bedrock runtime.",
	"max-tokens":     "Maximum number of tokens requested from Bedrock.",
	"description":    "Free-text description of the agent to generate.",
	"language":       "Language of the generated agent.",
	"ext":            "Extension of the generated agent file.",
	"output-dir":     "Directory where generated agents are written.",
	"timeout":        "Maximum duration of the generation, 0 waits forever.",
	"log-file":       "Rotating log file, empty disables file logging.",
	"log-level":      "Log level (trace, debug, info, warn, error).",
	"settings":       "Open settings in your $EDITOR.",
	"reset-settings": "Backup your old settings file and reset everything to the defaults.",
	"version":        "Show version and exit.",
	"help":           "Show help and exit.",
}

// Provider names.
const (
	providerGemini  = "GEMINI"
	providerBedrock = "AWS_BEDROCK"
)

// Config holds the main configuration and is mapped to the YAML settings file.
type Config struct {
	Provider       string        `yaml:"provider" env:"LLM_PROVIDER"`
	GeminiModel    string        `yaml:"gemini-model" env:"GEMINI_MODEL"`
	GoogleAPIKey   string        `yaml:"google-api-key" env:"GOOGLE_API_KEY"`
	BedrockModelID string        `yaml:"bedrock-model-id" env:"AWS_BEDROCK_MODEL_ID"`
	AWSRegion      string        `yaml:"aws-region" env:"AWS_REGION"`
	MaxTokens      int           `yaml:"max-tokens" env:"MAX_TOKENS"`
	Language       string        `yaml:"language" env:"AGENT_LANGUAGE"`
	Ext            string        `yaml:"ext" env:"AGENT_EXT"`
	OutputDir      string        `yaml:"output-dir" env:"OUTPUT_DIR"`
	LogFile        string        `yaml:"log-file" env:"LOG_FILE"`
	LogLevel       string        `yaml:"log-level" env:"LOG_LEVEL"`
	Timeout        time.Duration `yaml:"timeout" env:"TIMEOUT"`

	Description   string
	DocPath       string
	SettingsPath  string
	Settings      bool
	ResetSettings bool
	ShowHelp      bool
	Version       bool
}

func ensureConfig() (Config, error) {
	sp, err := xdg.ConfigFile(filepath.Join("agentgen", "agentgen.yml"))
	if err != nil {
		return Config{}, agentgenError{err, "Could not find settings path."}
	}
	return loadConfig(sp)
}

// loadConfig reads the settings file at sp, creating it from the template
// when missing, and applies the environment on top of it.
func loadConfig(sp string) (Config, error) {
	var c Config
	c.SettingsPath = sp

	dir := filepath.Dir(sp)
	if dirErr := os.MkdirAll(dir, 0o700); dirErr != nil { //nolint:mnd
		return c, agentgenError{dirErr, "Could not create settings directory."}
	}

	if err := writeConfigFile(sp); err != nil {
		return c, err
	}
	content, err := os.ReadFile(sp)
	if err != nil {
		return c, agentgenError{err, "Could not read settings file."}
	}
	if err := yaml.Unmarshal(content, &c); err != nil {
		return c, agentgenError{err, "Could not parse settings file."}
	}

	if err := env.Parse(&c); err != nil {
		return c, agentgenError{err, "Could not parse environment into settings file."}
	}

	c.applyDefaults()
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Provider == "" {
		c.Provider = providerGemini
	}
	if c.GeminiModel == "" {
		c.GeminiModel = google.DefaultModel
	}
	if c.AWSRegion == "" {
		c.AWSRegion = bedrock.DefaultRegion
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = bedrock.DefaultMaxTokens
	}
	if c.Language == "" {
		c.Language = prompt.DefaultLanguage
	}
	if c.Ext == "" {
		c.Ext = output.DefaultExt
	}
	if c.OutputDir == "" {
		c.OutputDir = output.DefaultDir
	}
	if c.LogFile == "" {
		c.LogFile = logging.DefaultFile
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func writeConfigFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return createConfigFile(path)
	} else if err != nil {
		return agentgenError{err, "Could not stat path."}
	}
	return nil
}

func createConfigFile(path string) error {
	tmpl := template.Must(template.New("config").Parse(configTemplate))

	f, err := os.Create(path)
	if err != nil {
		return agentgenError{err, "Could not create configuration file."}
	}
	defer func() { _ = f.Close() }()

	m := struct {
		Help     map[string]string
		Defaults Config
	}{
		Help: help,
	}
	m.Defaults.applyDefaults()
	if err := tmpl.Execute(f, m); err != nil {
		return agentgenError{err, "Could not render template."}
	}
	return nil
}

func resetSettings(c Config) error {
	if _, err := os.Stat(c.SettingsPath); err == nil {
		backup := fmt.Sprintf("%s.%d.bak", c.SettingsPath, time.Now().Unix())
		if err := os.Rename(c.SettingsPath, backup); err != nil {
			return agentgenError{err, "Could not backup settings file."}
		}
	}
	return createConfigFile(c.SettingsPath)
}
