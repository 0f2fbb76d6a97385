// Package google implements [backend.Backend] for Google Gemini.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/agentgen/agentgen/internal/backend"
	"github.com/rs/zerolog"
)

var _ backend.Backend = &Client{}

const (
	provider = "gemini"

	// DefaultBaseURL is the Gemini REST API root.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-2.0-flash"

	apiKeyHeader = "x-goog-api-key"
)

// Config represents the configuration for the Google API client.
type Config struct {
	BaseURL    string
	Model      string
	APIKey     string
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// DefaultConfig returns the default configuration for the Google API client.
func DefaultConfig(model, apiKey string) Config {
	if model == "" {
		model = DefaultModel
	}
	return Config{
		BaseURL:    DefaultBaseURL,
		Model:      model,
		APIKey:     apiKey,
		HTTPClient: &http.Client{},
		Logger:     zerolog.Nop(),
	}
}

// Part is a datatype containing media that is part of a multi-part Content message.
type Part struct {
	Text string `json:"text,omitempty"`
}

// Content is the base structured datatype containing multi-part content of a message.
type Content struct {
	Parts []Part `json:"parts,omitempty"`
	Role  string `json:"role,omitempty"`
}

// GenerationConfig are the options for model generation and outputs. Not all parameters are configurable for every model.
type GenerationConfig struct {
	CandidateCount  uint `json:"candidateCount,omitempty"`
	MaxOutputTokens uint `json:"maxOutputTokens,omitempty"`
}

// MessageCompletionRequest represents the valid parameters and value options for the request.
type MessageCompletionRequest struct {
	Contents         []Content        `json:"contents,omitempty"`
	GenerationConfig GenerationConfig `json:"generationConfig,omitempty"`
}

// Candidate represents a response candidate generated from the model.
type Candidate struct {
	Content      Content `json:"content,omitempty"`
	FinishReason string  `json:"finishReason,omitempty"`
	Index        uint    `json:"index,omitempty"`
}

// CompletionMessageResponse represents a response to a Google completion message.
type CompletionMessageResponse struct {
	Candidates []Candidate `json:"candidates,omitempty"`
}

// Text joins the text parts of the first candidate.
func (r CompletionMessageResponse) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// APIError is the error body returned by the Google API.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("%d %s: %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// Client is a client for the Google API.
type Client struct {
	config Config
	log    zerolog.Logger

	requestBuilder RequestBuilder
}

// New creates a new Client and checks the API key against the configured
// model, so that a missing or invalid key fails here rather than on the
// first generation.
func New(ctx context.Context, config Config) (*Client, error) {
	if config.APIKey == "" {
		config.Logger.Error().Msg("missing Gemini API key")
		return nil, backend.NewInitError(provider, "missing API key", nil)
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{}
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}

	c := &Client{
		config:         config,
		log:            config.Logger,
		requestBuilder: NewRequestBuilder(),
	}
	if err := c.handshake(ctx); err != nil {
		c.log.Error().Err(err).Msg("failed to initialize Gemini client")
		return nil, backend.NewInitError(provider, "handshake failed", err)
	}
	c.log.Info().Str("model", config.Model).Msg("initialized Gemini backend")
	return c, nil
}

func (c *Client) modelURL() string {
	return strings.TrimSuffix(c.config.BaseURL, "/") + "/models/" + c.config.Model
}

func (c *Client) handshake(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, c.modelURL())
	if err != nil {
		return err
	}
	resp, err := c.config.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("get model: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if isFailureStatusCode(resp) {
		return c.handleErrorResp(resp)
	}
	return nil
}

// Generate implements backend.Backend.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	c.log.Debug().Str("prompt", prompt).Msg("sending prompt to Gemini")

	body := MessageCompletionRequest{
		Contents: []Content{{
			Role:  "user",
			Parts: []Part{{Text: prompt}},
		}},
		GenerationConfig: GenerationConfig{
			CandidateCount: 1,
		},
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.modelURL()+":generateContent", withBody(body))
	if err != nil {
		return "", backend.NewGenerationError(provider, "could not build request", err)
	}

	resp, err := c.config.HTTPClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Msg("error during Gemini API call")
		return "", backend.NewGenerationError(provider, "request failed", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if isFailureStatusCode(resp) {
		apiErr := c.handleErrorResp(resp)
		c.log.Error().Err(apiErr).Int("status", resp.StatusCode).Msg("error during Gemini API call")
		gerr := backend.NewGenerationError(provider, "request failed", apiErr)
		gerr.StatusCode = resp.StatusCode
		return "", gerr
	}

	var out CompletionMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", backend.NewGenerationError(provider, "could not decode response", err)
	}

	text := strings.TrimSpace(out.Text())
	if text == "" {
		c.log.Error().Msg("no generated text found in Gemini response")
		return "", backend.NewGenerationError(provider, "response carried no text", nil)
	}
	c.log.Info().Msg("generated code using Gemini")
	return text, nil
}

func (c *Client) newRequest(ctx context.Context, method, url string, setters ...requestOption) (*http.Request, error) {
	// Default Options
	args := &requestOptions{
		header: make(http.Header),
	}
	for _, setter := range setters {
		setter(args)
	}
	args.header.Set(apiKeyHeader, c.config.APIKey)
	if args.body != nil {
		args.header.Set("content-type", "application/json")
	}
	req, err := c.requestBuilder.Build(ctx, method, url, args.body, args.header)
	if err != nil {
		return new(http.Request), err
	}
	return req, nil
}

func (c *Client) handleErrorResp(resp *http.Response) error {
	var errRes struct {
		Error *APIError `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errRes); err != nil || errRes.Error == nil {
		return &APIError{
			Code:    resp.StatusCode,
			Message: http.StatusText(resp.StatusCode),
		}
	}
	if errRes.Error.Code == 0 {
		errRes.Error.Code = resp.StatusCode
	}
	return errRes.Error
}
