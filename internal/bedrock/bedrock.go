// Package bedrock implements [backend.Backend] for AWS Bedrock.
package bedrock

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/agentgen/agentgen/internal/backend"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/rs/zerolog"
)

var _ backend.Backend = &Client{}

const (
	provider = "bedrock"

	// DefaultRegion is used when no region is configured.
	DefaultRegion = "us-east-1"
	// DefaultMaxTokens bounds the generated text.
	DefaultMaxTokens = 1024

	contentType = "application/json"
)

// InvokeModelAPI is the subset of the bedrock runtime client used here.
type InvokeModelAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// Config represents the configuration for the Bedrock client.
type Config struct {
	ModelID   string
	Region    string
	MaxTokens int
	Logger    zerolog.Logger
}

// Request is the invocation payload.
type Request struct {
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"maxTokens"`
}

// Response is the decoded invocation result.
type Response struct {
	GeneratedText string `json:"generated_text"`
}

// Client is a Bedrock runtime client bound to one model.
type Client struct {
	api    InvokeModelAPI
	config Config
	log    zerolog.Logger
}

// New loads the AWS configuration for the region from the ambient
// credentials and creates the runtime client.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ModelID == "" {
		cfg.Logger.Error().Msg("missing Bedrock model id")
		return nil, backend.NewInitError(provider, "missing model id", nil)
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		cfg.Logger.Error().Err(err).Msg("failed to initialize AWS Bedrock client")
		return nil, backend.NewInitError(provider, "could not load AWS configuration", err)
	}

	cfg.Logger.Info().Str("region", cfg.Region).Msg("initialized AWS Bedrock backend")
	return NewWithAPI(bedrockruntime.NewFromConfig(awsCfg), cfg), nil
}

// NewWithAPI creates a Client around an existing runtime API.
func NewWithAPI(api InvokeModelAPI, cfg Config) *Client {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	return &Client{
		api:    api,
		config: cfg,
		log:    cfg.Logger,
	}
}

// Generate implements backend.Backend.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	c.log.Debug().Str("prompt", prompt).Msg("sending prompt to AWS Bedrock")

	body, err := json.Marshal(Request{
		Prompt:    prompt,
		MaxTokens: c.config.MaxTokens,
	})
	if err != nil {
		return "", backend.NewGenerationError(provider, "could not encode request", err)
	}

	out, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.config.ModelID),
		ContentType: aws.String(contentType),
		Accept:      aws.String(contentType),
		Body:        body,
	})
	if err != nil {
		c.log.Error().Err(err).Msg("error during AWS Bedrock API call")
		return "", backend.NewGenerationError(provider, "invoke model failed", err)
	}
	c.log.Debug().Bytes("body", out.Body).Msg("raw response from AWS Bedrock")

	var resp Response
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", backend.NewGenerationError(provider, "could not decode response", err)
	}

	text := strings.TrimSpace(resp.GeneratedText)
	if text == "" {
		c.log.Error().Msg("no generated text found in AWS Bedrock response")
		return "", backend.NewGenerationError(provider, "response carried no generated_text", nil)
	}
	c.log.Info().Msg("generated code using AWS Bedrock")
	return text, nil
}
