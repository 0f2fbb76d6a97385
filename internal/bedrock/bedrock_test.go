package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/agentgen/agentgen/internal/backend"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	input *bedrockruntime.InvokeModelInput
	body  string
	err   error
}

func (f *fakeAPI) InvokeModel(_ context.Context, params *bedrockruntime.InvokeModelInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &bedrockruntime.InvokeModelOutput{Body: []byte(f.body)}, nil
}

func TestNew(t *testing.T) {
	t.Run("missing model id", func(t *testing.T) {
		_, err := New(context.Background(), Config{Logger: zerolog.Nop()})
		require.ErrorIs(t, err, backend.ErrInit)
	})
}

func TestGenerate(t *testing.T) {
	t.Run("payload", func(t *testing.T) {
		api := &fakeAPI{body: `{"generated_text":"print('ok')"}`}
		c := NewWithAPI(api, Config{ModelID: "my-model", Logger: zerolog.Nop()})

		out, err := c.Generate(context.Background(), "write code")
		require.NoError(t, err)
		require.Equal(t, "print('ok')", out)

		require.Equal(t, "my-model", aws.ToString(api.input.ModelId))
		require.Equal(t, "application/json", aws.ToString(api.input.ContentType))
		require.Equal(t, "application/json", aws.ToString(api.input.Accept))
		var req map[string]any
		require.NoError(t, json.Unmarshal(api.input.Body, &req))
		require.Equal(t, map[string]any{
			"prompt":    "write code",
			"maxTokens": float64(DefaultMaxTokens),
		}, req)
	})

	t.Run("custom max tokens", func(t *testing.T) {
		api := &fakeAPI{body: `{"generated_text":"x"}`}
		c := NewWithAPI(api, Config{Logger: zerolog.Nop(), ModelID: "m", MaxTokens: 2048})
		_, err := c.Generate(context.Background(), "p")
		require.NoError(t, err)
		require.JSONEq(t, `{"prompt":"p","maxTokens":2048}`, string(api.input.Body))
	})

	t.Run("missing generated_text", func(t *testing.T) {
		c := NewWithAPI(&fakeAPI{body: `{"completion":"print('ok')"}`}, Config{Logger: zerolog.Nop(), ModelID: "m"})
		_, err := c.Generate(context.Background(), "p")
		require.ErrorIs(t, err, backend.ErrGeneration)
	})

	t.Run("malformed body", func(t *testing.T) {
		c := NewWithAPI(&fakeAPI{body: `nope`}, Config{Logger: zerolog.Nop(), ModelID: "m"})
		_, err := c.Generate(context.Background(), "p")
		require.ErrorIs(t, err, backend.ErrGeneration)
	})

	t.Run("invoke error", func(t *testing.T) {
		original := errors.New("AccessDeniedException")
		c := NewWithAPI(&fakeAPI{err: original}, Config{Logger: zerolog.Nop(), ModelID: "m"})
		_, err := c.Generate(context.Background(), "p")
		require.ErrorIs(t, err, backend.ErrGeneration)
		require.ErrorIs(t, err, original)
	})
}
