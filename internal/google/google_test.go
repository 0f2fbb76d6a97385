package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agentgen/agentgen/internal/backend"
	"github.com/stretchr/testify/require"
)

const testKey = "test-key"

// fakeGemini serves the model metadata and generateContent endpoints.
func fakeGemini(t *testing.T, generate http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /models/gemini-2.0-flash", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(apiKeyHeader) != testKey {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid.","status":"INVALID_ARGUMENT"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"name":"models/gemini-2.0-flash"}`))
	})
	mux.HandleFunc("POST /models/gemini-2.0-flash:generateContent", generate)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, srv *httptest.Server, key string) (*Client, error) {
	t.Helper()
	cfg := DefaultConfig("", key)
	cfg.BaseURL = srv.URL
	cfg.HTTPClient = srv.Client()
	return New(context.Background(), cfg)
}

func TestNew(t *testing.T) {
	srv := fakeGemini(t, func(http.ResponseWriter, *http.Request) {})

	t.Run("missing key", func(t *testing.T) {
		_, err := newTestClient(t, srv, "")
		require.ErrorIs(t, err, backend.ErrInit)
	})

	t.Run("invalid key", func(t *testing.T) {
		_, err := newTestClient(t, srv, "bad")
		require.ErrorIs(t, err, backend.ErrInit)
		require.ErrorContains(t, err, "API key not valid.")
	})

	t.Run("unreachable", func(t *testing.T) {
		cfg := DefaultConfig("", testKey)
		cfg.BaseURL = "http://127.0.0.1:1"
		_, err := New(context.Background(), cfg)
		require.ErrorIs(t, err, backend.ErrInit)
	})

	t.Run("valid key", func(t *testing.T) {
		c, err := newTestClient(t, srv, testKey)
		require.NoError(t, err)
		require.NotNil(t, c)
	})
}

func TestGenerate(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		srv := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, testKey, r.Header.Get(apiKeyHeader))
			var req MessageCompletionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Len(t, req.Contents, 1)
			require.Equal(t, "write code", req.Contents[0].Parts[0].Text)
			_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"` +
				"```python\\nprint('ok')\\n```" + `"},{"text":"\n"}]}}]}`))
		})
		c, err := newTestClient(t, srv, testKey)
		require.NoError(t, err)

		out, err := c.Generate(context.Background(), "write code")
		require.NoError(t, err)
		require.Equal(t, "```python\nprint('ok')\n```", out)
	})

	t.Run("no text", func(t *testing.T) {
		srv := fakeGemini(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  "}]}}]}`))
		})
		c, err := newTestClient(t, srv, testKey)
		require.NoError(t, err)

		_, err = c.Generate(context.Background(), "write code")
		require.ErrorIs(t, err, backend.ErrGeneration)
	})

	t.Run("no candidates", func(t *testing.T) {
		srv := fakeGemini(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		})
		c, err := newTestClient(t, srv, testKey)
		require.NoError(t, err)

		_, err = c.Generate(context.Background(), "write code")
		require.ErrorIs(t, err, backend.ErrGeneration)
	})

	t.Run("api error", func(t *testing.T) {
		srv := fakeGemini(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Resource exhausted.","status":"RESOURCE_EXHAUSTED"}}`))
		})
		c, err := newTestClient(t, srv, testKey)
		require.NoError(t, err)

		_, err = c.Generate(context.Background(), "write code")
		require.ErrorIs(t, err, backend.ErrGeneration)
		require.Equal(t, http.StatusTooManyRequests, backend.StatusCode(err))
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "RESOURCE_EXHAUSTED", apiErr.Status)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := fakeGemini(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		})
		c, err := newTestClient(t, srv, testKey)
		require.NoError(t, err)

		_, err = c.Generate(context.Background(), "write code")
		require.ErrorIs(t, err, backend.ErrGeneration)
	})
}
