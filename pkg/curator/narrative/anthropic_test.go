package narrative_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artlens/curator/pkg/curator/narrative"
)

func newAnthropicGenerator(t *testing.T, handler http.HandlerFunc) *narrative.AnthropicGenerator {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return narrative.NewAnthropicGenerator(narrative.AnthropicConfig{
		ApiKey:  "claude-key",
		BaseUrl: server.URL,
	})
}

func TestAnthropicGenerator_Generate(t *testing.T) {
	t.Run("returns first text part", func(t *testing.T) {
		generator := newAnthropicGenerator(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/messages", r.URL.Path)
			assert.Equal(t, "claude-key", r.Header.Get("x-api-key"))
			assert.Equal(t, narrative.AnthropicVersion, r.Header.Get("anthropic-version"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body struct {
				Model     string `json:"model"`
				MaxTokens int    `json:"max_tokens"`
				Messages  []struct {
					Role    string `json:"role"`
					Content string `json:"content"`
				} `json:"messages"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, narrative.DefaultAnthropicModel, body.Model)
			assert.Equal(t, 1000, body.MaxTokens)
			require.Len(t, body.Messages, 1)
			assert.Equal(t, "user", body.Messages[0].Role)
			assert.Equal(t, "the prompt", body.Messages[0].Content)

			fmt.Fprint(w, `{"content":[{"type":"tool_use","id":"x"},{"type":"text","text":"Rated 8/10."},{"type":"text","text":"second"}]}`)
		})

		result := generator.Generate(context.Background(), "the prompt")
		assert.False(t, result.Diagnostic)
		assert.Equal(t, "Rated 8/10.", result.Text)
	})

	t.Run("no text part is a soft failure", func(t *testing.T) {
		raw := `{"content":[{"type":"tool_use","id":"toolu_1"}],"stop_reason":"tool_use"}`
		generator := newAnthropicGenerator(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, raw)
		})

		result := generator.Generate(context.Background(), "prompt")
		assert.True(t, result.Diagnostic)
		assert.NotEmpty(t, result.Text)
		assert.Contains(t, result.Text, raw)
	})

	t.Run("empty content list", func(t *testing.T) {
		generator := newAnthropicGenerator(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"content":[]}`)
		})

		result := generator.Generate(context.Background(), "prompt")
		assert.True(t, result.Diagnostic)
		assert.Contains(t, result.Text, "no narrative was returned")
	})

	t.Run("unparseable body", func(t *testing.T) {
		generator := newAnthropicGenerator(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `not json`)
		})

		result := generator.Generate(context.Background(), "prompt")
		assert.True(t, result.Diagnostic)
		assert.Contains(t, result.Text, "Error generating narrative:")
	})

	t.Run("non success status", func(t *testing.T) {
		generator := newAnthropicGenerator(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"type":"error","error":{"type":"rate_limit_error"}}`)
		})

		result := generator.Generate(context.Background(), "prompt")
		assert.True(t, result.Diagnostic)
		assert.Contains(t, result.Text, "http 429")
		assert.Contains(t, result.Text, "rate_limit_error")
	})

	t.Run("transport failure", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()

		generator := narrative.NewAnthropicGenerator(narrative.AnthropicConfig{ApiKey: "k", BaseUrl: server.URL})
		result := generator.Generate(context.Background(), "prompt")
		assert.True(t, result.Diagnostic)
		assert.Contains(t, result.Text, "Error generating narrative:")
	})
}
