package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/artlens/curator/pkg/curator/debug"
)

const (
	DefaultAnthropicModel  = "claude-3-opus-20240229"
	AnthropicVersion       = "2023-06-01"
	defaultMaxTokens       = 1000
	defaultGenerateTimeout = 60 * time.Second
	anthropicMessagesPath  = "/v1/messages"
	contentTypeText        = "text"
)

type AnthropicConfig struct {
	ApiKey    string
	BaseUrl   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

type AnthropicGenerator struct {
	apiKey     string
	url        string
	model      string
	maxTokens  int
	httpClient *http.Client
}

var _ Generator = (*AnthropicGenerator)(nil)

func NewAnthropicGenerator(config AnthropicConfig) *AnthropicGenerator {
	model := config.Model
	if model == "" {
		model = DefaultAnthropicModel
	}
	maxTokens := config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultGenerateTimeout
	}

	return &AnthropicGenerator{
		apiKey:     config.ApiKey,
		url:        strings.TrimRight(config.BaseUrl, "/") + anthropicMessagesPath,
		model:      model,
		maxTokens:  maxTokens,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string) Result {
	payload, err := json.Marshal(anthropicRequest{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return errorResult(fmt.Errorf("failed to encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return errorResult(fmt.Errorf("failed to create POST request: %w", err))
	}
	req.Header.Set("x-api-key", g.apiKey)
	req.Header.Set("anthropic-version", AnthropicVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		slog.Error("failed to call narrative api", "error", err)
		return errorResult(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorResult(fmt.Errorf("failed to read response body: %w", err))
	}

	if debug.IsDebugLogResponses() {
		slog.Info("narrative api response", "status", resp.StatusCode, "body", string(body))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("narrative api returned non-success status", "status", resp.StatusCode)
		return errorResult(fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		slog.Error("failed to parse narrative response", "error", err)
		return errorResult(err)
	}

	for _, part := range parsed.Content {
		if part.Type == contentTypeText {
			return textResult(part.Text)
		}
	}

	return emptyResult(string(body))
}
