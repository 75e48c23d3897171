package narrative

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/artlens/curator/pkg/curator/debug"
)

const DefaultOpenAiModel = openai.GPT4o

type OpenAiConfig struct {
	ApiKey    string
	BaseUrl   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

type OpenAiGenerator struct {
	model     string
	maxTokens int
	client    *openai.Client
}

var _ Generator = (*OpenAiGenerator)(nil)

func NewOpenAiGenerator(config OpenAiConfig) *OpenAiGenerator {
	model := config.Model
	if model == "" {
		model = DefaultOpenAiModel
	}
	maxTokens := config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultGenerateTimeout
	}

	clientConfig := openai.DefaultConfig(config.ApiKey)
	if config.BaseUrl != "" {
		clientConfig.BaseURL = config.BaseUrl
	}
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAiGenerator{
		model:     model,
		maxTokens: maxTokens,
		client:    openai.NewClientWithConfig(clientConfig),
	}
}

func (g *OpenAiGenerator) Generate(ctx context.Context, prompt string) Result {
	req := openai.ChatCompletionRequest{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		slog.Error("failed to call narrative api", "error", err)
		return errorResult(err)
	}

	if debug.IsDebugLogResponses() {
		slog.Info("narrative api response", "response", fmt.Sprintf("%+v", resp))
	}

	for _, choice := range resp.Choices {
		if choice.Message.Content != "" {
			return textResult(choice.Message.Content)
		}
	}

	return emptyResult(fmt.Sprintf("%+v", resp))
}
