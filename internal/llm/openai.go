package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const defaultOpenAIModel = "gpt-3.5-turbo"

type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient talks to OpenAI, or to any OpenAI-compatible endpoint
// (Ollama) when baseURL is set. SDK retries are disabled: a failed call
// goes straight to the caller's fallback.
func NewOpenAIClient(apiKey, model, baseURL string) *OpenAIClient {
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIClient{client: client, model: model}
}

func (c *OpenAIClient) Complete(ctx context.Context, req Request) (*Completion, error) {
	var msgs []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		msgs = append(msgs, openai.SystemMessage(req.System))
	}
	msgs = append(msgs, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    msgs,
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai chat: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai chat: %w", ErrEmptyResponse)
	}
	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("openai chat: %w", ErrEmptyResponse)
	}

	return &Completion{
		Text:       text,
		TokensUsed: int(resp.Usage.TotalTokens),
		Model:      resp.Model,
	}, nil
}
