package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultAnthropicModel     = "claude-sonnet-4-20250514"
	defaultAnthropicMaxTokens = 1024
)

type AnthropicClient struct {
	client anthropic.Client
	model  string
}

// NewAnthropicClient authenticates with an API key (X-Api-Key) or, when
// authToken is set, an OAuth bearer token.
func NewAnthropicClient(apiKey, authToken, model, baseURL string) *AnthropicClient {
	opts := []option.RequestOption{
		option.WithMaxRetries(0),
		option.WithHeader("User-Agent", "timely/1.0"),
	}
	if authToken != "" {
		opts = append(opts,
			option.WithAuthToken(authToken),
			option.WithHeader("anthropic-beta", "oauth-2025-04-20"),
		)
	} else if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = defaultAnthropicModel
	}
	return &AnthropicClient{client: anthropic.NewClient(opts...), model: model}
}

func (c *AnthropicClient) Complete(ctx context.Context, req Request) (*Completion, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   int64(maxTokens),
		Temperature: anthropic.Float(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic chat: %w", err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return nil, fmt.Errorf("anthropic chat: %w", ErrEmptyResponse)
	}

	return &Completion{
		Text:       text.String(),
		TokensUsed: int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		Model:      string(msg.Model),
	}, nil
}
