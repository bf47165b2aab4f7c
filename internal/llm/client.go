package llm

import "context"

// Request is a single-shot chat completion: one optional system message,
// one user prompt and the generation parameters.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Completion is the provider's reply.
type Completion struct {
	Text       string
	TokensUsed int
	Model      string
}

type Client interface {
	Complete(ctx context.Context, req Request) (*Completion, error)
}
