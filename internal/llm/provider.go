package llm

import "fmt"

type ProviderConfig struct {
	Provider  string
	APIKey    string
	AuthToken string // OAuth token (Bearer auth)
	Model     string
	BaseURL   string
}

// NewClient builds the client for cfg.Provider. It returns ErrNoCredentials
// when a hosted provider has no key, so callers can run in fallback mode.
func NewClient(cfg ProviderConfig) (Client, error) {
	switch cfg.Provider {
	case "anthropic":
		if cfg.APIKey == "" && cfg.AuthToken == "" {
			return nil, fmt.Errorf("anthropic: %w", ErrNoCredentials)
		}
		return NewAnthropicClient(cfg.APIKey, cfg.AuthToken, cfg.Model, cfg.BaseURL), nil
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai: %w", ErrNoCredentials)
		}
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	case "ollama":
		if cfg.Model == "" {
			cfg.Model = "llama3.1"
		}
		return NewOpenAIClient("ollama", cfg.Model, cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}
