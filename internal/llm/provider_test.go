package llm

import (
	"errors"
	"testing"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ProviderConfig
		wantErr error
	}{
		{"openai with key", ProviderConfig{Provider: "openai", APIKey: "sk-1"}, nil},
		{"openai without key", ProviderConfig{Provider: "openai"}, ErrNoCredentials},
		{"anthropic with key", ProviderConfig{Provider: "anthropic", APIKey: "k"}, nil},
		{"anthropic with token", ProviderConfig{Provider: "anthropic", AuthToken: "t"}, nil},
		{"anthropic without credentials", ProviderConfig{Provider: "anthropic"}, ErrNoCredentials},
		{"ollama needs no key", ProviderConfig{Provider: "ollama", BaseURL: "http://localhost:11434/v1"}, nil},
		{"unknown provider", ProviderConfig{Provider: "bard"}, ErrUnknownProvider},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.cfg)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("NewClient() error = %v", err)
				}
				if c == nil {
					t.Fatal("NewClient() returned nil client")
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewClient() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
