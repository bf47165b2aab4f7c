package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const anthropicReply = `{
  "id": "msg_1",
  "type": "message",
  "role": "assistant",
  "model": "claude-sonnet-4-20250514",
  "content": [{"type": "text", "text": "Good morning! "}, {"type": "text", "text": "What's first?"}],
  "stop_reason": "end_turn",
  "usage": {"input_tokens": 40, "output_tokens": 12}
}`

func TestAnthropicClient_Complete_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(600), body["max_tokens"])
		assert.Equal(t, 0.6, body["temperature"])
		system, ok := body["system"].([]any)
		require.True(t, ok)
		assert.Equal(t, "plan well", system[0].(map[string]any)["text"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(anthropicReply))
	}))
	defer srv.Close()

	c := NewAnthropicClient("test-key", "", "", srv.URL+"/")
	got, err := c.Complete(context.Background(), Request{
		System:      "plan well",
		Prompt:      "plan my day",
		MaxTokens:   600,
		Temperature: 0.6,
	})
	require.NoError(t, err)
	assert.Equal(t, "Good morning! What's first?", got.Text)
	assert.Equal(t, 52, got.TokensUsed)
}

func TestAnthropicClient_Complete_AuthTokenUsesBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer oauth-token", r.Header.Get("Authorization"))
		assert.Equal(t, "oauth-2025-04-20", r.Header.Get("anthropic-beta"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(anthropicReply))
	}))
	defer srv.Close()

	c := NewAnthropicClient("", "oauth-token", "", srv.URL+"/")
	_, err := c.Complete(context.Background(), Request{Prompt: "hi", MaxTokens: 200})
	require.NoError(t, err)
}

func TestAnthropicClient_Complete_RateLimitIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer srv.Close()

	c := NewAnthropicClient("test-key", "", "", srv.URL+"/")
	_, err := c.Complete(context.Background(), Request{Prompt: "hi"})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestAnthropicClient_Complete_NoText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg_2","type":"message","role":"assistant","model":"m","content":[],"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":0}}`))
	}))
	defer srv.Close()

	c := NewAnthropicClient("test-key", "", "", srv.URL+"/")
	_, err := c.Complete(context.Background(), Request{Prompt: "hi"})
	assert.True(t, errors.Is(err, ErrEmptyResponse), "got %v", err)
}
