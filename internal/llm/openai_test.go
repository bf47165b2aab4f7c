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

const openAIReply = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-3.5-turbo",
  "choices": [{"index": 0, "message": {"role": "assistant", "content": "**Next Task:** Write proposal"}, "finish_reason": "stop"}],
  "usage": {"prompt_tokens": 120, "completion_tokens": 30, "total_tokens": 150}
}`

func newOpenAITestServer(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenAIClient("test-key", "", srv.URL+"/v1/")
}

func TestOpenAIClient_Complete_Success(t *testing.T) {
	c := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-3.5-turbo", body["model"])
		assert.Equal(t, float64(400), body["max_tokens"])
		assert.Equal(t, 0.7, body["temperature"])

		msgs, ok := body["messages"].([]any)
		require.True(t, ok)
		require.Len(t, msgs, 2)
		assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
		assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
		assert.Equal(t, "what next?", msgs[1].(map[string]any)["content"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(openAIReply))
	})

	got, err := c.Complete(context.Background(), Request{
		System:      "be brief",
		Prompt:      "what next?",
		MaxTokens:   400,
		Temperature: 0.7,
	})
	require.NoError(t, err)
	assert.Equal(t, "**Next Task:** Write proposal", got.Text)
	assert.Equal(t, 150, got.TokensUsed)
	assert.Equal(t, "gpt-3.5-turbo", got.Model)
}

func TestOpenAIClient_Complete_NoSystemMessage(t *testing.T) {
	c := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		msgs := body["messages"].([]any)
		assert.Len(t, msgs, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(openAIReply))
	})

	_, err := c.Complete(context.Background(), Request{Prompt: "good morning", MaxTokens: 200, Temperature: 0.8})
	require.NoError(t, err)
}

func TestOpenAIClient_Complete_ErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	})

	_, err := c.Complete(context.Background(), Request{Prompt: "x"})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestOpenAIClient_Complete_EmptyChoices(t *testing.T) {
	c := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c","object":"chat.completion","created":1,"model":"m","choices":[],"usage":{"total_tokens":3}}`))
	})

	_, err := c.Complete(context.Background(), Request{Prompt: "x"})
	assert.True(t, errors.Is(err, ErrEmptyResponse), "got %v", err)
}
