package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"chameleon-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatSendsCompletionParameters(t *testing.T) {
	var payload map[string]any
	calls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &payload))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gpt-3.5-turbo",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "  and then some  "}}]
		}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL})

	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "sys"},
		{Role: llm.RoleUser, Content: "user"},
	},
		llm.WithMaxTokens(30),
		llm.WithTemperature(0.6),
		llm.WithStop("\n", ".", "!", "?"),
		llm.WithPresencePenalty(0.1),
	)
	require.NoError(t, err)
	assert.Equal(t, "  and then some  ", out)
	assert.Equal(t, 1, calls)

	assert.Equal(t, "gpt-3.5-turbo", payload["model"])
	assert.EqualValues(t, 30, payload["max_tokens"])
	assert.InDelta(t, 0.6, payload["temperature"], 1e-9)
	assert.InDelta(t, 0.1, payload["presence_penalty"], 1e-9)
	assert.Equal(t, []any{"\n", ".", "!", "?"}, payload["stop"])

	messages, ok := payload["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "user", messages[1].(map[string]any)["role"])
}

func TestChatNoChoicesReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider(Config{APIKey: "k", BaseURL: server.URL})
	out, err := p.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestChatUpstreamErrorIsNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider(Config{APIKey: "k", BaseURL: server.URL})
	_, err := p.Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai chat completion failed")
	assert.Equal(t, 1, calls)
}
