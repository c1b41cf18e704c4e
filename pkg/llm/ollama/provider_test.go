package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chameleon-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaChat(t *testing.T) {
	var got ollamaChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:   "llama3",
			Message: ollamaMessage{Role: "assistant", Content: "next words"},
			Done:    true,
		})
	}))
	defer server.Close()

	p := NewOllamaProvider(server.URL, "llama3", 0)
	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "sys"},
		{Role: "model", Content: "earlier"},
		{Role: llm.RoleUser, Content: "hello"},
	}, llm.WithMaxTokens(30), llm.WithStop("."), llm.WithPresencePenalty(0.1))
	require.NoError(t, err)
	assert.Equal(t, "next words", out)

	assert.Equal(t, "llama3", got.Model)
	assert.False(t, got.Stream)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, "assistant", got.Messages[1].Role)
	require.NotNil(t, got.Options)
	assert.Equal(t, 30, got.Options.NumPredict)
	assert.Equal(t, []string{"."}, got.Options.Stop)
	assert.InDelta(t, 0.1, got.Options.PresencePenalty, 1e-9)
}

func TestOllamaChatErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	p := NewOllamaProvider(server.URL, "missing", 0)
	_, err := p.Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestOllamaChatErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"model \"missing\" not found, try pulling it first"}`))
	}))
	defer server.Close()

	p := NewOllamaProvider(server.URL+"/", "missing", 0)
	_, err := p.Chat(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.EqualError(t, err, `ollama error: status 400: model "missing" not found, try pulling it first`)
}
