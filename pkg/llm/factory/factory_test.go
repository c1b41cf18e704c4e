package factory

import (
	"testing"

	"chameleon-be/pkg/llm/anthropic"
	"chameleon-be/pkg/llm/ollama"
	"chameleon-be/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider(ProviderConfig{Provider: "openai", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &openai.OpenAIProvider{}, p)

	p, err = NewLLMProvider(ProviderConfig{Provider: "anthropic", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &anthropic.AnthropicProvider{}, p)

	p, err = NewLLMProvider(ProviderConfig{Provider: "huggingface", APIKey: "hf_k", Model: "meta-llama/Llama-3.1-8B-Instruct"})
	require.NoError(t, err)
	assert.IsType(t, &openai.OpenAIProvider{}, p)

	p, err = NewLLMProvider(ProviderConfig{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	require.IsType(t, &ollama.OllamaProvider{}, p)
	assert.Equal(t, "http://localhost:11434", p.(*ollama.OllamaProvider).BaseURL)

	_, err = NewLLMProvider(ProviderConfig{Provider: "gemini"})
	assert.EqualError(t, err, "unsupported LLM provider: gemini")
}
