package factory

import (
	"fmt"
	"time"

	"chameleon-be/pkg/llm"
	"chameleon-be/pkg/llm/anthropic"
	"chameleon-be/pkg/llm/ollama"
	"chameleon-be/pkg/llm/openai"
)

const HuggingFaceRouterURL = "https://router.huggingface.co/v1"

// ProviderConfig selects and configures one LLM backend.
type ProviderConfig struct {
	Provider string // "openai", "anthropic", "ollama", "huggingface"
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

func NewLLMProvider(cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "openai", "":
		return openai.NewOpenAIProvider(openai.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		}), nil
	case "anthropic":
		return anthropic.NewAnthropicProvider(anthropic.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		}), nil
	case "huggingface":
		// The Hugging Face router speaks the OpenAI chat completions protocol.
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = HuggingFaceRouterURL
		}
		return openai.NewOpenAIProvider(openai.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: baseURL,
			Timeout: cfg.Timeout,
		}), nil
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
