package openai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"chameleon-be/pkg/llm"

	sdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const defaultModel = "gpt-3.5-turbo"

// Config holds configuration for the OpenAI chat client.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string        // Optional (tests, compatible gateways)
	Timeout    time.Duration // HTTP timeout
	HTTPClient *http.Client  // Optional (tests)
}

// OpenAIProvider implements llm.LLMProvider over the chat completions API.
type OpenAIProvider struct {
	ModelName string
	client    sdk.Client
}

var _ llm.LLMProvider = &OpenAIProvider{}

func NewOpenAIProvider(cfg Config) *OpenAIProvider {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	// Upstream failures surface to the caller as-is; nothing is retried.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIProvider{
		ModelName: cfg.Model,
		client:    sdk.NewClient(opts...),
	}
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Apply(llm.Options{Temperature: 0.7}, opts...)

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	messages := make([]sdk.ChatCompletionMessageParamUnion, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case llm.RoleSystem:
			messages = append(messages, sdk.SystemMessage(msg.Content))
		case llm.RoleAssistant, "model":
			messages = append(messages, sdk.AssistantMessage(msg.Content))
		default:
			messages = append(messages, sdk.UserMessage(msg.Content))
		}
	}

	params := sdk.ChatCompletionNewParams{
		Model:       sdk.ChatModel(model),
		Messages:    messages,
		Temperature: sdk.Float(options.Temperature),
	}
	if options.MaxTokens > 0 {
		params.MaxTokens = sdk.Int(int64(options.MaxTokens))
	}
	if options.PresencePenalty != 0 {
		params.PresencePenalty = sdk.Float(options.PresencePenalty)
	}
	if len(options.Stop) > 0 {
		params.Stop = sdk.ChatCompletionNewParamsStopUnion{OfStringArray: options.Stop}
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}
