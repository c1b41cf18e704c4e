package anthropic

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"chameleon-be/pkg/llm"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultModel     = "claude-3-5-haiku-latest"
	defaultMaxTokens = 256
)

// Config holds configuration for the Anthropic messages client.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// AnthropicProvider implements llm.LLMProvider over the Messages API.
// Presence penalty has no Anthropic equivalent and is ignored.
type AnthropicProvider struct {
	ModelName string
	client    sdk.Client
}

var _ llm.LLMProvider = &AnthropicProvider{}

func NewAnthropicProvider(cfg Config) *AnthropicProvider {
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

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &AnthropicProvider{
		ModelName: cfg.Model,
		client:    sdk.NewClient(opts...),
	}
}

func (p *AnthropicProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Apply(llm.Options{Temperature: 0.7, MaxTokens: defaultMaxTokens}, opts...)

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	system, conversation := llm.SplitSystem(history)

	messages := make([]sdk.MessageParam, 0, len(conversation))
	for _, msg := range conversation {
		if msg.Role == llm.RoleAssistant {
			messages = append(messages, sdk.NewAssistantMessage(sdk.NewTextBlock(msg.Content)))
			continue
		}
		messages = append(messages, sdk.NewUserMessage(sdk.NewTextBlock(msg.Content)))
	}

	params := sdk.MessageNewParams{
		Model:       sdk.Model(model),
		MaxTokens:   int64(options.MaxTokens),
		Messages:    messages,
		Temperature: sdk.Float(options.Temperature),
	}
	if system != "" {
		params.System = []sdk.TextBlockParam{{Text: system}}
	}
	// The Messages API rejects whitespace-only stop sequences.
	for _, s := range options.Stop {
		if len(s) > 0 && s != "\n" {
			params.StopSequences = append(params.StopSequences, s)
		}
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic completion failed: %w", err)
	}

	var content string
	for _, block := range msg.Content {
		if variant, ok := block.AsAny().(sdk.TextBlock); ok {
			content += variant.Text
		}
	}
	return content, nil
}

func (p *AnthropicProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}
