package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"chameleon-be/pkg/llm"
)

const (
	defaultTimeout     = 120 * time.Second
	defaultTemperature = 0.7
	chatPath           = "/api/chat"
)

// OllamaProvider talks to a local Ollama server. It needs no credential.
type OllamaProvider struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

var _ llm.LLMProvider = &OllamaProvider{}

func NewOllamaProvider(baseURL, modelName string, timeout time.Duration) *OllamaProvider {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &OllamaProvider{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		ModelName: modelName,
		Client:    &http.Client{Timeout: timeout},
	}
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ollamaOptions maps to Ollama's model parameters; num_predict caps generated tokens.
type ollamaOptions struct {
	Temperature     float64  `json:"temperature,omitempty"`
	NumPredict      int      `json:"num_predict,omitempty"`
	Stop            []string `json:"stop,omitempty"`
	PresencePenalty float64  `json:"presence_penalty,omitempty"`
}

type ollamaChatResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
	Error   string        `json:"error,omitempty"`
}

func toOllamaMessages(history []llm.Message) []ollamaMessage {
	out := make([]ollamaMessage, len(history))
	for i, m := range history {
		role := m.Role
		if role == "model" {
			role = llm.RoleAssistant
		}
		out[i] = ollamaMessage{Role: role, Content: m.Content}
	}
	return out
}

func (o *OllamaProvider) buildRequest(history []llm.Message, opts llm.Options) ollamaChatRequest {
	model := o.ModelName
	if opts.Model != "" {
		model = opts.Model
	}
	return ollamaChatRequest{
		Model:    model,
		Messages: toOllamaMessages(history),
		Options: &ollamaOptions{
			Temperature:     opts.Temperature,
			NumPredict:      opts.MaxTokens,
			Stop:            opts.Stop,
			PresencePenalty: opts.PresencePenalty,
		},
	}
}

func (o *OllamaProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	payload, err := json.Marshal(o.buildRequest(history, llm.Apply(llm.Options{Temperature: defaultTemperature}, opts...)))
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.BaseURL+chatPath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var out ollamaChatResponse
	decodeErr := json.Unmarshal(body, &out)

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(body))
		if decodeErr == nil && out.Error != "" {
			msg = out.Error
		}
		return "", fmt.Errorf("ollama error: status %d: %s", resp.StatusCode, msg)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("unmarshal response: %w", decodeErr)
	}
	if out.Error != "" {
		return "", fmt.Errorf("ollama error: %s", out.Error)
	}
	return out.Message.Content, nil
}

func (o *OllamaProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return o.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}
