package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Request is one continuation request issued by a session.
type Request struct {
	Text      string `json:"text"`
	Tone      string `json:"tone"`
	Purpose   string `json:"purpose"`
	Genre     string `json:"genre"`
	Structure string `json:"structure"`
	Context   string `json:"context,omitempty"`
}

// Suggester produces a continuation for a request.
type Suggester interface {
	Suggest(ctx context.Context, req Request) (string, error)
}

type SuggesterFunc func(ctx context.Context, req Request) (string, error)

func (f SuggesterFunc) Suggest(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// HTTPSuggester calls the autocomplete endpoint over HTTP.
type HTTPSuggester struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewHTTPSuggester(baseURL string, timeout time.Duration) *HTTPSuggester {
	return &HTTPSuggester{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

type autocompleteReply struct {
	Suggestion string `json:"suggestion"`
	Error      string `json:"error"`
	Details    string `json:"details"`
}

func (h *HTTPSuggester) Suggest(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.BaseURL+"/api/autocomplete", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if h.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+h.Token)
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("autocomplete request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var reply autocompleteReply
	decodeErr := json.Unmarshal(raw, &reply)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && reply.Error != "" {
			return "", fmt.Errorf("HTTP error! status: %d: %s", resp.StatusCode, reply.Error)
		}
		return "", fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode response: %w", decodeErr)
	}
	return reply.Suggestion, nil
}
