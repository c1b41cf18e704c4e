package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"chameleon-be/internal/dto"
	"chameleon-be/internal/pkg/logger"
	"chameleon-be/internal/repository/contract"
	"chameleon-be/internal/tracer"
	"chameleon-be/pkg/events"
	"chameleon-be/pkg/llm"
	"chameleon-be/pkg/writing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	msgMissingFields = "Missing required fields: text, tone, purpose, genre, structure"
	msgLegacyMissing = "Missing required fields: text, tone"
	msgEmptyText     = "Text cannot be empty"
	statusSuccess    = "success"
)

// Default chat parameters for a short continuation.
const (
	DefaultMaxTokens       = 30
	DefaultTemperature     = 0.6
	DefaultPresencePenalty = 0.1
)

// StopSequences end generation at the first line or sentence break.
var StopSequences = []string{"\n", ".", "!", "?"}

type AutocompleteConfig struct {
	// ProviderName is used in the configuration error message.
	ProviderName    string
	Credential      string
	MaxTokens       int
	Temperature     float64
	PresencePenalty float64
}

type IAutocompleteService interface {
	// Ready reports a ConfigError when no model credential is configured.
	Ready() error
	Complete(ctx context.Context, req *dto.AutocompleteRequest) (*dto.AutocompleteResponse, error)
	CompleteLegacy(ctx context.Context, req *dto.LegacyAutocompleteRequest) (*dto.LegacyAutocompleteResponse, error)
	// Suggest runs validated parameters through cache and model.
	Suggest(ctx context.Context, text string, p writing.Params) (string, error)
}

type autocompleteService struct {
	provider  llm.LLMProvider
	cache     contract.SuggestionCache
	publisher IPublisherService
	cfg       AutocompleteConfig
	logger    logger.ILogger
}

func NewAutocompleteService(
	provider llm.LLMProvider,
	cache contract.SuggestionCache,
	publisher IPublisherService,
	cfg AutocompleteConfig,
	log logger.ILogger,
) IAutocompleteService {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	return &autocompleteService{
		provider:  provider,
		cache:     cache,
		publisher: publisher,
		cfg:       cfg,
		logger:    log,
	}
}

func (s *autocompleteService) Ready() error {
	if strings.TrimSpace(s.cfg.Credential) == "" || s.provider == nil {
		return &ConfigError{Message: providerLabel(s.cfg.ProviderName) + " API key not configured"}
	}
	return nil
}

func providerLabel(name string) string {
	switch strings.ToLower(name) {
	case "anthropic":
		return "Anthropic"
	case "huggingface":
		return "HuggingFace"
	case "ollama":
		return "Ollama"
	default:
		return "OpenAI"
	}
}

func present(s *string) bool {
	return s != nil && *s != ""
}

func presentTrimmed(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// validate applies the checks in order: presence, empty text, then each dimension.
func validate(req *dto.AutocompleteRequest) (string, writing.Params, error) {
	if !present(req.Text) || !presentTrimmed(req.Tone) || !presentTrimmed(req.Purpose) ||
		!presentTrimmed(req.Genre) || !presentTrimmed(req.Structure) {
		return "", writing.Params{}, &InputError{Message: msgMissingFields}
	}

	text := strings.TrimSpace(*req.Text)
	if text == "" {
		return "", writing.Params{}, &InputError{Message: msgEmptyText}
	}

	p, err := writing.NormalizeParams(*req.Tone, *req.Purpose, *req.Genre, *req.Structure, deref(req.Context))
	if err != nil {
		return "", writing.Params{}, &InputError{Message: err.Error()}
	}
	return text, p, nil
}

func (s *autocompleteService) Complete(ctx context.Context, req *dto.AutocompleteRequest) (*dto.AutocompleteResponse, error) {
	if err := s.Ready(); err != nil {
		return nil, err
	}

	text, p, err := validate(req)
	if err != nil {
		return nil, err
	}

	suggestion, err := s.Suggest(ctx, text, p)
	if err != nil {
		return nil, err
	}

	return &dto.AutocompleteResponse{
		Suggestion: suggestion,
		Tone:       p.Tone,
		Purpose:    p.Purpose,
		Genre:      p.Genre,
		Structure:  p.Structure,
		Status:     statusSuccess,
	}, nil
}

// CompleteLegacy serves the earlier {text, tone[, purpose]} request shape with
// defaults for the dimensions it did not know about.
func (s *autocompleteService) CompleteLegacy(ctx context.Context, req *dto.LegacyAutocompleteRequest) (*dto.LegacyAutocompleteResponse, error) {
	if err := s.Ready(); err != nil {
		return nil, err
	}
	if !present(req.Text) || !presentTrimmed(req.Tone) {
		return nil, &InputError{Message: msgLegacyMissing}
	}

	purpose := writing.DefaultPurpose
	if presentTrimmed(req.Purpose) {
		purpose = *req.Purpose
	}

	full := &dto.AutocompleteRequest{
		Text:      req.Text,
		Tone:      req.Tone,
		Purpose:   &purpose,
		Genre:     ptr(writing.DefaultGenre),
		Structure: ptr(writing.DefaultStructure),
	}
	text, p, err := validate(full)
	if err != nil {
		return nil, err
	}

	suggestion, err := s.Suggest(ctx, text, p)
	if err != nil {
		return nil, err
	}

	res := &dto.LegacyAutocompleteResponse{
		Suggestion: suggestion,
		Tone:       p.Tone,
		Status:     statusSuccess,
	}
	if req.Purpose != nil {
		res.Purpose = p.Purpose
	}
	return res, nil
}

func ptr(s string) *string { return &s }

func (s *autocompleteService) Suggest(ctx context.Context, text string, p writing.Params) (string, error) {
	if err := s.Ready(); err != nil {
		return "", err
	}

	ctx, span := tracer.Tracer("autocomplete").Start(ctx, "AutocompleteService.Suggest")
	defer span.End()
	span.SetAttributes(
		attribute.String("writing.tone", p.Tone),
		attribute.String("writing.purpose", p.Purpose),
		attribute.String("writing.genre", p.Genre),
		attribute.String("writing.structure", p.Structure),
		attribute.Int("writing.text_length", len(text)),
	)

	started := time.Now()
	key := writing.CacheKey(text, p)

	if cached, ok := s.cache.Get(ctx, key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		s.publish(p, true, started)
		return cached, nil
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	prompt := writing.BuildPrompt(text, p)
	out, err := s.provider.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: prompt.System},
		{Role: llm.RoleUser, Content: prompt.User},
	},
		llm.WithMaxTokens(s.cfg.MaxTokens),
		llm.WithTemperature(s.cfg.Temperature),
		llm.WithStop(StopSequences...),
		llm.WithPresencePenalty(s.cfg.PresencePenalty),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "llm call failed")
		s.logger.Error("AutocompleteService", "Language model call failed", map[string]interface{}{
			"error":    err.Error(),
			"provider": s.cfg.ProviderName,
		})
		return "", &UpstreamError{Err: err}
	}

	suggestion := strings.TrimSpace(out)
	s.cache.Set(ctx, key, suggestion)
	s.cache.DeleteExpired(ctx)

	s.logger.Debug("AutocompleteService", "Suggestion generated", map[string]interface{}{
		"tone":       p.Tone,
		"latency_ms": time.Since(started).Milliseconds(),
	})
	s.publish(p, false, started)
	return suggestion, nil
}

func (s *autocompleteService) publish(p writing.Params, cached bool, started time.Time) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishAnalytics(events.NewSuggestionEvent(p.Tone, p.Purpose, p.Genre, p.Structure, cached, time.Since(started)))
}

// IsInputError reports whether err should be answered with 400.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
