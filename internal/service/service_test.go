package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"chameleon-be/internal/dto"
	"chameleon-be/internal/pkg/logger"
	"chameleon-be/internal/repository/memory"
	"chameleon-be/pkg/editor"
	"chameleon-be/pkg/events"
	"chameleon-be/pkg/llm"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	mu      sync.Mutex
	calls   [][]llm.Message
	options []llm.Options
	reply   string
	err     error
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, history)
	f.options = append(f.options, llm.Apply(llm.Options{}, options...))
	return f.reply, f.err
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type recordingPublisher struct {
	mu        sync.Mutex
	session   []events.Event
	analytics []events.Event
}

func (p *recordingPublisher) PublishSession(ctx context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.session = append(p.session, e)
	return nil
}

func (p *recordingPublisher) PublishAnalytics(e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.analytics = append(p.analytics, e)
}

func str(s string) *string { return &s }

func newAutocomplete(provider llm.LLMProvider, ttl time.Duration, pub IPublisherService) IAutocompleteService {
	return NewAutocompleteService(provider, memory.NewSuggestionCache(ttl), pub, AutocompleteConfig{
		ProviderName:    "openai",
		Credential:      "sk-test",
		Temperature:     DefaultTemperature,
		PresencePenalty: DefaultPresencePenalty,
	}, logger.NewNopLogger())
}

func validRequest() *dto.AutocompleteRequest {
	return &dto.AutocompleteRequest{
		Text:      str("  I wanted to follow up  "),
		Tone:      str(" Casual "),
		Purpose:   str("informative"),
		Genre:     str("EMAIL"),
		Structure: str("list"),
	}
}

func TestAutocompleteValidation(t *testing.T) {
	svc := newAutocomplete(&fakeProvider{reply: "ok"}, time.Minute, nil)

	tests := []struct {
		name   string
		mutate func(r *dto.AutocompleteRequest)
		want   string
	}{
		{"Missing text", func(r *dto.AutocompleteRequest) { r.Text = nil }, "Missing required fields: text, tone, purpose, genre, structure"},
		{"Empty tone", func(r *dto.AutocompleteRequest) { r.Tone = str("") }, "Missing required fields: text, tone, purpose, genre, structure"},
		{"Blank structure", func(r *dto.AutocompleteRequest) { r.Structure = str("   ") }, "Missing required fields: text, tone, purpose, genre, structure"},
		{"Whitespace text", func(r *dto.AutocompleteRequest) { r.Text = str("   ") }, "Text cannot be empty"},
		{"Bad tone", func(r *dto.AutocompleteRequest) { r.Tone = str("angry") }, "Invalid tone. Must be one of: professional, casual, creative, concise, witty, instructional, urgent, reflective"},
		{"Bad purpose", func(r *dto.AutocompleteRequest) { r.Purpose = str("sarcastic") }, "Invalid purpose. Must be one of: persuasive, informative, descriptive, flattering, narrative"},
		{"Bad genre", func(r *dto.AutocompleteRequest) { r.Genre = str("poem") }, "Invalid genre. Must be one of: email, essay, social post, report, story, research, sales, education"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := svc.Complete(context.Background(), req)
			require.Error(t, err)
			assert.True(t, IsInputError(err))
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestAutocompleteMissingCredential(t *testing.T) {
	svc := NewAutocompleteService(&fakeProvider{}, memory.NewSuggestionCache(time.Minute), nil,
		AutocompleteConfig{ProviderName: "openai"}, logger.NewNopLogger())

	_, err := svc.Complete(context.Background(), &dto.AutocompleteRequest{})
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "OpenAI API key not configured", cfgErr.Message)
}

func TestAutocompleteCallsModelAndCaches(t *testing.T) {
	provider := &fakeProvider{reply: "  and see how things are going. "}
	pub := &recordingPublisher{}
	svc := newAutocomplete(provider, time.Minute, pub)

	res, err := svc.Complete(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, &dto.AutocompleteResponse{
		Suggestion: "and see how things are going.",
		Tone:       "casual",
		Purpose:    "informative",
		Genre:      "email",
		Structure:  "list",
		Status:     "success",
	}, res)

	require.Len(t, provider.calls, 1)
	msgs := provider.calls[0]
	require.Len(t, msgs, 2)
	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "casual, friendly conversational tone")
	assert.Equal(t, `Continue this text: "I wanted to follow up"`, msgs[1].Content)

	opts := provider.options[0]
	assert.Equal(t, 30, opts.MaxTokens)
	assert.Equal(t, 0.6, opts.Temperature)
	assert.Equal(t, 0.1, opts.PresencePenalty)
	assert.Equal(t, []string{"\n", ".", "!", "?"}, opts.Stop)

	again, err := svc.Complete(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, res.Suggestion, again.Suggestion)
	assert.Equal(t, 1, provider.callCount(), "identical request served from cache")

	require.Len(t, pub.analytics, 2)
	assert.Equal(t, false, pub.analytics[0].Payload()["cached"])
	assert.Equal(t, true, pub.analytics[1].Payload()["cached"])
}

func TestAutocompleteCacheExpires(t *testing.T) {
	provider := &fakeProvider{reply: "fresh"}
	svc := newAutocomplete(provider, 20*time.Millisecond, nil)

	_, err := svc.Complete(context.Background(), validRequest())
	require.NoError(t, err)
	time.Sleep(40 * time.Millisecond)

	_, err = svc.Complete(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, provider.callCount())
}

func TestAutocompleteUpstreamFailureNotCached(t *testing.T) {
	provider := &fakeProvider{err: errors.New("connection reset")}
	svc := newAutocomplete(provider, time.Minute, nil)

	_, err := svc.Complete(context.Background(), validRequest())
	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.EqualError(t, upErr.Err, "connection reset")

	provider.err = nil
	provider.reply = "works now"
	res, err := svc.Complete(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "works now", res.Suggestion)
	assert.Equal(t, 2, provider.callCount())
}

func TestAutocompleteLegacy(t *testing.T) {
	provider := &fakeProvider{reply: "Sure thing"}
	svc := newAutocomplete(provider, time.Minute, nil)

	res, err := svc.CompleteLegacy(context.Background(), &dto.LegacyAutocompleteRequest{Text: str("Hello"), Tone: str("Witty")})
	require.NoError(t, err)
	assert.Equal(t, &dto.LegacyAutocompleteResponse{Suggestion: "Sure thing", Tone: "witty", Status: "success"}, res)
	assert.Contains(t, provider.calls[0][0].Content, "in the tone of an email")

	_, err = svc.CompleteLegacy(context.Background(), &dto.LegacyAutocompleteRequest{Text: str("Hello")})
	assert.EqualError(t, err, "Missing required fields: text, tone")
}

func TestEditorSuggester(t *testing.T) {
	provider := &fakeProvider{reply: "next words"}
	s := NewEditorSuggester(newAutocomplete(provider, time.Minute, nil))

	out, err := s.Suggest(context.Background(), editorRequest("Dear team,", "professional"))
	require.NoError(t, err)
	assert.Equal(t, "next words", out)

	_, err = s.Suggest(context.Background(), editorRequest("Dear team,", "grumpy"))
	assert.True(t, IsInputError(err))
}

func TestDocumentCopyRequiresUser(t *testing.T) {
	svc := NewDocumentService(logger.NewNopLogger())

	_, err := svc.Copy(context.Background(), nil, &dto.CopyDocumentRequest{Content: "secret"})
	assert.ErrorIs(t, err, ErrAuthRequired)

	res, err := svc.Copy(context.Background(), &dto.UserDTO{Id: "u"}, &dto.CopyDocumentRequest{Content: "plain words"})
	require.NoError(t, err)
	assert.Equal(t, &dto.CopyDocumentResponse{Text: "plain words", Format: "plain"}, res)
}

type eventSink struct {
	ch chan events.Event
}

func (s *eventSink) HandleSessionEvent(ctx context.Context, evt events.Event) {
	s.ch <- evt
}

func TestSessionEventsFlowThroughBus(t *testing.T) {
	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer bus.Close()

	sink := &eventSink{ch: make(chan events.Event, 1)}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, NewConsumerService(bus, SessionEventsTopic, sink, logger.NewNopLogger()).Consume(ctx))

	pub := NewPublisherService(bus, nil, logger.NewNopLogger())
	require.NoError(t, pub.PublishSession(ctx, events.NewSessionEvent(events.SessionSignedOut, "u-1", "writer@example.com")))

	select {
	case evt := <-sink.ch:
		assert.Equal(t, events.SessionSignedOut, evt.EventType())
		assert.Equal(t, "u-1", events.StringField(evt, "user_id"))
	case <-time.After(time.Second):
		t.Fatal("session event not delivered")
	}
}

func editorRequest(text, tone string) editor.Request {
	return editor.Request{Text: text, Tone: tone, Purpose: "informative", Genre: "email", Structure: "chronological"}
}
