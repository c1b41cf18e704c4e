package events

import (
	"encoding/json"
	"time"
)

const (
	SessionSignedIn     = "SESSION_SIGNED_IN"
	SessionSignedOut    = "SESSION_SIGNED_OUT"
	SuggestionGenerated = "SUGGESTION_GENERATED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SESSION_SIGNED_IN").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now().UTC()}
}

// NewSessionEvent is published on sign-in and sign-out; user_id drives websocket routing.
func NewSessionEvent(eventType, userID, email string) BaseEvent {
	return New(eventType, map[string]interface{}{
		"user_id": userID,
		"email":   email,
	})
}

// NewSuggestionEvent carries request metadata only, never the user's text.
func NewSuggestionEvent(tone, purpose, genre, structure string, cached bool, latency time.Duration) BaseEvent {
	return New(SuggestionGenerated, map[string]interface{}{
		"tone":       tone,
		"purpose":    purpose,
		"genre":      genre,
		"structure":  structure,
		"cached":     cached,
		"latency_ms": latency.Milliseconds(),
	})
}

// Envelope is the wire form shared by the in-process bus and NATS.
type Envelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func Marshal(e Event) ([]byte, error) {
	return json.Marshal(Envelope{Type: e.EventType(), Data: e.Payload(), OccurredAt: e.Timestamp()})
}

func Unmarshal(raw []byte) (BaseEvent, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return BaseEvent{}, err
	}
	return BaseEvent{Type: env.Type, Data: env.Data, OccurredAt: env.OccurredAt}, nil
}

// StringField reads a string value from the payload.
func StringField(e Event, key string) string {
	s, _ := e.Payload()[key].(string)
	return s
}
