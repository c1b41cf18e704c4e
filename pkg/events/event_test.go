package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	evt := NewSessionEvent(SessionSignedOut, "u-1", "writer@example.com")

	raw, err := Marshal(evt)
	require.NoError(t, err)

	got, err := Unmarshal(raw)
	require.NoError(t, err)
	assert.Equal(t, SessionSignedOut, got.EventType())
	assert.Equal(t, "u-1", StringField(got, "user_id"))
	assert.WithinDuration(t, evt.Timestamp(), got.Timestamp(), time.Millisecond)
}

func TestSuggestionEventOmitsText(t *testing.T) {
	evt := NewSuggestionEvent("casual", "informative", "email", "list", true, 1500*time.Millisecond)

	assert.Equal(t, SuggestionGenerated, evt.EventType())
	assert.Equal(t, int64(1500), evt.Payload()["latency_ms"])
	assert.NotContains(t, evt.Payload(), "text")
}
