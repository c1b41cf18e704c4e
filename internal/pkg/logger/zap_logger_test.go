package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromZap(zap.New(core))

	l.Info("AutocompleteService", "cache hit", map[string]interface{}{"key_len": 12})
	l.Warn("Editor", "suggestion failed", nil)
	l.Error("AutocompleteService", "upstream failed", map[string]interface{}{"error": "boom"})

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, "cache hit", entries[0].Message)
	assert.Equal(t, "AutocompleteService", entries[0].ContextMap()["module"])
	assert.Equal(t, map[string]interface{}{"key_len": 12}, entries[0].ContextMap()["details"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, map[string]interface{}{}, entries[1].ContextMap()["details"])

	assert.Equal(t, "boom", entries[2].ContextMap()["error_ref"])
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Debug("x", "y", nil)
	assert.NoError(t, l.Sync())
}
