package server

import (
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chameleon-be/internal/bootstrap"
	"chameleon-be/internal/config"
	"chameleon-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "test",
			LogFilePath:        filepath.Join(dir, "app.log"),
			WsLogFilePath:      filepath.Join(dir, "ws.log"),
			CorsAllowedOrigins: "http://localhost:5173",
		},
		Auth:  config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour},
		Ai:    config.AIConfig{LLMProvider: "openai", MaxTokens: 30, Timeout: time.Second},
		Cache: config.CacheConfig{Backend: "memory", TTL: time.Minute},
		Editor: config.EditorConfig{
			Debounce:      500 * time.Millisecond,
			MinContext:    5,
			ContextWindow: 150,
		},
	}
}

func TestRoutes(t *testing.T) {
	cfg := testConfig(t)
	container := bootstrap.NewContainer(cfg, logger.NewNopLogger())
	t.Cleanup(container.Close)
	app := New(cfg, container).GetApp()

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode int
		wantBody string
	}{
		{"health", fiber.MethodGet, "/api/health", "", fiber.StatusOK, `"status":"healthy"`},
		{"unknown route", fiber.MethodGet, "/api/nope", "", fiber.StatusNotFound, `{"error":"Endpoint not found"}`},
		{"missing credential", fiber.MethodPost, "/api/autocomplete", `{}`, fiber.StatusInternalServerError, `OpenAI API key not configured`},
		{"editor without upgrade", fiber.MethodGet, "/api/editor/ws", "", fiber.StatusUpgradeRequired, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			res, err := app.Test(req, -1)
			require.NoError(t, err)
			defer res.Body.Close()

			assert.Equal(t, tt.wantCode, res.StatusCode)
			raw, _ := io.ReadAll(res.Body)
			assert.Contains(t, string(raw), tt.wantBody)
		})
	}
}
