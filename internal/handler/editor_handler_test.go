package handler

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"chameleon-be/internal/pkg/logger"
	"chameleon-be/internal/pkg/serverutils"
	"chameleon-be/internal/repository/memory"
	"chameleon-be/pkg/editor"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() *EditorHandler {
	suggester := editor.SuggesterFunc(func(ctx context.Context, req editor.Request) (string, error) {
		return "", nil
	})
	jwtAuth := serverutils.NewJwtAuth("test-secret", memory.NewTokenRepository())
	return NewEditorHandler(nil, suggester, editor.DefaultConfig(), jwtAuth, logger.NewNopLogger())
}

func sign(t *testing.T, secret string) string {
	t.Helper()
	claims := serverutils.Claims{
		UserID: "0b6e3c1a-6e27-5c0e-9d0e-6b4d3f2a1c00",
		Email:  "writer@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestServeWsRequiresUpgrade(t *testing.T) {
	app := fiber.New()
	newTestHandler().RegisterRoutes(app)

	res, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/editor/ws", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, res.StatusCode)
}

func TestResolveUser(t *testing.T) {
	h := newTestHandler()
	good := sign(t, "test-secret")
	bad := sign(t, "other-secret")

	tests := []struct {
		name      string
		query     string
		header    string
		wantEmail string
	}{
		{"anonymous", "", "", ""},
		{"query token", "?token=" + good, "", "writer@example.com"},
		{"bearer header", "", "Bearer " + good, "writer@example.com"},
		{"bad signature", "?token=" + bad, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			var got *editor.User
			app.Get("/ws", func(c *fiber.Ctx) error {
				got = h.resolveUser(c)
				return c.SendStatus(fiber.StatusNoContent)
			})

			req := httptest.NewRequest(fiber.MethodGet, "/ws"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			_, err := app.Test(req, -1)
			require.NoError(t, err)

			if tt.wantEmail == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantEmail, got.Email)
		})
	}
}

func TestAuthenticateForAuthFrames(t *testing.T) {
	h := newTestHandler()

	user, err := h.authenticate(context.Background(), sign(t, "test-secret"))
	require.NoError(t, err)
	assert.Equal(t, "0b6e3c1a-6e27-5c0e-9d0e-6b4d3f2a1c00", user.ID)
	assert.Equal(t, "writer@example.com", user.Email)

	_, err = h.authenticate(context.Background(), sign(t, "other-secret"))
	assert.Error(t, err)
}
