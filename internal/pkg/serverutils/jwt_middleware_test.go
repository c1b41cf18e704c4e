package serverutils

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type revokedSet map[string]bool

func (r revokedSet) IsRevoked(_ context.Context, jti string) (bool, error) {
	return r[jti], nil
}

func sign(t *testing.T, secret, jti string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "user-1",
		Email:  "writer@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestJwtAuth(t *testing.T) {
	auth := NewJwtAuth("secret", revokedSet{"gone": true})

	app := fiber.New()
	app.Get("/required", auth.Required, func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(string))
	})
	app.Get("/optional", auth.Optional, func(c *fiber.Ctx) error {
		if claims := CurrentClaims(c); claims != nil {
			return c.SendString(claims.Email)
		}
		return c.SendString("anonymous")
	})

	valid := sign(t, "secret", "live", time.Now().Add(time.Hour))

	tests := []struct {
		name     string
		path     string
		header   string
		wantCode int
		wantBody string
	}{
		{"Missing token", "/required", "", 401, ""},
		{"Wrong secret", "/required", "Bearer " + sign(t, "other", "x", time.Now().Add(time.Hour)), 401, ""},
		{"Expired", "/required", "Bearer " + sign(t, "secret", "x", time.Now().Add(-time.Minute)), 401, ""},
		{"Revoked", "/required", "Bearer " + sign(t, "secret", "gone", time.Now().Add(time.Hour)), 401, ""},
		{"Valid", "/required", "Bearer " + valid, 200, "user-1"},
		{"Optional anonymous", "/optional", "", 200, "anonymous"},
		{"Optional with bad token", "/optional", "Bearer nope", 200, "anonymous"},
		{"Optional signed in", "/optional", "Bearer " + valid, 200, "writer@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
			if tt.wantBody != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, tt.wantBody, string(body))
			}
		})
	}
}

func TestErrorHandlerMiddleware(t *testing.T) {
	type loginRequest struct {
		Email string `validate:"required,email"`
	}

	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return ValidateRequest(loginRequest{Email: "nope"})
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return io.ErrUnexpectedEOF
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/invalid", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"success":false,"code":400,"message":"email must be a valid email","data":null}`, string(body))

	resp, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}
