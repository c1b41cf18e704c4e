package serverutils

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// RevocationChecker reports whether a token id was signed out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Claims is what the auth service puts into access tokens.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid token")

type JwtAuth struct {
	secret  []byte
	revoked RevocationChecker
}

func NewJwtAuth(secret string, revoked RevocationChecker) *JwtAuth {
	return &JwtAuth{secret: []byte(secret), revoked: revoked}
}

// Parse validates signature, expiry and revocation.
func (a *JwtAuth) Parse(ctx context.Context, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if a.revoked != nil && claims.ID != "" {
		revoked, err := a.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrInvalidToken
		}
	}
	return claims, nil
}

func bearer(ctx *fiber.Ctx) (string, bool) {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return "", false
	}
	return authHeader[7:], true
}

// Required rejects requests without a valid bearer token.
func (a *JwtAuth) Required(ctx *fiber.Ctx) error {
	tokenStr, ok := bearer(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
	}

	claims, err := a.Parse(ctx.UserContext(), tokenStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
	}

	setLocals(ctx, tokenStr, claims)
	return ctx.Next()
}

// Optional attaches the user when a valid token is present and never rejects.
func (a *JwtAuth) Optional(ctx *fiber.Ctx) error {
	if tokenStr, ok := bearer(ctx); ok {
		if claims, err := a.Parse(ctx.UserContext(), tokenStr); err == nil {
			setLocals(ctx, tokenStr, claims)
		}
	}
	return ctx.Next()
}

func setLocals(ctx *fiber.Ctx, tokenStr string, claims *Claims) {
	ctx.Locals("user_id", claims.UserID)
	ctx.Locals("email", claims.Email)
	ctx.Locals("claims", claims)
	ctx.Locals("token", tokenStr)
}

// CurrentClaims returns the claims set by Required or Optional, or nil.
func CurrentClaims(ctx *fiber.Ctx) *Claims {
	claims, _ := ctx.Locals("claims").(*Claims)
	return claims
}
