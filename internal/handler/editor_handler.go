package handler

import (
	"context"
	"strings"

	"chameleon-be/internal/pkg/logger"
	"chameleon-be/internal/pkg/serverutils"
	internalWS "chameleon-be/internal/websocket"
	"chameleon-be/pkg/editor"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// EditorHandler upgrades editor connections and gives each one its own session.
type EditorHandler struct {
	hub       *internalWS.Hub
	suggester editor.Suggester
	cfg       editor.Config
	jwtAuth   *serverutils.JwtAuth
	logger    logger.ILogger
}

func NewEditorHandler(hub *internalWS.Hub, suggester editor.Suggester, cfg editor.Config, jwtAuth *serverutils.JwtAuth, log logger.ILogger) *EditorHandler {
	return &EditorHandler{
		hub:       hub,
		suggester: suggester,
		cfg:       cfg,
		jwtAuth:   jwtAuth,
		logger:    log,
	}
}

func (h *EditorHandler) newSession(opts ...editor.Option) *editor.Session {
	return editor.NewSession(h.suggester, h.cfg, append([]editor.Option{editor.WithLogger(h.logger)}, opts...)...)
}

// resolveUser reads the token from the query (browsers) or the Authorization
// header (tooling). A missing or invalid token yields an anonymous editor.
func (h *EditorHandler) resolveUser(c *fiber.Ctx) *editor.User {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return nil
	}

	user, err := h.authenticate(c.UserContext(), tokenStr)
	if err != nil {
		h.logger.Warn("EditorHandler", "Invalid token in WS handshake, continuing anonymous", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return user
}

// authenticate also serves auth frames sent after the handshake.
func (h *EditorHandler) authenticate(ctx context.Context, token string) (*editor.User, error) {
	claims, err := h.jwtAuth.Parse(ctx, token)
	if err != nil {
		return nil, err
	}
	return &editor.User{ID: claims.UserID, Email: claims.Email}, nil
}

// ServeWs handles websocket requests from the editor.
func (h *EditorHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	user := h.resolveUser(c)
	return websocket.New(func(conn *websocket.Conn) {
		client := internalWS.NewClient(h.hub, user, h.newSession, h.authenticate)
		h.logger.Info("EditorHandler", "Starting editor session", map[string]interface{}{"user_id": client.UserID()})
		internalWS.ServeWs(h.hub, conn, client)
		h.logger.Info("EditorHandler", "Editor session ended", map[string]interface{}{"user_id": client.UserID()})
	})(c)
}

func (h *EditorHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/editor/ws", h.ServeWs)
}
