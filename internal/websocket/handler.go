package websocket

import (
	"context"

	"chameleon-be/internal/dto"
	"chameleon-be/pkg/editor"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// Authenticator turns a bearer token into the signed-in user.
type Authenticator func(ctx context.Context, token string) (*editor.User, error)

// SessionFactory builds an editor session; the client supplies its own wiring options.
type SessionFactory func(opts ...editor.Option) *editor.Session

// NewClient creates a client whose session reports back over the connection.
// user is nil for anonymous editors; auth may be nil when in-session sign-in is off.
func NewClient(hub *Hub, user *editor.User, factory SessionFactory, auth Authenticator) *Client {
	c := &Client{
		Hub:          hub,
		Users:        editor.NewUserHolder(user),
		Send:         make(chan []byte, sendBuffer),
		Authenticate: auth,
	}
	if user != nil {
		if id, err := uuid.Parse(user.ID); err == nil {
			c.userID = id
		}
	}

	c.Session = factory(
		editor.WithSessionProvider(c.Users),
		editor.WithObserver(c.sendState),
		editor.WithAuthRequired(func() {
			c.send(dto.EditorOutbound{Type: dto.EditorFrameAuthRequired, Message: editor.ErrAuthRequired.Error()})
		}),
	)
	return c
}

// ServeWs registers the client and pumps frames until the connection closes.
func ServeWs(hub *Hub, conn *websocket.Conn, client *Client) {
	client.Conn = conn
	if !hub.Register(client) {
		return
	}

	var user *dto.UserDTO
	if u := client.Users.CurrentUser(); u != nil {
		user = &dto.UserDTO{Id: u.ID, Email: u.Email}
	}
	client.send(dto.EditorOutbound{Type: dto.EditorFrameSession, User: user})
	client.sendState(client.Session.Snapshot())

	go client.writePump()
	client.readPump()
}
