package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"chameleon-be/internal/dto"
	"chameleon-be/pkg/editor"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 256 * 1024 // whole documents arrive in change frames
	sendBuffer     = 64
)

// Client is a middleman between the websocket connection, its editor session and the hub.
type Client struct {
	Hub *Hub

	Conn *websocket.Conn

	// userID is uuid.Nil for anonymous editors; guarded by idMu.
	userID uuid.UUID
	idMu   sync.RWMutex

	Session *editor.Session
	Users   *editor.UserHolder

	// Authenticate resolves the token of an auth frame; nil disables sign-in.
	Authenticate Authenticator

	// Buffered channel of outbound frames.
	Send chan []byte

	mu     sync.Mutex
	closed bool
}

// UserID returns the account the editor is indexed under.
func (c *Client) UserID() uuid.UUID {
	c.idMu.RLock()
	defer c.idMu.RUnlock()
	return c.userID
}

func (c *Client) setUserID(id uuid.UUID) {
	c.idMu.Lock()
	c.userID = id
	c.idMu.Unlock()
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

func (c *Client) send(frame dto.EditorOutbound) {
	data, err := json.Marshal(frame)
	if err != nil {
		return
	}
	// Fetch goroutines may still report after the hub closed Send.
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- data:
	default:
		c.Hub.logger.Warn("Client", "Send buffer full, dropping frame", map[string]interface{}{
			"user_id": c.UserID(),
			"type":    frame.Type,
		})
	}
}

func (c *Client) sendState(s editor.Snapshot) {
	c.send(dto.EditorOutbound{Type: dto.EditorFrameState, State: &s})
}

func (c *Client) signOut() {
	c.Users.SignOut()
	c.send(dto.EditorOutbound{Type: dto.EditorFrameSession})
}

// signIn resolves token, swaps the session's user and re-indexes the client
// so later session events for that account reach it.
func (c *Client) signIn(token string) {
	if c.Authenticate == nil || token == "" {
		c.send(dto.EditorOutbound{Type: dto.EditorFrameError, Message: "sign-in unavailable"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	user, err := c.Authenticate(ctx, token)
	if err != nil {
		c.Hub.logger.Warn("Client", "Rejected auth frame", map[string]interface{}{
			"user_id": c.UserID(),
			"error":   err.Error(),
		})
		c.send(dto.EditorOutbound{Type: dto.EditorFrameAuthRequired, Message: "invalid token"})
		return
	}

	id, err := uuid.Parse(user.ID)
	if err != nil {
		id = uuid.Nil
	}
	c.Users.SignIn(user)
	c.Hub.rebind(c, id)
	c.send(dto.EditorOutbound{Type: dto.EditorFrameSession, User: &dto.UserDTO{Id: user.ID, Email: user.Email}})
}

// handleFrame applies one inbound frame to the session.
func (c *Client) handleFrame(raw []byte) {
	var in dto.EditorInbound
	if err := json.Unmarshal(raw, &in); err != nil {
		c.send(dto.EditorOutbound{Type: dto.EditorFrameError, Message: "invalid frame"})
		return
	}

	switch in.Type {
	case dto.EditorFrameChange:
		c.Session.Update(in.Text, editor.CursorFromUTF16(in.Text, in.Cursor), in.Geometry)

	case dto.EditorFrameAuth:
		c.signIn(in.Token)

	case dto.EditorFrameKey:
		ev := editor.KeyEvent{Key: in.Key, Ctrl: in.Ctrl, Meta: in.Meta, Shift: in.Shift}
		if editor.ActionFor(ev) == editor.ActionAccept {
			if inserted, ok := c.Session.Accept(); ok {
				c.send(dto.EditorOutbound{Type: dto.EditorFrameInsert, Text: inserted})
			}
			return
		}
		c.Session.HandleKey(ev)

	case dto.EditorFrameCopy:
		text, err := c.Session.Copy()
		if err != nil {
			// The auth-required notifier already told the editor.
			return
		}
		c.send(dto.EditorOutbound{Type: dto.EditorFrameClipboard, Text: text})

	default:
		c.send(dto.EditorOutbound{Type: dto.EditorFrameError, Message: "unknown frame type"})
	}
}

// readPump pumps frames from the websocket connection into the session.
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("Client", "Unexpected close", map[string]interface{}{
					"user_id": c.UserID(),
					"error":   err.Error(),
				})
			}
			break
		}
		c.handleFrame(message)
	}
}

// writePump pumps frames from the session to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// One frame per message: the editor parses each as a JSON object.
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
