package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"chameleon-be/internal/dto"
	"chameleon-be/internal/pkg/logger"
	"chameleon-be/pkg/events"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ClusterChannel relays session events between instances.
const ClusterChannel = "cluster_events"

type clusterMessage struct {
	Origin string          `json:"origin"`
	Event  json.RawMessage `json:"event"`
}

type Hub struct {
	// Registered clients: UserID -> open editors (multi-tab). Anonymous editors sit under uuid.Nil.
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	// done is closed once Run has returned and every editor was closed.
	done chan struct{}

	mu sync.RWMutex

	// Redis connection for cross-instance communication; nil on a single instance.
	rdb        *redis.Client
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, instanceID string, log logger.ILogger) *Hub {
	if instanceID == "" {
		instanceID = uuid.NewString()
	}
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		instanceID: instanceID,
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.mu.Lock()
			id := client.UserID()
			h.clients[id] = append(h.clients[id], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Editor registered", map[string]interface{}{"user_id": id})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// Register adds an editor. It reports false, closing the editor, once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		client.closeSend()
		client.Session.Close()
		return false
	}
}

// Unregister removes an editor and closes it. It never blocks after the hub has stopped.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
		h.remove(client)
	}
}

// shutdown closes every open editor; their write pumps then close the connections.
func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := 0
	for id, clients := range h.clients {
		for _, c := range clients {
			c.closeSend()
			c.Session.Close()
			n++
		}
		delete(h.clients, id)
	}
	close(h.done)
	h.logger.Info("Hub", "Stopped", map[string]interface{}{"closed_editors": n})
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.detachLocked(client) {
		client.closeSend()
		client.Session.Close()
	}
}

// detachLocked drops client from its user's slot and reports whether it was present.
func (h *Hub) detachLocked(client *Client) bool {
	id := client.UserID()
	clients, ok := h.clients[id]
	if !ok {
		return false
	}
	found := false
	for i, c := range clients {
		if c == client {
			h.clients[id] = append(clients[:i], clients[i+1:]...)
			found = true
			break
		}
	}
	if len(h.clients[id]) == 0 {
		delete(h.clients, id)
		h.logger.Info("Hub", "Editor completely unregistered", map[string]interface{}{"user_id": id})
	}
	return found
}

// rebind moves a registered editor to another account after an in-session sign-in.
func (h *Hub) rebind(client *Client, userID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.detachLocked(client) {
		// Not registered, or already closed by shutdown.
		client.setUserID(userID)
		return
	}
	client.setUserID(userID)
	h.clients[userID] = append(h.clients[userID], client)
	h.logger.Info("Hub", "Editor signed in", map[string]interface{}{"user_id": userID})
}

// Count returns the number of open editors.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, clients := range h.clients {
		n += len(clients)
	}
	return n
}

func (h *Hub) clientsFor(userID uuid.UUID) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]*Client(nil), h.clients[userID]...)
}

// HandleSessionEvent applies a local session event and relays it to other instances.
func (h *Hub) HandleSessionEvent(ctx context.Context, evt events.Event) {
	h.apply(evt)

	if h.rdb == nil {
		return
	}
	raw, err := events.Marshal(evt)
	if err != nil {
		return
	}
	payload, _ := json.Marshal(clusterMessage{Origin: h.instanceID, Event: raw})
	if err := h.rdb.Publish(ctx, ClusterChannel, payload).Err(); err != nil {
		h.logger.Warn("Hub", "Cluster publish failed", map[string]interface{}{"error": err.Error()})
	}
}

// apply pushes the session change to every editor owned by the event's user.
func (h *Hub) apply(evt events.Event) {
	userID, err := uuid.Parse(events.StringField(evt, "user_id"))
	if err != nil || userID == uuid.Nil {
		return
	}

	for _, client := range h.clientsFor(userID) {
		switch evt.EventType() {
		case events.SessionSignedOut:
			client.signOut()
		case events.SessionSignedIn:
			client.send(dto.EditorOutbound{
				Type: dto.EditorFrameSession,
				User: &dto.UserDTO{Id: userID.String(), Email: events.StringField(evt, "email")},
			})
		}
	}
	h.logger.Info("Hub", "Session event applied", map[string]interface{}{
		"type":    evt.EventType(),
		"user_id": userID,
	})
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, ClusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.handleClusterMessage([]byte(msg.Payload))
		}
	}
}

func (h *Hub) handleClusterMessage(raw []byte) {
	var payload clusterMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.logger.Warn("Hub", "Cluster message parse error", map[string]interface{}{"error": err.Error()})
		return
	}
	// Our own publications were applied before relaying.
	if payload.Origin == h.instanceID {
		return
	}
	evt, err := events.Unmarshal(payload.Event)
	if err != nil {
		return
	}
	h.apply(evt)
}
