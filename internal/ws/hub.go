// Package ws manages WebSocket connections and pushes rental lifecycle
// events to the parties they concern. Clients receive pushes instead of
// polling for rental status.
package ws

import (
	"sync"

	"toolshare-backend/internal/logger"
)

// Hub maintains the set of active WebSocket clients and routes messages to
// the users they are addressed to.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Outbound messages with their target user IDs
	deliver chan targetedMessage

	mu sync.RWMutex
}

type targetedMessage struct {
	userIDs []string
	data    []byte
}

// NewHub creates a new WebSocket hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan targetedMessage, 256),
	}
}

// Run starts the hub's main event loop.
// This should be called in a goroutine.
func (h *Hub) Run() {
	log := logger.WithComponent("ws_hub")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			log.Info("client connected", "user_id", client.userID, "total", total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			log.Info("client disconnected", "user_id", client.userID, "total", total)

		case msg := <-h.deliver:
			h.mu.Lock()
			for client := range h.clients {
				if !msg.targets(client.userID) {
					continue
				}
				select {
				case client.send <- msg.data:
				default:
					// Send buffer full, drop the connection.
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (m targetedMessage) targets(userID string) bool {
	// No explicit audience means broadcast.
	if len(m.userIDs) == 0 {
		return true
	}
	for _, id := range m.userIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Send queues a message for every connected client of the given users.
func (h *Hub) Send(userIDs []string, data []byte) {
	select {
	case h.deliver <- targetedMessage{userIDs: userIDs, data: data}:
	default:
		logger.Warn("ws delivery channel full, dropping message")
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Client represents one WebSocket connection, bound to an authenticated
// user.
type Client struct {
	hub    *Hub
	userID string
	send   chan []byte
}

// NewClient creates a new client for the given user.
func NewClient(hub *Hub, userID string) *Client {
	return &Client{
		hub:    hub,
		userID: userID,
		send:   make(chan []byte, 256),
	}
}

// Send returns the client's outbound channel.
func (c *Client) Send() chan []byte {
	return c.send
}

// UserID returns the authenticated user this client belongs to.
func (c *Client) UserID() string {
	return c.userID
}
