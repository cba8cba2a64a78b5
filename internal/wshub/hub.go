package wshub

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/coder/websocket"
)

// Client is a single WebSocket connection. ID is the stable opaque identity
// the rest of the system knows the connection by.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

// WritePump reads from the Send channel and writes to the WebSocket
// connection. It returns when the context ends or the channel closes.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}
}

// Hub tracks live connections and their room-group memberships. All sends
// are non-blocking: a client whose buffer is full misses the message instead
// of stalling the sender.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	groups  map[string]map[string]*Client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		groups:  make(map[string]map[string]*Client),
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

// Unregister drops a client from the hub and every group, then closes its
// Send channel.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[connID]
	if !ok {
		return
	}
	delete(h.clients, connID)
	for code, members := range h.groups {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.groups, code)
		}
	}
	close(c.Send)
}

// Join adds a registered connection to the group for code.
func (h *Hub) Join(code string, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[connID]
	if !ok {
		return
	}
	members, ok := h.groups[code]
	if !ok {
		members = make(map[string]*Client)
		h.groups[code] = members
	}
	members[connID] = c
}

// Leave removes the connection from the group for code.
func (h *Hub) Leave(code string, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.groups[code]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(h.groups, code)
	}
}

// DropGroup removes the whole group. The connections stay registered.
func (h *Hub) DropGroup(code string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.groups, code)
}

// SendTo delivers a message to a single connection.
func (h *Hub) SendTo(connID string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WSHub] Marshal error: %v\n", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[connID]
	if !ok {
		return
	}
	select {
	case c.Send <- data:
	default:
		// Drop message if channel full
	}
}

// SendToGroup delivers a message to every member of the group for code.
func (h *Hub) SendToGroup(code string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WSHub] Marshal error: %v\n", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.groups[code] {
		select {
		case c.Send <- data:
		default:
			// Drop message if channel full
		}
	}
}
