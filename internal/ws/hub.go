// Package ws pushes dashboard render frames to connected browser clients
// over websockets. The view layer writes typed frames into the hub and the
// hub fans them out; clients only ever receive.
package ws

import (
	"encoding/json"
	"sync"

	"air-quality-dashboard/internal/logger"

	"go.uber.org/zap"
)

// Frame is one render instruction for the browser.
type Frame struct {
	Type    string `json:"type"`
	Slot    string `json:"slot,omitempty"`
	Op      string `json:"op,omitempty"`
	Payload any    `json:"payload,omitempty"`
	Message string `json:"message,omitempty"`
}

// Hub maintains the set of active clients and broadcasts frames to them.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
	}
}

// Run processes register/unregister/broadcast events until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			logger.Info("Websocket client registered",
				zap.String("remote", client.conn.RemoteAddr().String()),
			)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client cannot keep up; drop it.
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()

		case <-h.stop:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop shuts the hub down and disconnects all clients.
func (h *Hub) Stop() {
	close(h.stop)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast marshals a frame and queues it for every connected client.
// Marshal failures are logged and dropped; a render frame is never worth
// crashing over.
func (h *Hub) Broadcast(frame Frame) {
	data, err := json.Marshal(frame)
	if err != nil {
		logger.Error("Failed to marshal render frame",
			zap.String("frame_type", frame.Type),
			zap.Error(err),
		)
		return
	}

	select {
	case h.broadcast <- data:
	case <-h.stop:
	}
}
