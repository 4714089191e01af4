// internal/ws/hub.go
package ws

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"fieldserve-backend/internal/pkg/jwt"
)

// Event is a server-to-client push message.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Hub keeps the live WebSocket connections grouped by employee id and
// fans events out to them. An employee with no live connection simply
// misses the push; everything pushed here is also readable over HTTP.
type Hub struct {
	clients map[int64]map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client

	verifier *jwt.Verifier
	logger   *zap.Logger
}

func NewHub(verifier *jwt.Verifier, logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		verifier:   verifier,
		logger:     logger,
	}
}

// Run processes client registration until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.employeeID] == nil {
				h.clients[client.employeeID] = make(map[*Client]bool)
			}
			h.clients[client.employeeID][client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.clients[client.employeeID]; ok {
				if conns[client] {
					delete(conns, client)
					close(client.send)
					if len(conns) == 0 {
						delete(h.clients, client.employeeID)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// NotifyVisitAssigned pushes a visit-assignment event to every live
// connection of the employee.
func (h *Hub) NotifyVisitAssigned(employeeID int64, v interface{}) {
	h.send(employeeID, Event{Type: "visit_assigned", Payload: v})
}

func (h *Hub) send(employeeID int64, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal ws event", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[employeeID] {
		select {
		case client.send <- data:
		default:
			// Slow consumer; drop the event rather than block the caller.
			h.logger.Warn("dropping ws event for slow client",
				zap.Int64("employee_id", employeeID),
			)
		}
	}
}

// ConnectionCount reports live connections, for the health endpoint.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, conns := range h.clients {
		n += len(conns)
	}
	return n
}
