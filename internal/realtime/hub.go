// Package realtime fans structured events out to connected clients.
// Delivery is best-effort: there is no retry and no persistence of
// missed notifications.
package realtime

import (
	"sync"

	"github.com/communitypulse/backend/internal/models"
	"github.com/google/uuid"
)

// Conn is the minimal connection surface the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
}

// Envelope is the wire frame for every event.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type subscriber struct {
	userID uuid.UUID
	role   string
}

// Hub is an explicit subscription registry mapping connection to identity.
// Broadcasts select connections by role or user id; there are no hidden
// framework-managed rooms.
type Hub struct {
	mu    sync.Mutex
	conns map[Conn]subscriber
}

func NewHub() *Hub {
	return &Hub{conns: make(map[Conn]subscriber)}
}

// Register adds a connection for the given identity.
func (h *Hub) Register(c Conn, userID uuid.UUID, role string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = subscriber{userID: userID, role: role}
}

// Unregister drops a connection.
func (h *Hub) Unregister(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, c)
}

// ConnCount returns the number of registered connections.
func (h *Hub) ConnCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// ToModerators delivers an event to every connected moderator and admin.
func (h *Hub) ToModerators(event string, data interface{}) {
	h.send(event, data, func(s subscriber) bool {
		return models.IsStaff(s.role)
	})
}

// ToAdmins delivers an event to every connected admin.
func (h *Hub) ToAdmins(event string, data interface{}) {
	h.send(event, data, func(s subscriber) bool {
		return s.role == models.RoleAdmin
	})
}

// ToUser delivers an event to every connection of one user.
func (h *Hub) ToUser(userID uuid.UUID, event string, data interface{}) {
	h.send(event, data, func(s subscriber) bool {
		return s.userID == userID
	})
}

func (h *Hub) send(event string, data interface{}, match func(subscriber) bool) {
	env := Envelope{Event: event, Data: data}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c, sub := range h.conns {
		if !match(sub) {
			continue
		}
		// Write failures are swallowed; a dead connection is cleaned up
		// by its read loop.
		_ = c.WriteJSON(env)
	}
}
