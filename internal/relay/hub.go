package relay

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// Event is the frame exchanged with relay clients in both directions.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// outEvent is the outbound frame before marshaling.
type outEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Hub fans events out to connections grouped into rooms. A room is keyed by
// either a user ID (notifications, multi-device) or a conversation ID
// (chat). Membership is in-memory only and scoped to process lifetime;
// events addressed to an empty room are dropped.
type Hub struct {
	rooms      map[string]map[*Client]bool
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		unregister: make(chan *Client, 64),
	}
}

// Run disconnects clients queued for removal by slow-consumer drops.
// Call it in its own goroutine.
func (h *Hub) Run() {
	for client := range h.unregister {
		h.removeClient(client)
	}
}

// Join adds a connection to a room.
func (h *Hub) Join(roomID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client.closed {
		return
	}
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]bool)
	}
	h.rooms[roomID][client] = true
	client.joined[roomID] = true
}

// removeClient drops a connection from every room it joined. Idempotent;
// called from the read pump on disconnect and from slow-consumer drops.
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client.closed {
		return
	}
	client.closed = true

	for roomID := range client.joined {
		if members := h.rooms[roomID]; members != nil {
			delete(members, client)
			if len(members) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}
	close(client.Send)
}

// SendToRoom broadcasts an event to every connection in a room. Slow
// consumers whose buffers are full are disconnected rather than blocking
// the broadcast. The read lock is held across the send loop: removeClient
// closes Send under the write lock, so no send here can race the close.
func (h *Hub) SendToRoom(roomID, event string, payload any) {
	data, err := json.Marshal(outEvent{Event: event, Data: payload})
	if err != nil {
		logrus.WithError(err).Warn("Failed to marshal relay event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[roomID] {
		select {
		case client.Send <- data:
		default:
			select {
			case h.unregister <- client:
			default:
			}
		}
	}
}

// RoomSize reports how many connections a room currently has.
func (h *Hub) RoomSize(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// NotifyUser implements the services.Notifier push for user rooms.
func (h *Hub) NotifyUser(userID, event string, payload any) {
	h.SendToRoom(userID, event, payload)
}

// BroadcastRoom implements the services.Notifier push for conversation
// rooms. The sender's own connections receive the event too.
func (h *Hub) BroadcastRoom(roomID, event string, payload any) {
	h.SendToRoom(roomID, event, payload)
}
