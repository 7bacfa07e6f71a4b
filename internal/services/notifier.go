package services

// Notifier pushes events to currently connected clients. Delivery is
// best-effort: implementations must not block, and events addressed to an
// empty room are dropped. The database write that triggered a push is never
// rolled back on push failure.
type Notifier interface {
	// NotifyUser sends an event to every connection in the user's room.
	NotifyUser(userID string, event string, payload any)

	// BroadcastRoom sends an event to every connection in a conversation
	// room, including the sender's own connections.
	BroadcastRoom(roomID string, event string, payload any)
}

// NopNotifier discards all events. Used in tests and when the relay is
// disabled.
type NopNotifier struct{}

func (NopNotifier) NotifyUser(string, string, any)    {}
func (NopNotifier) BroadcastRoom(string, string, any) {}
