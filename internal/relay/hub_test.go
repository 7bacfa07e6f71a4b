package relay

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, userID string) *Client {
	return &Client{
		ID:     uuid.NewString(),
		UserID: userID,
		Hub:    hub,
		Send:   make(chan []byte, 16),
		joined: make(map[string]bool),
	}
}

func receiveEvent(t *testing.T, c *Client) (string, json.RawMessage) {
	t.Helper()
	select {
	case data := <-c.Send:
		var evt Event
		require.NoError(t, json.Unmarshal(data, &evt))
		return evt.Event, evt.Data
	default:
		t.Fatal("expected an event, got none")
		return "", nil
	}
}

func TestSendToRoomReachesAllMembers(t *testing.T) {
	hub := NewHub()

	// Two devices of the same user plus an unrelated connection.
	deviceA := newTestClient(hub, "alice")
	deviceB := newTestClient(hub, "alice")
	other := newTestClient(hub, "bob")

	hub.Join("alice", deviceA)
	hub.Join("alice", deviceB)
	hub.Join("bob", other)

	hub.NotifyUser("alice", "receive_notification", map[string]string{"type": "friend_request"})

	for _, c := range []*Client{deviceA, deviceB} {
		event, data := receiveEvent(t, c)
		assert.Equal(t, "receive_notification", event)
		assert.Contains(t, string(data), "friend_request")
	}
	assert.Empty(t, other.Send, "event must not leak into other rooms")
}

func TestBroadcastRoomEchoesToSender(t *testing.T) {
	hub := NewHub()

	sender := newTestClient(hub, "alice")
	peer := newTestClient(hub, "bob")
	hub.Join("conv-1", sender)
	hub.Join("conv-1", peer)

	hub.BroadcastRoom("conv-1", "receive_message", map[string]string{"content": "hi"})

	// The sender's UI renders from the echo, so both members receive it.
	for _, c := range []*Client{sender, peer} {
		event, data := receiveEvent(t, c)
		assert.Equal(t, "receive_message", event)
		assert.Contains(t, string(data), "hi")
	}
}

func TestSendToEmptyRoomIsDropped(t *testing.T) {
	hub := NewHub()

	// No members, no queue: the event just disappears.
	hub.SendToRoom("nobody-home", "receive_notification", map[string]string{"n": "1"})
	assert.Equal(t, 0, hub.RoomSize("nobody-home"))
}

func TestRemoveClientLeavesAllRooms(t *testing.T) {
	hub := NewHub()

	client := newTestClient(hub, "alice")
	peer := newTestClient(hub, "bob")
	hub.Join("alice", client)
	hub.Join("conv-1", client)
	hub.Join("conv-1", peer)

	hub.removeClient(client)

	assert.Equal(t, 0, hub.RoomSize("alice"))
	assert.Equal(t, 1, hub.RoomSize("conv-1"))

	// Removal is idempotent and the send channel is closed exactly once.
	hub.removeClient(client)
	_, open := <-client.Send
	assert.False(t, open)
}

func TestJoinAfterRemoveIsIgnored(t *testing.T) {
	hub := NewHub()

	client := newTestClient(hub, "alice")
	hub.Join("alice", client)
	hub.removeClient(client)

	hub.Join("alice", client)
	assert.Equal(t, 0, hub.RoomSize("alice"))
}

func TestSendToRoomConcurrentDisconnect(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Connections churn in a shared room while broadcasts from other
	// goroutines overlap the disconnects. A send must never hit a channel
	// that removeClient already closed, including via the slow-consumer
	// path (the one-slot buffers overflow constantly).
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				client := newTestClient(hub, "alice")
				client.Send = make(chan []byte, 1)
				hub.Join("alice", client)
				hub.SendToRoom("alice", "receive_notification", map[string]int{"seq": j})
				hub.removeClient(client)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, hub.RoomSize("alice"))
}

func TestHandleEventRegisterForeignUserIgnored(t *testing.T) {
	hub := NewHub()

	client := newTestClient(hub, "alice")
	frame, _ := json.Marshal(map[string]any{"event": "register", "data": "mallory"})
	client.handleEvent(frame)

	assert.Equal(t, 0, hub.RoomSize("mallory"))

	frame, _ = json.Marshal(map[string]any{"event": "register", "data": "alice"})
	client.handleEvent(frame)

	assert.Equal(t, 1, hub.RoomSize("alice"))
}

func TestHandleEventSendNotification(t *testing.T) {
	hub := NewHub()

	recipient := newTestClient(hub, "bob")
	hub.Join("bob", recipient)

	sender := newTestClient(hub, "alice")
	frame, _ := json.Marshal(map[string]any{
		"event": "send_notification",
		"data": map[string]any{
			"recipientId":  "bob",
			"notification": map[string]string{"title": "new request"},
		},
	})
	sender.handleEvent(frame)

	event, data := receiveEvent(t, recipient)
	assert.Equal(t, "receive_notification", event)
	assert.Contains(t, string(data), "new request")
}

func TestHandleEventSendMessageToConversation(t *testing.T) {
	hub := NewHub()

	sender := newTestClient(hub, "alice")
	peer := newTestClient(hub, "bob")
	hub.Join("conv-9", sender)
	hub.Join("conv-9", peer)

	frame, _ := json.Marshal(map[string]any{
		"event": "send_message",
		"data": map[string]any{
			"conversationId": "conv-9",
			"message":        map[string]string{"content": "see you at 5"},
		},
	})
	sender.handleEvent(frame)

	for _, c := range []*Client{sender, peer} {
		event, data := receiveEvent(t, c)
		assert.Equal(t, "receive_message", event)
		assert.Contains(t, string(data), "see you at 5")
	}
}

func TestHandleEventMalformedFramesDropped(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "alice")

	client.handleEvent([]byte("not json"))
	client.handleEvent([]byte(`{"event":"register","data":42}`))
	client.handleEvent([]byte(`{"event":"join_chat_room","data":""}`))
	client.handleEvent([]byte(`{"event":"no_such_event"}`))

	assert.Empty(t, client.Send)
	assert.Equal(t, 0, hub.RoomSize("alice"))
}
