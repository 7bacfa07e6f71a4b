package relay

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/skillswap/skillswap-server/pkg/jwt"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client is a single websocket connection. A user may hold several
// concurrently (multi-device); each joins rooms independently.
type Client struct {
	ID     string
	UserID string
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte

	// guarded by Hub.mu
	joined map[string]bool
	closed bool
}

// ServeWS authenticates the ?token= query parameter, upgrades the
// connection and starts the read/write pumps.
func ServeWS(hub *Hub, secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "Missing token", http.StatusUnauthorized)
			return
		}

		claims, err := jwt.ValidateToken(token, secret)
		if err != nil {
			logrus.WithError(err).Warn("Relay connection rejected: invalid token")
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Warn("Websocket upgrade failed")
			return
		}

		client := &Client{
			ID:     uuid.NewString(),
			UserID: claims.UserID,
			Hub:    hub,
			Conn:   conn,
			Send:   make(chan []byte, 256),
			joined: make(map[string]bool),
		}

		logrus.WithFields(logrus.Fields{
			"connID": client.ID,
			"userID": client.UserID,
		}).Info("Relay client connected")

		go client.writePump()
		go client.readPump()
	}
}

func (c *Client) readPump() {
	defer func() {
		c.Hub.removeClient(c)
		c.Conn.Close()
		logrus.WithField("connID", c.ID).Info("Relay client disconnected")
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
				logrus.WithError(err).Warn("Relay read error")
			}
			break
		}
		c.handleEvent(message)
	}
}

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
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
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

// handleEvent dispatches one inbound frame. Malformed frames and unknown
// events are dropped; the relay never answers with errors.
func (c *Client) handleEvent(message []byte) {
	var evt Event
	if err := json.Unmarshal(message, &evt); err != nil {
		return
	}

	switch evt.Event {
	case "register":
		var userID string
		if err := json.Unmarshal(evt.Data, &userID); err != nil {
			return
		}
		// A connection may only register as the user it authenticated as.
		if userID != c.UserID {
			logrus.WithFields(logrus.Fields{
				"connID":    c.ID,
				"userID":    c.UserID,
				"requested": userID,
			}).Warn("Relay register for foreign user ignored")
			return
		}
		c.Hub.Join(userID, c)

	case "join_chat_room":
		var roomID string
		if err := json.Unmarshal(evt.Data, &roomID); err != nil {
			return
		}
		if roomID == "" {
			return
		}
		c.Hub.Join(roomID, c)

	case "send_notification":
		var payload struct {
			RecipientID  string          `json:"recipientId"`
			Notification json.RawMessage `json:"notification"`
		}
		if err := json.Unmarshal(evt.Data, &payload); err != nil {
			return
		}
		c.Hub.SendToRoom(payload.RecipientID, "receive_notification", payload.Notification)

	case "send_message":
		var payload struct {
			ConversationID string          `json:"conversationId"`
			Message        json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal(evt.Data, &payload); err != nil {
			return
		}
		c.Hub.SendToRoom(payload.ConversationID, "receive_message", payload.Message)
	}
}
