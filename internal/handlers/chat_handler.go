package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillswap/skillswap-server/internal/services"
	"github.com/skillswap/skillswap-server/pkg/logger"
	"github.com/skillswap/skillswap-server/pkg/middleware"
)

// ChatHandler manages HTTP endpoints for conversation history and message
// creation. Real-time delivery happens over the relay; these endpoints are
// the durable source of truth.
type ChatHandler struct {
	Service *services.ChatService
}

// NewChatHandler initializes a new ChatHandler.
func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{Service: service}
}

// GetConversationHandler returns a conversation's messages in
// chronological order.
func (h *ChatHandler) GetConversationHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)
	conversationID, err := primitive.ObjectIDFromHex(vars["friendshipId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid conversation ID")
		return
	}

	messages, err := h.Service.GetConversation(r.Context(), conversationID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// SendMessageHandler stores a message and triggers the relay broadcast.
func (h *ChatHandler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		ConversationID string `json:"conversationId"`
		Content        string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	conversationID, err := primitive.ObjectIDFromHex(body.ConversationID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid conversation ID")
		return
	}
	senderID, _ := primitive.ObjectIDFromHex(claims.UserID)

	msg, err := h.Service.SendMessage(r.Context(), conversationID, senderID, body.Content)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	logger.Log.WithField("conversationID", body.ConversationID).Info("Message stored")
	writeJSON(w, http.StatusCreated, msg)
}
