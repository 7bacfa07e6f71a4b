package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillswap/skillswap-server/internal/models"
	"github.com/skillswap/skillswap-server/internal/services"
	"github.com/skillswap/skillswap-server/pkg/logger"
	"github.com/skillswap/skillswap-server/pkg/middleware"
)

// FriendHandler manages HTTP endpoints for the friendship workflow.
type FriendHandler struct {
	Service *services.FriendService
}

// NewFriendHandler initializes a new FriendHandler.
func NewFriendHandler(service *services.FriendService) *FriendHandler {
	return &FriendHandler{Service: service}
}

// SendFriendRequestHandler creates a pending friendship with the recipient.
func (h *FriendHandler) SendFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		logger.Log.Warn("Unauthorized attempt to send friend request")
		return
	}

	var body struct {
		RecipientID string `json:"recipientId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	recipientID, err := primitive.ObjectIDFromHex(body.RecipientID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid recipient ID")
		return
	}
	requesterID, _ := primitive.ObjectIDFromHex(claims.UserID)

	friendship, err := h.Service.SendFriendRequest(r.Context(), requesterID, recipientID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	logger.Log.Infof("User %s sent a friend request to %s", claims.UserID, body.RecipientID)
	writeJSON(w, http.StatusCreated, friendship)
}

// RespondToFriendRequestHandler lets the recipient accept or decline a
// pending request.
func (h *FriendHandler) RespondToFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)
	requestID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request ID format")
		return
	}

	var body struct {
		Status models.FriendshipStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	callerID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.RespondToRequest(r.Context(), requestID, callerID, body.Status); err != nil {
		respondServiceError(w, err)
		return
	}

	logger.Log.Infof("User %s resolved friend request %s to %s", claims.UserID, vars["id"], body.Status)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Request successfully " + string(body.Status) + ".",
	})
}

// GetFriendsHandler returns the caller's pending requests and friends.
func (h *FriendHandler) GetFriendsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	overview, err := h.Service.GetFriendsOverview(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, overview)
}
