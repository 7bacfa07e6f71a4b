package handlers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillswap/skillswap-server/internal/assistant"
	"github.com/skillswap/skillswap-server/internal/services"
	"github.com/skillswap/skillswap-server/pkg/logger"
	"github.com/skillswap/skillswap-server/pkg/middleware"
)

// AssistantHandler forwards user questions to the generative assistant,
// seeded with the caller's profile. Stateless; no transcript is stored.
type AssistantHandler struct {
	Client      *assistant.Client
	UserService *services.UserService
}

// NewAssistantHandler initializes a new AssistantHandler.
func NewAssistantHandler(client *assistant.Client, userService *services.UserService) *AssistantHandler {
	return &AssistantHandler{Client: client, UserService: userService}
}

// AskHandler answers a single free-text question. Upstream failures
// degrade to a canned apology; the page never breaks.
func (h *AssistantHandler) AskHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"aiText": "Please log in to use the assistant.",
		})
		return
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Message == "" {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)
	user, err := h.UserService.GetProfile(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"aiText": "Couldn't find your profile. Please complete your profile first.",
		})
		return
	}

	reply, err := h.Client.Ask(r.Context(), user, body.Message)
	if err != nil {
		logger.Log.WithError(err).Error("Assistant request failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"aiText": "An error occurred. Please try again.",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"aiText": reply})
}
