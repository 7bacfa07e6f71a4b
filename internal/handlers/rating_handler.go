package handlers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillswap/skillswap-server/internal/services"
	"github.com/skillswap/skillswap-server/pkg/logger"
	"github.com/skillswap/skillswap-server/pkg/middleware"
)

// RatingHandler manages HTTP endpoints for swap ratings.
type RatingHandler struct {
	Service *services.RatingService
}

// NewRatingHandler initializes a new RatingHandler.
func NewRatingHandler(service *services.RatingService) *RatingHandler {
	return &RatingHandler{Service: service}
}

// CreateRatingHandler records a rating for a completed swap.
func (h *RatingHandler) CreateRatingHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		SwapRequestID string `json:"swapRequestId"`
		RatedUserID   string `json:"ratedUserId"`
		Rating        int    `json:"rating"`
		Feedback      string `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	swapID, err := primitive.ObjectIDFromHex(body.SwapRequestID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid swapRequestId")
		return
	}
	ratedUserID, err := primitive.ObjectIDFromHex(body.RatedUserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ratedUserId")
		return
	}
	raterID, _ := primitive.ObjectIDFromHex(claims.UserID)

	rating, err := h.Service.CreateRating(r.Context(), raterID, ratedUserID, swapID, body.Rating, body.Feedback)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	logger.Log.WithField("swapID", body.SwapRequestID).Info("Rating created")
	writeJSON(w, http.StatusCreated, rating)
}

// GetRatingsHandler returns the latest platform ratings.
func (h *RatingHandler) GetRatingsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ratings, err := h.Service.GetRecentRatings(r.Context(), 20)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ratings)
}
