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

// SwapHandler manages HTTP endpoints for the swap request workflow.
type SwapHandler struct {
	Service *services.SwapService
}

// NewSwapHandler initializes a new SwapHandler.
func NewSwapHandler(service *services.SwapService) *SwapHandler {
	return &SwapHandler{Service: service}
}

// CreateSwapHandler creates a pending swap request.
func (h *SwapHandler) CreateSwapHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		ToUserID       string `json:"toUserId"`
		OfferedSkill   string `json:"offeredSkill"`
		RequestedSkill string `json:"requestedSkill"`
		Message        string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	toUserID, err := primitive.ObjectIDFromHex(body.ToUserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid toUserId")
		return
	}
	fromUserID, _ := primitive.ObjectIDFromHex(claims.UserID)

	swap, err := h.Service.CreateSwap(r.Context(), fromUserID, toUserID, body.OfferedSkill, body.RequestedSkill, body.Message)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Swap request sent successfully",
		"swapId":  swap.ID,
	})
}

// ListSwapsHandler lists the caller's swap requests, filtered by
// ?type=sent|received, enriched with both parties' public details.
func (h *SwapHandler) ListSwapsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	swaps, err := h.Service.ListSwaps(r.Context(), userID, r.URL.Query().Get("type"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, swaps)
}

// SwapActionHandler applies accept/reject/complete/cancel to a swap.
func (h *SwapHandler) SwapActionHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)
	swapID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid swap ID")
		return
	}

	var body struct {
		Action models.SwapAction `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if !body.Action.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid action")
		return
	}

	callerID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.ApplyAction(r.Context(), swapID, callerID, body.Action); err != nil {
		respondServiceError(w, err)
		return
	}

	logger.Log.Infof("User %s applied %s to swap %s", claims.UserID, body.Action, vars["id"])
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Swap request " + string(body.Action.Target()) + " successfully",
	})
}

// DeleteSwapHandler removes a pending swap request the caller sent.
func (h *SwapHandler) DeleteSwapHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)
	swapID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid swap ID")
		return
	}

	callerID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.DeleteSwap(r.Context(), swapID, callerID); err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Swap request deleted successfully"})
}
