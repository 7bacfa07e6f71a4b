package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillswap/skillswap-server/internal/models"
	"github.com/skillswap/skillswap-server/internal/repository"
)

// SwapService handles business logic for the swap request workflow.
type SwapService struct {
	swapRepo *repository.SwapRepository
	userRepo *repository.UserRepository
	notifier Notifier
}

// NewSwapService creates a new SwapService.
func NewSwapService(swapRepo *repository.SwapRepository, userRepo *repository.UserRepository, notifier Notifier) *SwapService {
	return &SwapService{
		swapRepo: swapRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

// CreateSwap creates a pending swap request from the caller to another user.
func (s *SwapService) CreateSwap(ctx context.Context, fromUser, toUser primitive.ObjectID, offeredSkill, requestedSkill, message string) (*models.SwapRequest, error) {
	if offeredSkill == "" || requestedSkill == "" {
		return nil, fmt.Errorf("%w: offeredSkill and requestedSkill are required", ErrValidation)
	}
	if fromUser == toUser {
		return nil, fmt.Errorf("%w: you cannot send a swap request to yourself", ErrValidation)
	}

	swap := &models.SwapRequest{
		FromUserID:     fromUser,
		ToUserID:       toUser,
		OfferedSkill:   offeredSkill,
		RequestedSkill: requestedSkill,
		Message:        message,
	}

	created, err := s.swapRepo.CreateSwap(ctx, swap)
	if err != nil {
		return nil, err
	}

	go s.notifier.NotifyUser(toUser.Hex(), "receive_notification", map[string]any{
		"type":           "swap_request",
		"swapId":         created.ID.Hex(),
		"fromUserId":     fromUser.Hex(),
		"offeredSkill":   offeredSkill,
		"requestedSkill": requestedSkill,
	})

	logrus.WithFields(logrus.Fields{
		"swapID":   created.ID.Hex(),
		"fromUser": fromUser.Hex(),
		"toUser":   toUser.Hex(),
	}).Info("Swap request created")

	return created, nil
}

// ApplyAction performs an actor-restricted status transition. Unauthorized
// actors, unknown swaps and illegal transitions all surface as not found so
// the caller cannot distinguish them.
func (s *SwapService) ApplyAction(ctx context.Context, swapID, actor primitive.ObjectID, action models.SwapAction) error {
	if !action.Valid() {
		return fmt.Errorf("%w: invalid action", ErrValidation)
	}

	matched, err := s.swapRepo.ApplyAction(ctx, swapID, actor, action)
	if err != nil {
		return err
	}
	if !matched {
		return fmt.Errorf("%w: swap request not found or permission denied", ErrNotFound)
	}

	logrus.WithFields(logrus.Fields{
		"swapID": swapID.Hex(),
		"action": action,
	}).Info("Swap request updated")
	return nil
}

// DeleteSwap removes a swap request the caller sent, while it is still
// pending.
func (s *SwapService) DeleteSwap(ctx context.Context, swapID, caller primitive.ObjectID) error {
	deleted, err := s.swapRepo.DeleteSwap(ctx, swapID, caller)
	if err != nil {
		return err
	}
	if deleted {
		return nil
	}

	// Distinguish a missing swap from a live one the caller may not
	// delete, to match the API's 403/404 split.
	swap, err := s.swapRepo.GetSwapByID(ctx, swapID)
	if err != nil {
		return err
	}
	if swap == nil {
		return fmt.Errorf("%w: swap request", ErrNotFound)
	}
	return fmt.Errorf("%w: cannot delete this swap request", ErrForbidden)
}

// ListSwaps returns the caller's swap requests, each enriched with both
// parties' public name and photo.
func (s *SwapService) ListSwaps(ctx context.Context, userID primitive.ObjectID, listType string) ([]models.EnrichedSwap, error) {
	swaps, err := s.swapRepo.ListByUser(ctx, userID, listType)
	if err != nil {
		return nil, err
	}
	if len(swaps) == 0 {
		return []models.EnrichedSwap{}, nil
	}

	idSet := make(map[primitive.ObjectID]struct{})
	for _, swap := range swaps {
		idSet[swap.FromUserID] = struct{}{}
		idSet[swap.ToUserID] = struct{}{}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := s.userRepo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.PublicUser, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	enriched := make([]models.EnrichedSwap, 0, len(swaps))
	for _, swap := range swaps {
		entry := models.EnrichedSwap{SwapRequest: swap}
		if u, ok := byID[swap.FromUserID]; ok {
			u.Email = ""
			entry.FromUser = &u
		}
		if u, ok := byID[swap.ToUserID]; ok {
			u.Email = ""
			entry.ToUser = &u
		}
		enriched = append(enriched, entry)
	}

	return enriched, nil
}
