package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillswap/skillswap-server/internal/models"
	"github.com/skillswap/skillswap-server/internal/repository"
)

// FriendService handles business logic for the friendship workflow.
type FriendService struct {
	friendRepo *repository.FriendshipRepository
	userRepo   *repository.UserRepository
	notifier   Notifier
}

// NewFriendService creates a new FriendService.
func NewFriendService(friendRepo *repository.FriendshipRepository, userRepo *repository.UserRepository, notifier Notifier) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

// SendFriendRequest creates a pending friendship between two distinct users.
// At most one friendship document exists per pair, in either direction.
func (s *FriendService) SendFriendRequest(ctx context.Context, requester, recipient primitive.ObjectID) (*models.Friendship, error) {
	if requester == recipient {
		return nil, fmt.Errorf("%w: you cannot add yourself as a friend", ErrValidation)
	}

	existing, err := s.friendRepo.FindBetween(ctx, requester, recipient)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: a friend request already exists or you are already friends", ErrConflict)
	}

	friendship, err := s.friendRepo.CreateRequest(ctx, requester, recipient)
	if err != nil {
		return nil, err
	}

	// The friendship write is durable at this point. The push is a
	// convenience; failures are invisible to the caller.
	go s.pushRequestNotification(requester, recipient, friendship.ID)

	return friendship, nil
}

func (s *FriendService) pushRequestNotification(requester, recipient, friendshipID primitive.ObjectID) {
	requesterInfo, err := s.userRepo.GetUsersByIDs(context.Background(), []primitive.ObjectID{requester})
	name := ""
	if err == nil && len(requesterInfo) > 0 {
		name = requesterInfo[0].Name
	}

	s.notifier.NotifyUser(recipient.Hex(), "receive_notification", map[string]any{
		"type":         "friend_request",
		"friendshipId": friendshipID.Hex(),
		"fromUserId":   requester.Hex(),
		"fromName":     name,
		"message":      fmt.Sprintf("%s sent you a friend request", name),
	})
}

// RespondToRequest lets the recipient of a pending request accept or decline
// it. Any other actor, or any non-pending request, gets a not-found result;
// the two cases are indistinguishable to the caller.
func (s *FriendService) RespondToRequest(ctx context.Context, requestID, caller primitive.ObjectID, status models.FriendshipStatus) error {
	if !status.IsResolution() {
		return fmt.Errorf("%w: status must be accepted or declined", ErrValidation)
	}

	matched, err := s.friendRepo.ResolveRequest(ctx, requestID, caller, status)
	if err != nil {
		return err
	}
	if !matched {
		return fmt.Errorf("%w: friend request not found or permission denied", ErrNotFound)
	}

	logrus.WithFields(logrus.Fields{
		"friendshipID": requestID.Hex(),
		"status":       status,
	}).Info("Friend request resolved")
	return nil
}

// FriendsOverview is the response shape of GET /friends/all.
type FriendsOverview struct {
	PendingRequests []models.PendingRequest `json:"pendingRequests"`
	Friends         []models.FriendEntry    `json:"friends"`
}

// GetFriendsOverview returns the caller's incoming pending requests and
// accepted friends, both enriched with public user details.
func (s *FriendService) GetFriendsOverview(ctx context.Context, userID primitive.ObjectID) (*FriendsOverview, error) {
	pending, err := s.friendRepo.GetPendingRequests(ctx, userID)
	if err != nil {
		return nil, err
	}

	friends, err := s.friendRepo.GetFriends(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &FriendsOverview{PendingRequests: pending, Friends: friends}, nil
}
