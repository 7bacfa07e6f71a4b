package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skillswap/skillswap-server/internal/models"
)

// FriendshipRepository handles database operations on the friendships
// collection.
type FriendshipRepository struct {
	collection *mongo.Collection
}

// NewFriendshipRepository creates a new instance of FriendshipRepository.
func NewFriendshipRepository(db *mongo.Database) *FriendshipRepository {
	return &FriendshipRepository{
		collection: db.Collection("friendships"),
	}
}

// FindBetween returns the friendship between two users regardless of who
// requested it, or nil when none exists.
func (r *FriendshipRepository) FindBetween(ctx context.Context, a, b primitive.ObjectID) (*models.Friendship, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"requester": a, "recipient": b},
			{"requester": b, "recipient": a},
		},
	}

	var friendship models.Friendship
	err := r.collection.FindOne(ctx, filter).Decode(&friendship)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up friendship: %v", err)
	}
	return &friendship, nil
}

// CreateRequest inserts a pending friendship.
func (r *FriendshipRepository) CreateRequest(ctx context.Context, requester, recipient primitive.ObjectID) (*models.Friendship, error) {
	friendship := &models.Friendship{
		Requester: requester,
		Recipient: recipient,
		Status:    models.FriendshipPending,
		CreatedAt: time.Now(),
	}

	result, err := r.collection.InsertOne(ctx, friendship)
	if err != nil {
		return nil, fmt.Errorf("failed to create friend request: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	friendship.ID = insertedID

	return friendship, nil
}

// ResolveRequest moves a pending request to accepted or declined. The filter
// re-checks that the caller is the recipient and the request is still
// pending, so a stale or unauthorized update simply matches nothing.
func (r *FriendshipRepository) ResolveRequest(ctx context.Context, id, recipient primitive.ObjectID, status models.FriendshipStatus) (bool, error) {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "recipient": recipient, "status": models.FriendshipPending},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update friend request: %v", err)
	}
	return result.MatchedCount > 0, nil
}

// GetPendingRequests returns pending requests addressed to the user,
// enriched with each requester's public details.
func (r *FriendshipRepository) GetPendingRequests(ctx context.Context, recipient primitive.ObjectID) ([]models.PendingRequest, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"recipient": recipient, "status": models.FriendshipPending}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "requester",
			"foreignField": "_id",
			"as":           "requesterDetails",
		}}},
		{{Key: "$unwind", Value: "$requesterDetails"}},
		{{Key: "$project", Value: bson.M{
			"_id": 1,
			"requester": bson.M{
				"_id":          "$requesterDetails._id",
				"name":         "$requesterDetails.name",
				"email":        "$requesterDetails.email",
				"profilePhoto": "$requesterDetails.profilePhoto",
			},
			"createdAt": 1,
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending requests: %v", err)
	}
	defer cursor.Close(ctx)

	requests := []models.PendingRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode pending requests: %v", err)
	}
	return requests, nil
}

// GetFriends returns accepted friendships involving the user, enriched with
// the counterpart's public details.
func (r *FriendshipRepository) GetFriends(ctx context.Context, userID primitive.ObjectID) ([]models.FriendEntry, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status": models.FriendshipAccepted,
			"$or":    []bson.M{{"requester": userID}, {"recipient": userID}},
		}}},
		{{Key: "$project", Value: bson.M{
			"friendId": bson.M{
				"$cond": bson.M{
					"if":   bson.M{"$eq": []interface{}{"$requester", userID}},
					"then": "$recipient",
					"else": "$requester",
				},
			},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "friendId",
			"foreignField": "_id",
			"as":           "friendDetails",
		}}},
		{{Key: "$unwind", Value: "$friendDetails"}},
		{{Key: "$project", Value: bson.M{
			"friendshipId": "$_id",
			"friend": bson.M{
				"_id":          "$friendDetails._id",
				"name":         "$friendDetails.name",
				"email":        "$friendDetails.email",
				"profilePhoto": "$friendDetails.profilePhoto",
			},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch friends: %v", err)
	}
	defer cursor.Close(ctx)

	friends := []models.FriendEntry{}
	if err := cursor.All(ctx, &friends); err != nil {
		return nil, fmt.Errorf("failed to decode friends: %v", err)
	}
	return friends, nil
}
