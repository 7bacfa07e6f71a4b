package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillswap/skillswap-server/internal/models"
)

// SwapRepository handles database operations on the swapRequests collection.
type SwapRepository struct {
	collection *mongo.Collection
}

// NewSwapRepository creates a new instance of SwapRepository.
func NewSwapRepository(db *mongo.Database) *SwapRepository {
	return &SwapRepository{collection: db.Collection("swapRequests")}
}

// CreateSwap inserts a new pending swap request.
func (r *SwapRepository) CreateSwap(ctx context.Context, swap *models.SwapRequest) (*models.SwapRequest, error) {
	swap.Status = models.SwapPending
	swap.CreatedAt = time.Now()
	swap.UpdatedAt = swap.CreatedAt

	result, err := r.collection.InsertOne(ctx, swap)
	if err != nil {
		return nil, fmt.Errorf("failed to create swap request: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	swap.ID = insertedID

	return swap, nil
}

// GetSwapByID returns a single swap request, or nil when it does not exist.
func (r *SwapRepository) GetSwapByID(ctx context.Context, id primitive.ObjectID) (*models.SwapRequest, error) {
	var swap models.SwapRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&swap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find swap request: %v", err)
	}
	return &swap, nil
}

// ListByUser returns swap requests involving the user, newest first.
// listType narrows to "sent" or "received"; anything else returns both.
func (r *SwapRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, listType string) ([]models.SwapRequest, error) {
	var filter bson.M
	switch listType {
	case "sent":
		filter = bson.M{"fromUserId": userID}
	case "received":
		filter = bson.M{"toUserId": userID}
	default:
		filter = bson.M{"$or": []bson.M{{"fromUserId": userID}, {"toUserId": userID}}}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list swap requests: %v", err)
	}
	defer cursor.Close(ctx)

	swaps := []models.SwapRequest{}
	for cursor.Next(ctx) {
		var swap models.SwapRequest
		if err := cursor.Decode(&swap); err != nil {
			return nil, err
		}
		swaps = append(swaps, swap)
	}
	return swaps, nil
}

// buildActionFilter is the single authority table for swap transitions:
// the filter re-checks the required current status and the acting party.
// Accept/reject belong to the recipient, cancel to the sender, and either
// participant may confirm completion.
func buildActionFilter(id, actor primitive.ObjectID, action models.SwapAction) (bson.M, error) {
	filter := bson.M{"_id": id, "status": action.Required()}

	switch action {
	case models.SwapActionAccept, models.SwapActionReject:
		filter["toUserId"] = actor
	case models.SwapActionCancel:
		filter["fromUserId"] = actor
	case models.SwapActionComplete:
		filter["$or"] = []bson.M{{"fromUserId": actor}, {"toUserId": actor}}
	default:
		return nil, fmt.Errorf("unknown swap action %q", action)
	}
	return filter, nil
}

// ApplyAction performs the guarded status transition for an action. A
// losing concurrent actor or an unauthorized caller matches zero documents
// and the stored status is left untouched.
func (r *SwapRepository) ApplyAction(ctx context.Context, id, actor primitive.ObjectID, action models.SwapAction) (bool, error) {
	filter, err := buildActionFilter(id, actor, action)
	if err != nil {
		return false, err
	}

	result, err := r.collection.UpdateOne(
		ctx,
		filter,
		bson.M{"$set": bson.M{"status": action.Target(), "updatedAt": time.Now()}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update swap request: %v", err)
	}
	return result.MatchedCount > 0, nil
}

// DeleteSwap removes a swap request, but only while it is still pending and
// only for its sender.
func (r *SwapRepository) DeleteSwap(ctx context.Context, id, fromUser primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{
		"_id":        id,
		"fromUserId": fromUser,
		"status":     models.SwapPending,
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete swap request: %v", err)
	}
	return result.DeletedCount > 0, nil
}
