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

// RatingRepository handles database operations on the ratings collection.
type RatingRepository struct {
	collection *mongo.Collection
}

// NewRatingRepository creates a new instance of RatingRepository.
func NewRatingRepository(db *mongo.Database) *RatingRepository {
	return &RatingRepository{collection: db.Collection("ratings")}
}

// FindByRaterAndSwap returns the rating the rater already left for a swap,
// or nil when there is none.
func (r *RatingRepository) FindByRaterAndSwap(ctx context.Context, rater, swapID primitive.ObjectID) (*models.Rating, error) {
	var rating models.Rating
	err := r.collection.FindOne(ctx, bson.M{"raterId": rater, "swapRequestId": swapID}).Decode(&rating)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up rating: %v", err)
	}
	return &rating, nil
}

// InsertRating stores a new rating.
func (r *RatingRepository) InsertRating(ctx context.Context, rating *models.Rating) (*models.Rating, error) {
	rating.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, rating)
	if err != nil {
		return nil, fmt.Errorf("failed to insert rating: %v", err)
	}
	rating.ID = result.InsertedID.(primitive.ObjectID)

	return rating, nil
}

// GetByRatedUser returns every rating left for a user. Used to recompute
// the user's aggregate after an insert.
func (r *RatingRepository) GetByRatedUser(ctx context.Context, ratedUser primitive.ObjectID) ([]models.Rating, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"ratedUserId": ratedUser})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ratings: %v", err)
	}
	defer cursor.Close(ctx)

	var ratings []models.Rating
	for cursor.Next(ctx) {
		var rating models.Rating
		if err := cursor.Decode(&rating); err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	return ratings, nil
}

// GetRecent returns the latest ratings across the platform, newest first.
func (r *RatingRepository) GetRecent(ctx context.Context, limit int64) ([]models.Rating, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent ratings: %v", err)
	}
	defer cursor.Close(ctx)

	ratings := []models.Rating{}
	for cursor.Next(ctx) {
		var rating models.Rating
		if err := cursor.Decode(&rating); err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	return ratings, nil
}
