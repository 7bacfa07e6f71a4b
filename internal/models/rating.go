package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating is a review left by one participant of a completed swap about the
// other. A rater may rate a given swap request at most once.
type Rating struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	RaterID       primitive.ObjectID `bson:"raterId" json:"raterId"`
	RatedUserID   primitive.ObjectID `bson:"ratedUserId" json:"ratedUserId"`
	SwapRequestID primitive.ObjectID `bson:"swapRequestId" json:"swapRequestId"`
	Rating        int                `bson:"rating" json:"rating"` // 1..5
	Feedback      string             `bson:"feedback" json:"feedback"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// EnrichedRating is a rating joined with the rater's and rated user's
// public details for the recent-ratings feed.
type EnrichedRating struct {
	Rating    `bson:",inline"`
	Rater     *PublicUser `bson:"rater,omitempty" json:"rater,omitempty"`
	RatedUser *PublicUser `bson:"ratedUser,omitempty" json:"ratedUser,omitempty"`
}

// AverageRating returns the arithmetic mean of the given rating values,
// or 0 for an empty slice.
func AverageRating(ratings []Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	return float64(sum) / float64(len(ratings))
}
