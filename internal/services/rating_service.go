package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillswap/skillswap-server/internal/models"
	"github.com/skillswap/skillswap-server/internal/repository"
)

// RatingService handles business logic for swap ratings and the rated
// user's aggregate score.
type RatingService struct {
	ratingRepo *repository.RatingRepository
	swapRepo   *repository.SwapRepository
	userRepo   *repository.UserRepository
}

// NewRatingService creates a new RatingService.
func NewRatingService(ratingRepo *repository.RatingRepository, swapRepo *repository.SwapRepository, userRepo *repository.UserRepository) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		swapRepo:   swapRepo,
		userRepo:   userRepo,
	}
}

// CreateRating records a rating for a completed swap and recomputes the
// rated user's aggregate. The insert and the aggregate update are two
// sequential writes; a crash in between leaves a stale aggregate that the
// next rating corrects.
func (s *RatingService) CreateRating(ctx context.Context, rater, ratedUser, swapID primitive.ObjectID, value int, feedback string) (*models.Rating, error) {
	if value < 1 || value > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if feedback == "" {
		return nil, fmt.Errorf("%w: feedback is required", ErrValidation)
	}

	swap, err := s.swapRepo.GetSwapByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if swap == nil || swap.Status != models.SwapCompleted {
		return nil, fmt.Errorf("%w: invalid swap request", ErrValidation)
	}

	existing, err := s.ratingRepo.FindByRaterAndSwap(ctx, rater, swapID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: you have already rated this swap", ErrConflict)
	}

	rating := &models.Rating{
		RaterID:       rater,
		RatedUserID:   ratedUser,
		SwapRequestID: swapID,
		Rating:        value,
		Feedback:      feedback,
	}

	stored, err := s.ratingRepo.InsertRating(ctx, rating)
	if err != nil {
		return nil, err
	}

	if err := s.recomputeAggregate(ctx, ratedUser); err != nil {
		// The rating itself is durable; the aggregate catches up on the
		// next write.
		logrus.WithError(err).WithField("userID", ratedUser.Hex()).
			Warn("Failed to update rating aggregate")
	}

	return stored, nil
}

func (s *RatingService) recomputeAggregate(ctx context.Context, ratedUser primitive.ObjectID) error {
	ratings, err := s.ratingRepo.GetByRatedUser(ctx, ratedUser)
	if err != nil {
		return err
	}
	return s.userRepo.UpdateRatingAggregate(ctx, ratedUser, models.AverageRating(ratings), len(ratings))
}

// GetRecentRatings returns the latest platform ratings enriched with the
// rater's and rated user's public details.
func (s *RatingService) GetRecentRatings(ctx context.Context, limit int64) ([]models.EnrichedRating, error) {
	ratings, err := s.ratingRepo.GetRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(ratings) == 0 {
		return []models.EnrichedRating{}, nil
	}

	idSet := make(map[primitive.ObjectID]struct{})
	for _, r := range ratings {
		idSet[r.RaterID] = struct{}{}
		idSet[r.RatedUserID] = struct{}{}
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

	enriched := make([]models.EnrichedRating, 0, len(ratings))
	for _, r := range ratings {
		entry := models.EnrichedRating{Rating: r}
		if u, ok := byID[r.RaterID]; ok {
			entry.Rater = &u
		}
		if u, ok := byID[r.RatedUserID]; ok {
			entry.RatedUser = &u
		}
		enriched = append(enriched, entry)
	}

	return enriched, nil
}
