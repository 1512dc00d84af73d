package rating

import (
	"context"
	"errors"
	"time"

	providerRepo "gigbook/database/repository/provider"
	ratingRepo "gigbook/database/repository/rating"
	"gigbook/models"
	"gigbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RatingService maintains provider ratings and their derived aggregate.
// Every mutation leaves averageRating equal to the one-decimal rounded mean
// of the current ratings and reviewCount equal to their count; the
// recomputation is atomic with the mutation.
type RatingService interface {
	AddRating(ctx context.Context, actor models.Actor, providerID string, score int, review string) (*models.Rating, ratingRepo.Aggregate, error)
	// RemoveRating is admin moderation; removing the last rating resets
	// the aggregate to 0/0.
	RemoveRating(ctx context.Context, actor models.Actor, providerID, ratingID string) (ratingRepo.Aggregate, error)
	ListRatings(ctx context.Context, providerID string) ([]models.Rating, error)
}

// DefaultRatingService is the concrete implementation.
type DefaultRatingService struct {
	Repo         ratingRepo.RatingRepository
	ProviderRepo providerRepo.ProviderRepository
}

// overridable for tests
var timeNow = time.Now

func (s *DefaultRatingService) AddRating(ctx context.Context, actor models.Actor, providerID string, score int, review string) (*models.Rating, ratingRepo.Aggregate, error) {
	if score < 1 || score > 5 {
		return nil, ratingRepo.Aggregate{}, &ScoreError{Score: score}
	}
	provider, err := s.ProviderRepo.GetByID(providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, ratingRepo.Aggregate{}, ErrNotFound
		}
		return nil, ratingRepo.Aggregate{}, err
	}

	r := &models.Rating{
		ID:         uuid.New().String(),
		ProviderID: provider.ID,
		UserID:     actor.UserID,
		Rating:     score,
		Review:     review,
		Date:       timeNow(),
	}

	agg, err := s.Repo.AddWithAggregate(ctx, r)
	if err != nil {
		if errors.Is(err, ratingRepo.ErrDuplicate) {
			return nil, ratingRepo.Aggregate{}, ErrDuplicateRating
		}
		return nil, ratingRepo.Aggregate{}, err
	}

	utils.GetLogger().Info("rating added",
		zap.String("providerId", provider.ID),
		zap.String("userId", actor.UserID),
		zap.Int("rating", score),
		zap.Float64("averageRating", agg.AverageRating),
		zap.Int("reviewCount", agg.ReviewCount))
	return r, agg, nil
}

func (s *DefaultRatingService) RemoveRating(ctx context.Context, actor models.Actor, providerID, ratingID string) (ratingRepo.Aggregate, error) {
	if !actor.IsAdmin() {
		return ratingRepo.Aggregate{}, ErrUnauthorized
	}

	agg, err := s.Repo.RemoveWithAggregate(ctx, providerID, ratingID)
	if err != nil {
		if errors.Is(err, ratingRepo.ErrNotFound) {
			return ratingRepo.Aggregate{}, ErrNotFound
		}
		return ratingRepo.Aggregate{}, err
	}

	utils.GetLogger().Info("rating removed",
		zap.String("providerId", providerID),
		zap.String("ratingId", ratingID),
		zap.Float64("averageRating", agg.AverageRating),
		zap.Int("reviewCount", agg.ReviewCount))
	return agg, nil
}

func (s *DefaultRatingService) ListRatings(ctx context.Context, providerID string) ([]models.Rating, error) {
	return s.Repo.ListByProvider(ctx, providerID)
}
