package ratingRepo

import (
	"context"
	"errors"

	"gigbook/models"
)

var (
	// ErrNotFound is returned when no rating matches the given id.
	ErrNotFound = errors.New("rating not found")
	// ErrDuplicate is returned when the user already rated the provider.
	ErrDuplicate = errors.New("user already rated this provider")
)

// Aggregate is the derived pair recomputed on every rating mutation.
type Aggregate struct {
	AverageRating float64
	ReviewCount   int
}

// RatingRepository stores ratings in their own collection keyed by provider
// id, and keeps the provider's derived aggregate in step with every
// mutation.
type RatingRepository interface {
	GetByID(ctx context.Context, id string) (*models.Rating, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.Rating, error)
	// AddWithAggregate inserts the rating and recomputes the provider's
	// averageRating/reviewCount as one atomic unit.
	AddWithAggregate(ctx context.Context, rating *models.Rating) (Aggregate, error)
	// RemoveWithAggregate deletes the rating and recomputes the provider's
	// averageRating/reviewCount as one atomic unit.
	RemoveWithAggregate(ctx context.Context, providerID, ratingID string) (Aggregate, error)
}
