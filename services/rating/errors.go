package rating

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateRating means the user already rated this provider.
	ErrDuplicateRating = errors.New("user has already rated this provider")
	// ErrUnauthorized means the actor may not remove ratings.
	ErrUnauthorized = errors.New("actor not permitted to remove ratings")
	// ErrNotFound means the referenced provider or rating is missing.
	ErrNotFound = errors.New("rating not found")
)

// ScoreError reports a rating outside the 1..5 scale.
type ScoreError struct {
	Score int
}

func (e *ScoreError) Error() string {
	return fmt.Sprintf("rating %d is outside the 1..5 scale", e.Score)
}
