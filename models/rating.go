package models

import "time"

// Rating is one user's review of a provider. Ratings live in their own
// collection keyed by provider id so that aggregate recomputation does not
// rewrite the whole provider document.
type Rating struct {
	ID         string    `bson:"id" json:"id"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	UserID     string    `bson:"userId" json:"userId"`
	Rating     int       `bson:"rating" json:"rating"` // 1..5
	Review     string    `bson:"review,omitempty" json:"review,omitempty"`
	Date       time.Time `bson:"date" json:"date"`
}
