package models

import "time"

// ProviderType distinguishes the two bookable provider kinds.
type ProviderType string

const (
	ProviderArtist ProviderType = "artist"
	ProviderStudio ProviderType = "studio"
)

// ParseProviderType validates a raw provider-type string.
func ParseProviderType(s string) (ProviderType, bool) {
	switch ProviderType(s) {
	case ProviderArtist, ProviderStudio:
		return ProviderType(s), true
	}
	return "", false
}

// Profile carries the presentation-facing basics of a provider.
type Profile struct {
	Name        string       `bson:"name" json:"name"`
	Type        ProviderType `bson:"type" json:"type"`
	OwnerUserID string       `bson:"ownerUserId" json:"ownerUserId"` // user allowed to act for this provider
	Email       string       `bson:"email" json:"email,omitempty"`
	Bio         string       `bson:"bio,omitempty" json:"bio,omitempty"`
	HourlyRate  float64      `bson:"hourlyRate" json:"hourlyRate"`
	Currency    string       `bson:"currency" json:"currency"`
}

// Provider is an artist or studio offering bookable time.
//
// AverageRating and ReviewCount are derived fields maintained by the rating
// aggregator; they are never set directly by a write path.
type Provider struct {
	ID            string        `bson:"id" json:"id"`
	Profile       Profile       `bson:"profile" json:"profile"`
	Availability  []DayTemplate `bson:"availability,omitempty" json:"availability,omitempty"`
	AverageRating float64       `bson:"averageRating" json:"averageRating"`
	ReviewCount   int           `bson:"reviewCount" json:"reviewCount"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// DayTemplateFor returns the template entry for the given weekday, or nil
// when the day is unset.
func (p *Provider) DayTemplateFor(day string) *DayTemplate {
	for i := range p.Availability {
		if p.Availability[i].Day == day {
			return &p.Availability[i]
		}
	}
	return nil
}
