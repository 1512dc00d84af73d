package models

import "time"

// BookingStatus is the lifecycle axis of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus validates a raw status string.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return BookingStatus(s), true
	}
	return "", false
}

// PaymentStatus is the payment axis, independent of BookingStatus.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// ParsePaymentStatus validates a raw payment-status string.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return PaymentStatus(s), true
	}
	return "", false
}

// BookingRating is the review a client attaches to a completed booking.
type BookingRating struct {
	Rating int       `bson:"rating" json:"rating"` // 1..5
	Review string    `bson:"review,omitempty" json:"review,omitempty"`
	Date   time.Time `bson:"date" json:"date"`
}

// Booking is a client's reservation of a provider's time.
//
// Exactly one of ArtistID or StudioID is set. TotalCost is computed once at
// creation and never recomputed; BaseCost and ServiceFee record its breakdown.
type Booking struct {
	ID                 string         `bson:"id" json:"id"`
	ClientID           string         `bson:"clientId" json:"clientId"`
	ArtistID           string         `bson:"artistId,omitempty" json:"artistId,omitempty"`
	StudioID           string         `bson:"studioId,omitempty" json:"studioId,omitempty"`
	Date               string         `bson:"date" json:"date"`           // "2006-01-02"
	StartTime          string         `bson:"startTime" json:"startTime"` // "HH:MM"
	EndTime            string         `bson:"endTime" json:"endTime"`     // "HH:MM"
	DurationHours      float64        `bson:"durationHours" json:"durationHours"`
	BaseCost           float64        `bson:"baseCost" json:"baseCost"`
	ServiceFee         float64        `bson:"serviceFee" json:"serviceFee"`
	TotalCost          float64        `bson:"totalCost" json:"totalCost"`
	Status             BookingStatus  `bson:"status" json:"status"`
	PaymentStatus      PaymentStatus  `bson:"paymentStatus" json:"paymentStatus"`
	PaymentMethod      string         `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	PaymentID          string         `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	CancellationReason string         `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CancellationDate   *time.Time     `bson:"cancellationDate,omitempty" json:"cancellationDate,omitempty"`
	Rating             *BookingRating `bson:"rating,omitempty" json:"rating,omitempty"`
	CreatedAt          time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// ProviderRef returns the referenced provider's id and kind.
func (b *Booking) ProviderRef() (string, ProviderType) {
	if b.ArtistID != "" {
		return b.ArtistID, ProviderArtist
	}
	return b.StudioID, ProviderStudio
}

// EndMoment resolves the booking's date and end time into an absolute
// instant in the given location.
func (b *Booking) EndMoment(loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", b.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	endMin, err := ParseClock(b.EndTime)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(endMin) * time.Minute), nil
}
