package booking

import (
	"context"

	"gigbook/models"
)

// CreateBookingInput is the payload for booking creation. The client books
// exactly one provider, referenced by id and kind.
type CreateBookingInput struct {
	ProviderID   string `json:"providerId" binding:"required"`
	ProviderType string `json:"providerType" binding:"required"`
	Date         string `json:"date" binding:"required"`      // "2006-01-02"
	StartTime    string `json:"startTime" binding:"required"` // "HH:MM"
	EndTime      string `json:"endTime" binding:"required"`   // "HH:MM"
}

// PaymentInput is the payload for payment-status changes. Method and
// payment id come from the external payment collaborator.
type PaymentInput struct {
	PaymentStatus string `json:"paymentStatus" binding:"required"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	PaymentID     string `json:"paymentId,omitempty"`
}

// BookingService is the booking engine's lifecycle surface.
type BookingService interface {
	CreateBooking(ctx context.Context, actor models.Actor, input CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, actor models.Actor, id string) (*models.Booking, error)
	ListClientBookings(ctx context.Context, actor models.Actor) ([]models.Booking, error)
	ListProviderBookings(ctx context.Context, actor models.Actor, providerID, date string) ([]models.Booking, error)
	// ChangeStatus applies a status transition. Admin-initiated
	// cancellations require a reason.
	ChangeStatus(ctx context.Context, actor models.Actor, id string, to models.BookingStatus, cancellationReason string) (*models.Booking, error)
	// ChangePayment applies a payment-status transition. Refunds are
	// admin-only.
	ChangePayment(ctx context.Context, actor models.Actor, id string, input PaymentInput) (*models.Booking, error)
	// DeleteBooking hard-deletes an unpaid booking. Paid bookings are
	// never removed.
	DeleteBooking(ctx context.Context, actor models.Actor, id string) error
	// AttachRating records the client's review on a completed booking and
	// feeds the provider's rating aggregate.
	AttachRating(ctx context.Context, actor models.Actor, id string, score int, review string) (*models.Booking, error)
	// ExpirePending cancels a booking still pending and unpaid once its
	// payment window has elapsed. Invoked by the expiry worker.
	ExpirePending(ctx context.Context, id string) error
}
