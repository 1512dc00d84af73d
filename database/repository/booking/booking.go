package bookingRepo

import (
	"context"
	"errors"

	"gigbook/models"
)

var (
	// ErrNotFound is returned when no booking matches the given id.
	ErrNotFound = errors.New("booking not found")
	// ErrOverlap is returned by CreateWithConflictCheck when a
	// non-cancelled booking already occupies the requested range.
	ErrOverlap = errors.New("overlapping booking exists")
	// ErrStale is returned by UpdateGuarded when the stored booking no
	// longer carries the expected status pair.
	ErrStale = errors.New("booking state changed since read")
)

// BookingRepository defines the interface for booking data access.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// CreateWithConflictCheck inserts the booking only if no non-cancelled
	// booking overlaps it for the same provider and date. The check and
	// insert run as one atomic unit; the loser gets ErrOverlap.
	CreateWithConflictCheck(ctx context.Context, booking *models.Booking) error
	// UpdateGuarded replaces the booking only while the stored document
	// still carries the given status and payment status, so two
	// read-modify-write callers cannot silently overwrite each other's
	// axis. The loser gets ErrStale.
	UpdateGuarded(ctx context.Context, booking *models.Booking, fromStatus models.BookingStatus, fromPayment models.PaymentStatus) error
	// Delete hard-deletes a booking. Callers must only use it for unpaid
	// bookings; paid bookings are never removed.
	Delete(ctx context.Context, id string) error
	ListByClient(ctx context.Context, clientID string) ([]models.Booking, error)
	ListByProviderDate(ctx context.Context, providerID, date string) ([]models.Booking, error)
}
