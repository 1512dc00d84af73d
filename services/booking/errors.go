package booking

import (
	"errors"
	"fmt"

	"gigbook/models"
)

var (
	// ErrUnauthorized means the actor is not the booking's client, the
	// provider's owner, or an admin.
	ErrUnauthorized = errors.New("actor not permitted to modify this booking")
	// ErrSlotConflict means a non-cancelled booking already occupies the
	// requested provider/date/time range.
	ErrSlotConflict = errors.New("slot already booked")
	// ErrNotFound means the referenced booking or provider is missing.
	ErrNotFound = errors.New("booking not found")
	// ErrInvalidRate means pricing input was rejected.
	ErrInvalidRate = errors.New("hourly rate must be >= 0 and duration > 0")
	// ErrPaidDeletion means a hard delete was attempted on a paid booking.
	ErrPaidDeletion = errors.New("paid bookings cannot be deleted")
	// ErrMissingReason means an admin cancellation arrived without a reason.
	ErrMissingReason = errors.New("admin cancellation requires a reason")
	// ErrNotElapsed means completion was attempted before the booking's
	// end time passed.
	ErrNotElapsed = errors.New("booking time has not elapsed yet")
	// ErrRatingNotAllowed means a rating was attached to a booking that is
	// not completed, or by someone other than its client.
	ErrRatingNotAllowed = errors.New("only the client of a completed booking may rate it")
	// ErrConcurrentModification means the booking changed between the read
	// and the guarded write; the caller should re-read and retry.
	ErrConcurrentModification = errors.New("booking was modified concurrently")
)

const (
	CodeMalformedTime         = "malformedTime"
	CodeInvalidDate           = "invalidDate"
	CodeInvalidInterval       = "invalidInterval"
	CodeInvalidProviderType   = "invalidProviderType"
	CodeInvalidPaymentStatus  = "invalidPaymentStatus"
	CodeMissingPaymentDetails = "missingPaymentDetails"
)

// ValidationError reports booking input rejected before any state change.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newValidationError(code, format string, args ...any) error {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// TransitionError reports an illegal status change with enough detail for a
// user-facing message.
type TransitionError struct {
	From models.BookingStatus
	To   models.BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// PaymentTransitionError reports an illegal payment-status change.
type PaymentTransitionError struct {
	From models.PaymentStatus
	To   models.PaymentStatus
}

func (e *PaymentTransitionError) Error() string {
	return fmt.Sprintf("invalid payment transition from %s to %s", e.From, e.To)
}
