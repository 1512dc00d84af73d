package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "gigbook/database/repository/booking"
	"gigbook/models"
	"gigbook/utils"

	"go.uber.org/zap"
)

// PaymentVerifier confirms a payment reference with the external payment
// collaborator before the engine records it.
type PaymentVerifier interface {
	VerifyPayment(ctx context.Context, paymentID string, amount float64, currency string) error
}

// ChangePayment applies a payment-status transition on its own axis.
// pending→paid is driven by the booking's client (or an admin); paid→
// refunded is admin-only. refunded→paid is never permitted.
func (s *DefaultBookingService) ChangePayment(ctx context.Context, actor models.Actor, id string, input PaymentInput) (*models.Booking, error) {
	to, ok := models.ParsePaymentStatus(input.PaymentStatus)
	if !ok {
		return nil, newValidationError(CodeInvalidPaymentStatus, "unknown payment status %q", input.PaymentStatus)
	}

	b, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	provider := s.loadProvider(b)
	if err := authorize(actor, b, provider); err != nil {
		return nil, err
	}
	if !CanTransitionPayment(b.PaymentStatus, to) {
		return nil, &PaymentTransitionError{From: b.PaymentStatus, To: to}
	}
	fromStatus, fromPayment := b.Status, b.PaymentStatus

	switch to {
	case models.PaymentPaid:
		if !actor.IsAdmin() && actor.UserID != b.ClientID {
			return nil, ErrUnauthorized
		}
		if input.PaymentMethod == "" || input.PaymentID == "" {
			return nil, newValidationError(CodeMissingPaymentDetails, "payment method and payment id are required")
		}
		if s.Verifier != nil && input.PaymentMethod == "card" {
			currency := "USD"
			if provider != nil && provider.Profile.Currency != "" {
				currency = provider.Profile.Currency
			}
			if err := s.Verifier.VerifyPayment(ctx, input.PaymentID, b.TotalCost, currency); err != nil {
				return nil, fmt.Errorf("payment verification failed: %w", err)
			}
		}
		b.PaymentMethod = input.PaymentMethod
		b.PaymentID = input.PaymentID

	case models.PaymentRefunded:
		if actor.Role != models.RoleAdmin {
			return nil, ErrUnauthorized
		}
	}

	b.PaymentStatus = to
	b.UpdatedAt = s.now()
	if err := s.Repo.UpdateGuarded(ctx, b, fromStatus, fromPayment); err != nil {
		if errors.Is(err, bookingRepo.ErrStale) {
			return nil, ErrConcurrentModification
		}
		return nil, err
	}

	utils.GetLogger().Info("booking payment status changed",
		zap.String("bookingId", b.ID),
		zap.String("paymentStatus", string(to)),
		zap.String("method", b.PaymentMethod))
	return b, nil
}
