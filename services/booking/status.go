package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "gigbook/database/repository/booking"
	"gigbook/models"
	"gigbook/utils"

	"go.uber.org/zap"
)

// ChangeStatus applies a lifecycle transition after checking authorization
// and the transition table. Illegal changes surface as *TransitionError,
// never coerced to the nearest valid state.
//
// Confirmation and completion are provider actions: only the provider's
// owning user or an admin may drive them. Cancellation stays open to the
// booking's client as well.
func (s *DefaultBookingService) ChangeStatus(ctx context.Context, actor models.Actor, id string, to models.BookingStatus, cancellationReason string) (*models.Booking, error) {
	b, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	provider := s.loadProvider(b)
	if err := authorize(actor, b, provider); err != nil {
		return nil, err
	}
	if !CanTransition(b.Status, to) {
		return nil, &TransitionError{From: b.Status, To: to}
	}

	fromStatus, fromPayment := b.Status, b.PaymentStatus
	now := s.now()
	switch to {
	case models.StatusCancelled:
		if actor.Role == models.RoleAdmin && cancellationReason == "" {
			return nil, ErrMissingReason
		}
		b.CancellationReason = cancellationReason
		b.CancellationDate = &now

	case models.StatusConfirmed, models.StatusCompleted:
		// Provider actions: the client only ever cancels.
		if !actor.IsAdmin() && (provider == nil || actor.UserID != provider.Profile.OwnerUserID) {
			return nil, ErrUnauthorized
		}
		// Completion before the booked time has elapsed is blocked for
		// providers; admins may override.
		if to == models.StatusCompleted && !actor.IsAdmin() {
			end, err := b.EndMoment(time.Local)
			if err != nil {
				return nil, err
			}
			if now.Before(end) {
				return nil, ErrNotElapsed
			}
		}
	}

	b.Status = to
	b.UpdatedAt = now
	if err := s.Repo.UpdateGuarded(ctx, b, fromStatus, fromPayment); err != nil {
		if errors.Is(err, bookingRepo.ErrStale) {
			return nil, ErrConcurrentModification
		}
		return nil, err
	}

	utils.GetLogger().Info("booking status changed",
		zap.String("bookingId", b.ID),
		zap.String("status", string(to)),
		zap.String("actor", actor.UserID))
	return b, nil
}

// ExpirePending is the payment-window worker's entry point: cancel the
// booking if it is still pending and unpaid; otherwise do nothing.
func (s *DefaultBookingService) ExpirePending(ctx context.Context, id string) error {
	b, err := s.loadBooking(ctx, id)
	if err != nil {
		if err == ErrNotFound {
			return nil // already hard-deleted
		}
		return err
	}
	if b.Status != models.StatusPending || b.PaymentStatus != models.PaymentPending {
		return nil
	}

	now := s.now()
	b.Status = models.StatusCancelled
	b.CancellationReason = "payment window elapsed"
	b.CancellationDate = &now
	b.UpdatedAt = now
	if err := s.Repo.UpdateGuarded(ctx, b, models.StatusPending, models.PaymentPending); err != nil {
		// A payment or status change that landed after our read means the
		// booking is no longer expirable.
		if errors.Is(err, bookingRepo.ErrStale) {
			return nil
		}
		return err
	}

	utils.GetLogger().Info("booking expired",
		zap.String("bookingId", b.ID))
	return nil
}
