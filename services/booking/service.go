package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "gigbook/database/repository/booking"
	providerRepo "gigbook/database/repository/provider"
	"gigbook/models"
	"gigbook/services/rating"
)

// ExpiryScheduler schedules the payment-window expiry check for a freshly
// created booking.
type ExpiryScheduler interface {
	ScheduleExpiry(bookingID string, fireAt time.Time) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	ProviderRepo providerRepo.ProviderRepository
	Locker       SlotLocker
	Verifier     PaymentVerifier
	RatingSvc    rating.RatingService
	Expiry       ExpiryScheduler

	// ServiceFeePercent is the platform surcharge applied at creation.
	ServiceFeePercent float64
	// PaymentWindow is how long a pending booking may stay unpaid.
	PaymentWindow time.Duration

	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) loadBooking(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// loadProvider fetches the booking's referenced provider for ownership
// checks. A vanished provider does not block admin or client actions.
func (s *DefaultBookingService) loadProvider(b *models.Booking) *models.Provider {
	providerID, _ := b.ProviderRef()
	provider, err := s.ProviderRepo.GetByID(providerID)
	if err != nil {
		return nil
	}
	return provider
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, actor models.Actor, id string) (*models.Booking, error) {
	b, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, b, s.loadProvider(b)); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *DefaultBookingService) ListClientBookings(ctx context.Context, actor models.Actor) ([]models.Booking, error) {
	return s.Repo.ListByClient(ctx, actor.UserID)
}

func (s *DefaultBookingService) ListProviderBookings(ctx context.Context, actor models.Actor, providerID, date string) ([]models.Booking, error) {
	provider, err := s.ProviderRepo.GetByID(providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin() && actor.UserID != provider.Profile.OwnerUserID {
		return nil, ErrUnauthorized
	}
	return s.Repo.ListByProviderDate(ctx, providerID, date)
}

// DeleteBooking hard-deletes an unpaid booking; once paid a booking is
// never physically removed.
func (s *DefaultBookingService) DeleteBooking(ctx context.Context, actor models.Actor, id string) error {
	b, err := s.loadBooking(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, b, s.loadProvider(b)); err != nil {
		return err
	}
	if b.PaymentStatus != models.PaymentPending {
		return ErrPaidDeletion
	}
	return s.Repo.Delete(ctx, id)
}
