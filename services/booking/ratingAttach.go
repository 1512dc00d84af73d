package booking

import (
	"context"
	"errors"

	bookingRepo "gigbook/database/repository/booking"
	"gigbook/models"
)

// AttachRating records the client's review on a completed booking. The
// provider aggregate is updated through the rating service, so the
// one-rating-per-(provider, user) rule and the derived average stay intact.
func (s *DefaultBookingService) AttachRating(ctx context.Context, actor models.Actor, id string, score int, review string) (*models.Booking, error) {
	b, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.UserID != b.ClientID || b.Status != models.StatusCompleted {
		return nil, ErrRatingNotAllowed
	}

	providerID, _ := b.ProviderRef()
	r, _, err := s.RatingSvc.AddRating(ctx, actor, providerID, score, review)
	if err != nil {
		return nil, err
	}

	b.Rating = &models.BookingRating{
		Rating: r.Rating,
		Review: r.Review,
		Date:   r.Date,
	}
	b.UpdatedAt = s.now()
	if err := s.Repo.UpdateGuarded(ctx, b, models.StatusCompleted, b.PaymentStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrStale) {
			return nil, ErrConcurrentModification
		}
		return nil, err
	}
	return b, nil
}
