package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "gigbook/database/repository/booking"
	providerRepo "gigbook/database/repository/provider"
	"gigbook/models"
	"gigbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking prices and persists a new booking in pending/pending state.
// The per-(provider, date) lock serializes concurrent creators so at most
// one non-cancelled booking can hold a given provider/date/time range; the
// Mongo transaction keeps the conflict check and insert consistent against
// committed state.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, actor models.Actor, input CreateBookingInput) (*models.Booking, error) {
	logger := utils.GetLogger()

	providerType, ok := models.ParseProviderType(input.ProviderType)
	if !ok {
		return nil, newValidationError(CodeInvalidProviderType, "unknown provider type %q", input.ProviderType)
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return nil, newValidationError(CodeInvalidDate, "invalid date %q: want YYYY-MM-DD", input.Date)
	}
	startMin, err := models.ParseClock(input.StartTime)
	if err != nil {
		return nil, newValidationError(CodeMalformedTime, "%v", err)
	}
	endMin, err := models.ParseClock(input.EndTime)
	if err != nil {
		return nil, newValidationError(CodeMalformedTime, "%v", err)
	}
	if startMin >= endMin {
		return nil, newValidationError(CodeInvalidInterval, "start time %s must be before end time %s", input.StartTime, input.EndTime)
	}

	provider, err := s.ProviderRepo.GetByID(input.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if provider.Profile.Type != providerType {
		return nil, newValidationError(CodeInvalidProviderType, "provider %s is not a %s", input.ProviderID, providerType)
	}

	durationHours := float64(endMin-startMin) / 60.0
	cost, err := ComputeCost(provider.Profile.HourlyRate, durationHours, s.ServiceFeePercent)
	if err != nil {
		return nil, err
	}

	now := s.now()
	b := &models.Booking{
		ID:            uuid.New().String(),
		ClientID:      actor.UserID,
		Date:          input.Date,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		DurationHours: durationHours,
		BaseCost:      cost.BaseCost,
		ServiceFee:    cost.ServiceFee,
		TotalCost:     cost.Total,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if providerType == models.ProviderArtist {
		b.ArtistID = provider.ID
	} else {
		b.StudioID = provider.ID
	}

	if s.Locker != nil {
		release, err := s.Locker.Lock(ctx, LockKey(provider.ID, input.Date))
		if err != nil {
			return nil, err
		}
		defer release()
	}

	if err := s.Repo.CreateWithConflictCheck(ctx, b); err != nil {
		if errors.Is(err, bookingRepo.ErrOverlap) {
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	if s.Expiry != nil && s.PaymentWindow > 0 {
		if err := s.Expiry.ScheduleExpiry(b.ID, now.Add(s.PaymentWindow)); err != nil {
			logger.Warn("failed to schedule booking expiry",
				zap.String("bookingId", b.ID), zap.Error(err))
		}
	}

	logger.Info("booking created",
		zap.String("bookingId", b.ID),
		zap.String("providerId", provider.ID),
		zap.String("date", b.Date),
		zap.String("startTime", b.StartTime),
		zap.Float64("totalCost", b.TotalCost))
	return b, nil
}
