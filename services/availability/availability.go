package availability

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"gigbook/config"
	providerRepo "gigbook/database/repository/provider"
	"gigbook/models"
	"gigbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AvailabilityService manages provider weekly templates and derives
// bookable slots from them.
type AvailabilityService interface {
	// SetDay replaces the slot list for the given weekday. Intervals are
	// validated on write; overlapping intervals are accepted.
	SetDay(providerID, day string, slots []models.AvailabilityInterval) error
	// GetDay returns the slot list for the given weekday, empty if unset.
	GetDay(providerID, day string) ([]models.AvailabilityInterval, error)
	// SlotsForDate expands the provider's template entry for the date's
	// weekday into "HH:MM" start times at the given duration.
	SlotsForDate(ctx context.Context, providerID, date string, slotDurationMinutes int) ([]string, error)
}

// DefaultAvailabilityService is the concrete implementation.
type DefaultAvailabilityService struct {
	Repo     providerRepo.ProviderRepository
	Cache    *redis.Client // optional short-TTL cache of generated slot lists
	CacheTTL time.Duration
}

// ValidateDaySlots checks a template write without persisting it.
func ValidateDaySlots(day string, slots []models.AvailabilityInterval) error {
	if !models.ValidWeekday(day) {
		return newInvalidDay(day)
	}
	for _, iv := range slots {
		start, err := models.ParseClock(iv.StartTime)
		if err != nil {
			return newMalformedTime(iv.StartTime)
		}
		end, err := models.ParseClock(iv.EndTime)
		if err != nil {
			return newMalformedTime(iv.EndTime)
		}
		if start >= end {
			return newInvalidInterval(iv.StartTime, iv.EndTime)
		}
	}
	return nil
}

func (s *DefaultAvailabilityService) SetDay(providerID, day string, slots []models.AvailabilityInterval) error {
	if err := ValidateDaySlots(day, slots); err != nil {
		return err
	}
	if err := s.Repo.SetDayTemplate(providerID, models.DayTemplate{Day: day, Slots: slots}); err != nil {
		return err
	}
	s.invalidateSlotCache(providerID)
	return nil
}

func (s *DefaultAvailabilityService) GetDay(providerID, day string) ([]models.AvailabilityInterval, error) {
	if !models.ValidWeekday(day) {
		return nil, newInvalidDay(day)
	}
	provider, err := s.Repo.GetByID(providerID)
	if err != nil {
		return nil, err
	}
	if tpl := provider.DayTemplateFor(day); tpl != nil {
		return tpl.Slots, nil
	}
	return []models.AvailabilityInterval{}, nil
}

func (s *DefaultAvailabilityService) SlotsForDate(ctx context.Context, providerID, date string, slotDurationMinutes int) ([]string, error) {
	if slotDurationMinutes <= 0 {
		slotDurationMinutes = config.AppConfig.SlotDurationMinutes
	}
	if slotDurationMinutes <= 0 {
		slotDurationMinutes = DefaultSlotDurationMinutes
	}

	cacheKey := slotCacheKey(providerID, date, slotDurationMinutes)
	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var cached []string
			if err := json.Unmarshal([]byte(data), &cached); err == nil {
				return cached, nil
			}
		}
	}

	provider, err := s.Repo.GetByID(providerID)
	if err != nil {
		return nil, err
	}
	slots, err := GenerateSlots(provider.Availability, date, slotDurationMinutes)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if data, err := json.Marshal(slots); err == nil {
			ttl := s.CacheTTL
			if ttl <= 0 {
				ttl = time.Minute
			}
			if err := s.Cache.Set(ctx, cacheKey, data, ttl).Err(); err != nil {
				utils.GetLogger().Warn("slot cache write failed", zap.Error(err))
			}
		}
	}
	return slots, nil
}

func slotCacheKey(providerID, date string, duration int) string {
	return "slots:" + providerID + ":" + date + ":" + strconv.Itoa(duration)
}

// invalidateSlotCache drops all cached slot lists for the provider after a
// template change. SCAN instead of KEYS: the keyspace is shared and KEYS
// blocks the server.
func (s *DefaultAvailabilityService) invalidateSlotCache(providerID string) {
	if s.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var keys []string
	iter := s.Cache.Scan(ctx, 0, "slots:"+providerID+":*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		utils.GetLogger().Warn("slot cache scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.Cache.Del(ctx, keys...).Err(); err != nil {
		utils.GetLogger().Warn("slot cache invalidation failed", zap.Error(err))
	}
}
