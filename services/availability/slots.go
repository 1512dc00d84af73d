package availability

import (
	"fmt"
	"time"

	"gigbook/models"
)

// DefaultSlotDurationMinutes is used when a caller does not request a
// specific slot width.
const DefaultSlotDurationMinutes = 60

// GenerateSlots expands the template entry matching date's weekday into the
// discrete bookable start times for that date. The sequence is finite and
// restartable; an empty result means a closed or unset day, not an error.
//
// Start times are emitted per interval in steps of slotDurationMinutes while
// the step's end still fits inside the interval. Intervals are walked in
// template order and duplicates across overlapping intervals are kept.
func GenerateSlots(tpl []models.DayTemplate, date string, slotDurationMinutes int) ([]string, error) {
	if slotDurationMinutes <= 0 {
		return nil, fmt.Errorf("slot duration must be positive, got %d", slotDurationMinutes)
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	weekday := models.WeekdayName(day.Weekday())

	var entry *models.DayTemplate
	for i := range tpl {
		if tpl[i].Day == weekday {
			entry = &tpl[i]
			break
		}
	}
	if entry == nil {
		return []string{}, nil
	}

	starts := []string{}
	for _, iv := range entry.Slots {
		if !iv.IsAvailable {
			continue
		}
		start, err := models.ParseClock(iv.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := models.ParseClock(iv.EndTime)
		if err != nil {
			return nil, err
		}
		for step := start; step+slotDurationMinutes <= end; step += slotDurationMinutes {
			// A slot may never spill past midnight into the next day.
			if step+slotDurationMinutes > models.MinutesPerDay {
				break
			}
			starts = append(starts, models.FormatClock(step))
		}
	}
	return starts, nil
}
