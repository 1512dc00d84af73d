package booking

import "math"

// CostBreakdown is the result of pricing a booking.
type CostBreakdown struct {
	BaseCost   float64 `json:"baseCost"`
	ServiceFee float64 `json:"serviceFee"`
	Total      float64 `json:"total"`
}

// ComputeCost prices a booking from the provider's hourly rate, the booked
// duration, and the platform service-fee percentage. The base cost carries
// no rounding; the fee is rounded half-up to the nearest currency unit.
//
// Pure function; it runs exactly once at booking creation and is never
// re-invoked on update. A price change requires a new booking.
func ComputeCost(hourlyRate, durationHours, serviceFeePercent float64) (CostBreakdown, error) {
	if hourlyRate < 0 || durationHours <= 0 {
		return CostBreakdown{}, ErrInvalidRate
	}

	baseCost := hourlyRate * durationHours
	serviceFee := math.Floor(baseCost*serviceFeePercent/100 + 0.5)
	return CostBreakdown{
		BaseCost:   baseCost,
		ServiceFee: serviceFee,
		Total:      baseCost + serviceFee,
	}, nil
}
