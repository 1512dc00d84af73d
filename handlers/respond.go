package handlers

import (
	"errors"
	"net/http"

	providerRepo "gigbook/database/repository/provider"
	"gigbook/services/availability"
	"gigbook/services/booking"
	"gigbook/services/provider"
	"gigbook/services/rating"
	"gigbook/utils"

	"github.com/gin-gonic/gin"
)

// writeServiceError maps engine errors onto HTTP statuses. Transition
// failures carry the current and attempted status so the caller can render
// a user-facing message.
func writeServiceError(c *gin.Context, err error) {
	var transitionErr *booking.TransitionError
	if errors.As(err, &transitionErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":           "invalid status transition",
			"currentStatus":   transitionErr.From,
			"attemptedStatus": transitionErr.To,
		})
		return
	}

	var paymentErr *booking.PaymentTransitionError
	if errors.As(err, &paymentErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":           "invalid payment transition",
			"currentStatus":   paymentErr.From,
			"attemptedStatus": paymentErr.To,
		})
		return
	}

	var validationErr *availability.ValidationError
	if errors.As(err, &validationErr) {
		utils.JSONError(c, http.StatusBadRequest, "invalid availability data", validationErr.Message)
		return
	}

	var bookingValidationErr *booking.ValidationError
	if errors.As(err, &bookingValidationErr) {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking data", bookingValidationErr.Message)
		return
	}

	var scoreErr *rating.ScoreError
	if errors.As(err, &scoreErr) {
		utils.JSONError(c, http.StatusBadRequest, "invalid rating", scoreErr.Error())
		return
	}

	switch {
	case errors.Is(err, booking.ErrSlotConflict),
		errors.Is(err, rating.ErrDuplicateRating),
		errors.Is(err, booking.ErrPaidDeletion),
		errors.Is(err, booking.ErrNotElapsed),
		errors.Is(err, booking.ErrConcurrentModification):
		utils.JSONError(c, http.StatusConflict, "conflict", err.Error())

	case errors.Is(err, booking.ErrUnauthorized),
		errors.Is(err, rating.ErrUnauthorized),
		errors.Is(err, provider.ErrUnauthorized),
		errors.Is(err, booking.ErrRatingNotAllowed):
		utils.JSONError(c, http.StatusForbidden, "forbidden", err.Error())

	case errors.Is(err, booking.ErrNotFound),
		errors.Is(err, rating.ErrNotFound),
		errors.Is(err, provider.ErrNotFound),
		errors.Is(err, providerRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())

	case errors.Is(err, booking.ErrInvalidRate),
		errors.Is(err, booking.ErrMissingReason):
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())

	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}
