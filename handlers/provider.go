package handlers

import (
	"fmt"
	"net/http"

	"gigbook/middleware"
	"gigbook/models"
	"gigbook/services/availability"
	"gigbook/services/booking"
	"gigbook/services/provider"

	"github.com/gin-gonic/gin"
)

// ProviderHandler exposes provider profiles, weekly availability, and the
// derived bookable slots.
type ProviderHandler struct {
	Service      provider.ProviderService
	Availability availability.AvailabilityService
	Booking      booking.BookingService
}

func NewProviderHandler(svc provider.ProviderService, avail availability.AvailabilityService, bookingSvc booking.BookingService) *ProviderHandler {
	return &ProviderHandler{Service: svc, Availability: avail, Booking: bookingSvc}
}

func (h *ProviderHandler) CreateProvider(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input provider.CreateProviderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	p, err := h.Service.CreateProvider(actor, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProviderHandler) GetProvider(c *gin.Context) {
	p, err := h.Service.GetProvider(c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProviderHandler) ListProviders(c *gin.Context) {
	providers, err := h.Service.ListProviders()
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, providers)
}

func (h *ProviderHandler) UpdateProvider(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input provider.CreateProviderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	p, err := h.Service.UpdateProfile(actor, c.Param("id"), input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProviderHandler) DeleteProvider(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.Service.DeleteProvider(actor, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetDayAvailability replaces the provider's template for one weekday.
func (h *ProviderHandler) SetDayAvailability(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	providerID := c.Param("id")
	p, err := h.Service.GetProvider(providerID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !actor.IsAdmin() && actor.UserID != p.Profile.OwnerUserID {
		writeServiceError(c, provider.ErrUnauthorized)
		return
	}

	var input struct {
		Slots []models.AvailabilityInterval `json:"slots" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Availability.SetDay(providerID, c.Param("day"), input.Slots); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"day": c.Param("day"), "slots": input.Slots})
}

func (h *ProviderHandler) GetDayAvailability(c *gin.Context) {
	slots, err := h.Availability.GetDay(c.Param("id"), c.Param("day"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"day": c.Param("day"), "slots": slots})
}

// GetSlots returns the bookable "HH:MM" start times for a date. An empty
// list is a valid result for a closed or fully unset day.
func (h *ProviderHandler) GetSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	duration := 0
	if raw := c.Query("duration"); raw != "" {
		if _, err := fmt.Sscanf(raw, "%d", &duration); err != nil || duration <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duration must be a positive integer of minutes"})
			return
		}
	}

	slots, err := h.Availability.SlotsForDate(c.Request.Context(), c.Param("id"), date, duration)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// ListProviderBookings lists a provider's bookings for a date (owner or
// admin only).
func (h *ProviderHandler) ListProviderBookings(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	bookings, err := h.Booking.ListProviderBookings(c.Request.Context(), actor, c.Param("id"), date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}
