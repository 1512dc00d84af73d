package handlers

import (
	"net/http"

	"gigbook/middleware"
	"gigbook/services/rating"

	"github.com/gin-gonic/gin"
)

// RatingHandler exposes provider ratings and their derived aggregate.
type RatingHandler struct {
	Service rating.RatingService
}

func NewRatingHandler(svc rating.RatingService) *RatingHandler {
	return &RatingHandler{Service: svc}
}

func (h *RatingHandler) AddRating(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input struct {
		Rating int    `json:"rating" binding:"required"`
		Review string `json:"review,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	r, agg, err := h.Service.AddRating(c.Request.Context(), actor, c.Param("id"), input.Rating, input.Review)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"rating":        r,
		"averageRating": agg.AverageRating,
		"reviewCount":   agg.ReviewCount,
	})
}

func (h *RatingHandler) ListRatings(c *gin.Context) {
	ratings, err := h.Service.ListRatings(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ratings)
}

// RemoveRating is admin moderation; the provider aggregate is refreshed in
// the same operation.
func (h *RatingHandler) RemoveRating(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	agg, err := h.Service.RemoveRating(c.Request.Context(), actor, c.Param("id"), c.Param("ratingId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"averageRating": agg.AverageRating,
		"reviewCount":   agg.ReviewCount,
	})
}
