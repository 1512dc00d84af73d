package routes

import (
	"gigbook/handlers"
	"gigbook/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all endpoints of the booking engine.
func RegisterRoutes(
	r *gin.Engine,
	providerHandler *handlers.ProviderHandler,
	bookingHandler *handlers.BookingHandler,
	ratingHandler *handlers.RatingHandler,
) {
	api := r.Group("/api")

	providers := api.Group("/providers")
	{
		providers.GET("", providerHandler.ListProviders)
		providers.GET("/:id", providerHandler.GetProvider)
		providers.GET("/:id/slots", providerHandler.GetSlots)
		providers.GET("/:id/availability/:day", providerHandler.GetDayAvailability)
		providers.GET("/:id/ratings", ratingHandler.ListRatings)

		authed := providers.Group("", middleware.AuthMiddleware())
		{
			authed.POST("", providerHandler.CreateProvider)
			authed.PUT("/:id", providerHandler.UpdateProvider)
			authed.DELETE("/:id", providerHandler.DeleteProvider)
			authed.PUT("/:id/availability/:day", providerHandler.SetDayAvailability)
			authed.GET("/:id/bookings", providerHandler.ListProviderBookings)
			authed.POST("/:id/ratings", ratingHandler.AddRating)
			authed.DELETE("/:id/ratings/:ratingId", middleware.RequireAdmin(), ratingHandler.RemoveRating)
		}
	}

	bookings := api.Group("/bookings", middleware.AuthMiddleware())
	{
		bookings.POST("", bookingHandler.CreateBooking)
		bookings.GET("", bookingHandler.ListMyBookings)
		bookings.GET("/:id", bookingHandler.GetBooking)
		bookings.PUT("/:id/status", bookingHandler.UpdateStatus)
		bookings.PUT("/:id/payment", bookingHandler.UpdatePayment)
		bookings.DELETE("/:id", bookingHandler.DeleteBooking)
		bookings.POST("/:id/rating", bookingHandler.RateBooking)
	}
}
