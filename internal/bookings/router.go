package bookings

import (
	"flyviet/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - creation needs a draft token, retrieval is open so the
	// confirmation page can render by booking number
	publicBookings := router.Group("/bookings")
	{
		publicBookings.POST("", middleware.DraftToken(), controller.CreateBooking) // POST /api/bookings
		publicBookings.GET("/:bookingId", controller.GetBooking)                   // GET /api/bookings/:bookingId
		publicBookings.PATCH("/:bookingId/payment", controller.UpdatePayment)      // PATCH /api/bookings/:bookingId/payment
	}

	// Admin routes - back-office listing and cancellation
	adminBookings := router.Group("/admin/bookings")
	adminBookings.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminBookings.GET("", controller.GetAllBookings)                  // GET /api/admin/bookings
		adminBookings.GET("/:bookingId", controller.GetBooking)           // GET /api/admin/bookings/:bookingId
		adminBookings.PUT("/:bookingId/cancel", controller.CancelBooking) // PUT /api/admin/bookings/:bookingId/cancel
	}
}
