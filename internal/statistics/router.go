package statistics

import (
	"flyviet/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupStatisticsRoutes(router *gin.RouterGroup, controller Controller) {
	stats := router.Group("/admin/statistics")
	stats.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		stats.GET("/overview", controller.GetOverview)                      // GET /api/admin/statistics/overview
		stats.GET("/revenue", controller.GetRevenueByDate)                  // GET /api/admin/statistics/revenue?from&to
		stats.GET("/bookings", controller.GetBookingsByDate)                // GET /api/admin/statistics/bookings?from&to
		stats.GET("/payment-status", controller.GetBookingsByPaymentStatus) // GET /api/admin/statistics/payment-status
		stats.GET("/routes", controller.GetPopularRoutes)                   // GET /api/admin/statistics/routes?limit
		stats.GET("/compare", controller.ComparePeriods)                    // GET /api/admin/statistics/compare?from&to
	}
}
