package flights

import (
	"flyviet/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupFlightRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - anyone can search and view flights
	publicFlights := router.Group("/flights")
	{
		publicFlights.GET("", controller.SearchFlights)       // GET /api/flights?departure&destination&departDate
		publicFlights.GET("/:flightId", controller.GetFlight) // GET /api/flights/:flightId
	}

	// Admin routes - flight management
	adminFlights := router.Group("/admin/flights")
	adminFlights.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminFlights.GET("", controller.GetAllFlights)             // GET /api/admin/flights
		adminFlights.POST("", controller.CreateFlight)             // POST /api/admin/flights
		adminFlights.PUT("/:flightId", controller.UpdateFlight)    // PUT /api/admin/flights/:flightId
		adminFlights.DELETE("/:flightId", controller.DeleteFlight) // DELETE /api/admin/flights/:flightId
	}
}
