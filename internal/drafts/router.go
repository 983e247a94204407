package drafts

import (
	"flyviet/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupDraftRoutes(router *gin.RouterGroup, controller Controller) {
	drafts := router.Group("/drafts")
	{
		// Starting a draft issues the token; everything after requires it
		drafts.POST("", controller.StartDraft) // POST /api/drafts

		withToken := drafts.Group("")
		withToken.Use(middleware.DraftToken())
		{
			withToken.GET("/current", controller.GetDraft)            // GET /api/drafts/current
			withToken.POST("/select-flight", controller.SelectFlight) // POST /api/drafts/select-flight
			withToken.POST("/reset-selection", controller.ResetSelection)
			withToken.PUT("/customer", controller.SetCustomer)  // PUT /api/drafts/customer
			withToken.PUT("/services", controller.SetServices)  // PUT /api/drafts/services
			withToken.POST("/promo", controller.ApplyPromo)     // POST /api/drafts/promo
			withToken.DELETE("/current", controller.ClearDraft) // DELETE /api/drafts/current
		}
	}
}
