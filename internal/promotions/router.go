package promotions

import (
	"flyviet/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPromotionRoutes(router *gin.RouterGroup, controller Controller) {
	// Public route - booking flow validates codes against the current total
	publicPromotions := router.Group("/promotions")
	{
		publicPromotions.POST("/validate", controller.ValidatePromotion) // POST /api/promotions/validate
	}

	// Admin routes - promotion management
	adminPromotions := router.Group("/admin/promotions")
	adminPromotions.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminPromotions.GET("", controller.GetAllPromotions)         // GET /api/admin/promotions
		adminPromotions.POST("", controller.CreatePromotion)         // POST /api/admin/promotions
		adminPromotions.GET("/:promoId", controller.GetPromotion)    // GET /api/admin/promotions/:promoId
		adminPromotions.PUT("/:promoId", controller.UpdatePromotion) // PUT /api/admin/promotions/:promoId
		adminPromotions.DELETE("/:promoId", controller.DeletePromotion)
	}
}
