package auth

import (
	"flyviet/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(router *gin.RouterGroup, controller Controller) {
	adminAuth := router.Group("/admin/auth")
	{
		adminAuth.POST("/login", controller.Login) // POST /api/admin/auth/login

		protected := adminAuth.Group("")
		protected.Use(middleware.JWTAuth(), middleware.RequireAdmin())
		{
			protected.PUT("/change-password", controller.ChangePassword) // PUT /api/admin/auth/change-password
			protected.GET("/me", controller.GetMe)                       // GET /api/admin/auth/me
		}
	}
}
