package auth

import (
	"github.com/gin-gonic/gin"

	"cinebook/internal/shared/middleware"
)

func SetupAuthRoutes(router *gin.RouterGroup, controller Controller) {
	authPublic := router.Group("/auth")
	{
		authPublic.POST("/register", controller.Register)
		authPublic.POST("/login", controller.Login)
		authPublic.POST("/refresh", controller.RefreshToken)
	}

	authProtected := router.Group("/auth")
	authProtected.Use(middleware.JWTAuth())
	{
		authProtected.POST("/change-password", controller.ChangePassword)
		authProtected.GET("/profile", controller.GetProfile)
	}
}
