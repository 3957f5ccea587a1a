package bookings

import (
	"github.com/gin-gonic/gin"

	"cinebook/internal/shared/middleware"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller Controller) {
	userBookings := router.Group("/bookings")
	userBookings.Use(middleware.JWTAuth())
	{
		userBookings.GET("", controller.ListMyBookings)
	}
}
