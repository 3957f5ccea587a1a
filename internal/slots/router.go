package slots

import (
	"github.com/gin-gonic/gin"

	"cinebook/internal/shared/middleware"
)

func SetupSlotRoutes(router *gin.RouterGroup, controller Controller, bookHandler gin.HandlerFunc) {
	adminSlots := router.Group("/slots")
	adminSlots.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminSlots.GET("/free", controller.GetFreeSlots)
		adminSlots.POST("/batch", controller.CreateSlotBatch)
		adminSlots.DELETE("/:slotId", controller.DeleteSlot)
	}

	// Booking lives under the slot it targets; the handler comes from the
	// booking domain.
	userSlots := router.Group("/slots")
	userSlots.Use(middleware.JWTAuth())
	{
		userSlots.POST("/:slotId/book", bookHandler)
	}
}
