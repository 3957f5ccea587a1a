package theatres

import (
	"github.com/gin-gonic/gin"

	"cinebook/internal/shared/middleware"
)

func SetupTheatreRoutes(router *gin.RouterGroup, controller Controller) {
	theatres := router.Group("/theatres")
	theatres.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		theatres.POST("", controller.CreateTheatre)
		theatres.GET("", controller.ListTheatres)
		theatres.GET("/:theatreId", controller.GetTheatre)
		theatres.PATCH("/:theatreId", controller.UpdateTheatre)

		theatres.POST("/:theatreId/auditoriums", controller.CreateAuditorium)
		theatres.GET("/:theatreId/auditoriums", controller.ListAuditoriums)
		theatres.PATCH("/:theatreId/auditoriums/:audiId", controller.UpdateAuditorium)
		theatres.DELETE("/:theatreId/auditoriums/:audiId", controller.DeleteAuditorium)
	}
}
