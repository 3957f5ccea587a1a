package movies

import (
	"github.com/gin-gonic/gin"

	"cinebook/internal/shared/middleware"
)

func SetupMovieRoutes(router *gin.RouterGroup, controller Controller) {
	movies := router.Group("/movies")
	movies.Use(middleware.JWTAuth())
	{
		// Browsing - admins see the full catalogue, users only movies with
		// upcoming screenings.
		movies.GET("", controller.ListMovies)
		movies.GET("/:movieId", controller.GetMovie)
	}

	adminMovies := router.Group("/movies")
	adminMovies.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminMovies.POST("", controller.CreateMovie)
		adminMovies.PATCH("/:movieId", controller.UpdateMovie)
	}
}
