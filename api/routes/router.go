// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"cinebook/internal/auth"
	"cinebook/internal/bookings"
	"cinebook/internal/cancellation"
	"cinebook/internal/movies"
	"cinebook/internal/notifications"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/slots"
	"cinebook/internal/theatres"
	"cinebook/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB
	sink   notifications.Sink

	// Services kept for cross-domain dependency injection
	movieService   movies.Service
	theatreService theatres.Service
	slotService    slots.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, sink notifications.Sink) *Router {
	return &Router{
		config: cfg,
		db:     db,
		sink:   sink,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	registerValidations()

	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Catalog routes come first: slots depend on movies and theatres,
		// bookings and the cascade coordinator depend on slots.
		r.setupMovieRoutes(api)
		r.setupTheatreRoutes(api)
		r.setupSlotAndBookingRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "cinebook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "cinebook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)

	auth.SetupAuthRoutes(rg, authController)
}

// setupMovieRoutes configures movie catalog routes
func (r *Router) setupMovieRoutes(rg *gin.RouterGroup) {
	movieRepo := movies.NewRepository(r.db.GetPostgreSQL())
	movieService := movies.NewService(movieRepo)
	movieController := movies.NewController(movieService)

	// Store movie service for dependency injection into slots
	r.movieService = movieService

	movies.SetupMovieRoutes(rg, movieController)
}

// setupTheatreRoutes configures theatre and auditorium management routes
func (r *Router) setupTheatreRoutes(rg *gin.RouterGroup) {
	theatreRepo := theatres.NewRepository(r.db.GetPostgreSQL())
	theatreService := theatres.NewService(theatreRepo)
	theatreController := theatres.NewController(theatreService)

	// Store theatre service for dependency injection into slots
	r.theatreService = theatreService

	theatres.SetupTheatreRoutes(rg, theatreController)
}

// setupSlotAndBookingRoutes configures slot, booking and cascade routes.
// These are wired together because the cancellation coordinator sits between
// the theatre, slot and booking domains.
func (r *Router) setupSlotAndBookingRoutes(rg *gin.RouterGroup) {
	slotRepo := slots.NewRepository(r.db.GetPostgreSQL())
	slotService := slots.NewService(slotRepo, r.movieService, r.theatreService, r.config.Redis.FreeSlotTTL)
	slotService.SetCacheService(cache.NewService(r.db.GetRedis()))
	slotController := slots.NewController(slotService)
	r.slotService = slotService

	cancelRepo := cancellation.NewRepository(r.db.GetPostgreSQL())
	cancelService := cancellation.NewService(cancelRepo, r.sink)
	cancelService.SetAvailabilityInvalidator(slotService)

	// Inject the cascade coordinator into both mutation paths
	r.theatreService.SetCascadeCoordinator(cancelService)
	slotService.SetCascadeCoordinator(cancelService)

	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(bookingRepo, slotService, r.sink)
	bookingController := bookings.NewController(bookingService)

	slots.SetupSlotRoutes(rg, slotController, bookingController.BookSeats)
	bookings.SetupBookingRoutes(rg, bookingController)
}
