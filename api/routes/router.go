// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"cinehall/internal/auth"
	"cinehall/internal/bookings"
	"cinehall/internal/movies"
	"cinehall/internal/notifications"
	"cinehall/internal/rooms"
	"cinehall/internal/seats"
	"cinehall/internal/sessions"
	"cinehall/internal/shared/clock"
	"cinehall/internal/shared/config"
	"cinehall/internal/shared/database"
	"cinehall/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	clock    clock.Clock
	cache    cache.Service
	producer notifications.Producer
}

// NewRouter creates a new router instance. The producer is optional;
// when nil, purchases commit without emitting notifications.
func NewRouter(cfg *config.Config, db *database.DB, clk clock.Clock, producer notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		clock:    clk,
		cache:    cache.NewService(db.GetRedisClient()),
		producer: producer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		pg := r.db.GetPostgreSQL()

		// Auth
		authRepo := auth.NewRepository(pg)
		authService := auth.NewService(authRepo, r.config)
		authController := auth.NewController(authService)
		auth.NewRouter(authController).SetupRoutes(api)

		// Rooms
		roomRepo := rooms.NewRepository(pg)
		roomService := rooms.NewService(roomRepo, r.clock)
		rooms.SetupRoomRoutes(api, rooms.NewController(roomService))

		// Movies
		movieRepo := movies.NewRepository(pg)
		movieService := movies.NewService(movieRepo)
		movies.SetupMovieRoutes(api, movies.NewController(movieService))

		// Sessions
		sessionRepo := sessions.NewRepository(pg)
		sessionService := sessions.NewService(sessionRepo, movieRepo,
			r.config.Scheduling.BreakMinutes, r.config.Redis.ListingTTL)
		sessionService.SetCacheService(r.cache)
		sessions.SetupSessionRoutes(api, sessions.NewController(sessionService, r.clock))

		// Seats
		seatRepo := seats.NewRepository(pg)
		seatService := seats.NewService(seatRepo, r.config.Redis.SeatMapTTL)
		seatService.SetCacheService(r.cache)
		seats.SetupSeatRoutes(api, seats.NewController(seatService))

		// Bookings
		bookingRepo := bookings.NewRepository(pg)
		bookingService := bookings.NewService(bookingRepo, sessionRepo, seatService, r.clock)
		if r.producer != nil {
			userDirectory := auth.NewUserDirectoryAdapter(authRepo)
			bookingService.SetNotifier(notifications.NewService(r.producer, userDirectory, sessionRepo))
		}
		bookings.SetupBookingRoutes(api, bookings.NewController(bookingService))
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
				"service":   "cinehall-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "cinehall-backend",
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
