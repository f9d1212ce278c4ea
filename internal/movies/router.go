package movies

import (
	"cinehall/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupMovieRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - anyone can browse the catalogue
	publicMovies := router.Group("/movies")
	{
		publicMovies.GET("", controller.ListMovies)
		publicMovies.GET("/:id", controller.GetMovie)
	}

	// Admin routes - catalogue management
	adminMovies := router.Group("/admin/movies")
	adminMovies.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminMovies.POST("", controller.CreateMovie)
		adminMovies.PUT("/:id", controller.UpdateMovie)
		adminMovies.DELETE("/:id", controller.DeleteMovie)
	}
}
