package sessions

import (
	"cinehall/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupSessionRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - browsing today's and tomorrow's screenings
	publicSessions := router.Group("/sessions")
	{
		publicSessions.GET("/today", controller.ListToday)
		publicSessions.GET("/tomorrow", controller.ListTomorrow)
		publicSessions.GET("/:id", controller.GetSession)
	}

	// Admin routes - schedule management
	adminSessions := router.Group("/admin/sessions")
	adminSessions.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminSessions.POST("", controller.CreateSession)
		adminSessions.PUT("/:id", controller.UpdateSession)
		adminSessions.DELETE("/:id", controller.DeleteSession)
	}
}
