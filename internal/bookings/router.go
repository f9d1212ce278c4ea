package bookings

import (
	"cinehall/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller Controller) {
	// Customer routes - purchase and own-ticket listing
	tickets := router.Group("/tickets")
	tickets.Use(middleware.JWTAuth())
	{
		tickets.POST("", controller.Purchase)
		tickets.GET("", controller.GetMyTickets)
	}

	// Admin routes - inspect sales per session
	adminTickets := router.Group("/admin/sessions")
	adminTickets.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminTickets.GET("/:id/tickets", controller.GetSessionTickets)
	}
}
