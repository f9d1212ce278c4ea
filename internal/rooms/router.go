package rooms

import (
	"cinehall/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoomRoutes(router *gin.RouterGroup, controller Controller) {
	publicRooms := router.Group("/rooms")
	{
		publicRooms.GET("", controller.ListRooms)
		publicRooms.GET("/:id", controller.GetRoom)
	}

	adminRooms := router.Group("/admin/rooms")
	adminRooms.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminRooms.POST("", controller.CreateRoom)
		adminRooms.PUT("/:id", controller.UpdateRoom)
		adminRooms.DELETE("/:id", controller.DeleteRoom)
	}
}
