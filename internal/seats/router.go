package seats

import "github.com/gin-gonic/gin"

func SetupSeatRoutes(router *gin.RouterGroup, controller Controller) {
	// Seat availability is public: customers pick seats before login.
	router.GET("/sessions/:id/seats", controller.GetSeatMap)
}
