package routes

import (
	controller "go-restaurant-ordering/controllers"

	"github.com/gin-gonic/gin"
)

func PublicRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/", controller.Index())
	incomingRoutes.POST("/contact", controller.SubmitContact())
}
