package routes

import (
	controller "go-restaurant-ordering/controllers"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/checkout", controller.Checkout())
	incomingRoutes.GET("/order-confirmation/:order_id", controller.OrderConfirmation())
	incomingRoutes.GET("/my-orders", controller.MyOrders())
}
