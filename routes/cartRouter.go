package routes

import (
	controller "go-restaurant-ordering/controllers"

	"github.com/gin-gonic/gin"
)

func CartRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/cart", controller.GetCart())
	incomingRoutes.POST("/add-to-cart/:item_id", controller.AddToCart())
	incomingRoutes.POST("/update-cart-item/:cart_item_id", controller.UpdateCartItem())
}
