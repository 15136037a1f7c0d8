package routes

import (
	controller "go-restaurant-ordering/controllers"
	"go-restaurant-ordering/middleware"

	"github.com/gin-gonic/gin"
)

func DashboardRoutes(incomingRoutes *gin.Engine) {
	dashboard := incomingRoutes.Group("/dashboard", middleware.StaffOnly())
	dashboard.GET("", controller.Dashboard())
	dashboard.GET("/orders", controller.AdminOrders())
	dashboard.POST("/orders/:order_id/status", controller.UpdateOrderStatus())
	dashboard.GET("/reservations", controller.AdminReservations())
	dashboard.GET("/reservations/events", controller.AdminReservationEvents())
	dashboard.POST("/reservations/:reservation_id/status", controller.UpdateReservationStatus())
	dashboard.GET("/menu", controller.AdminMenu())
	dashboard.POST("/menu/add", controller.CreateMenuItem())
	dashboard.POST("/menu/:item_id/edit", controller.UpdateMenuItem())
	dashboard.POST("/menu/:item_id/delete", controller.DeleteMenuItem())
	dashboard.POST("/menu/:item_id/availability", controller.ToggleAvailability())
	dashboard.POST("/categories", controller.CreateCategory())
	dashboard.DELETE("/categories/:category_id", controller.DeleteCategory())

	incomingRoutes.GET("/ws", middleware.StaffOnly(), controller.HandleWebSocket())
}
