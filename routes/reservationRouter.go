package routes

import (
	controller "go-restaurant-ordering/controllers"

	"github.com/gin-gonic/gin"
)

func ReservationRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/make-reservation", controller.MakeReservation())
	incomingRoutes.GET("/my-reservations", controller.MyReservations())
}
