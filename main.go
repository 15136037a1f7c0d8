package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"go-restaurant-ordering/database"
	"go-restaurant-ordering/helpers"
	"go-restaurant-ordering/middleware"
	routes "go-restaurant-ordering/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	database.EnsureIndexes()

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:9000"},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Menu item images
	router.Static("/uploads", helpers.UploadDir())

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Page not found"})
	})

	// Public routes
	routes.PublicRoutes(router)
	routes.UserRoutes(router)

	// Everything below requires an authenticated identity
	router.Use(middleware.Authentication())
	routes.MenuRoutes(router)
	routes.CartRoutes(router)
	routes.OrderRoutes(router)
	routes.ReservationRoutes(router)
	routes.DashboardRoutes(router)

	router.Run(":" + port)
}
