package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"go-restaurant-ordering/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
var clients = make(map[*websocket.Conn]bool)
var mu sync.Mutex

type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// HandleWebSocket keeps a dashboard client registered until it disconnects.
func HandleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("error during connection upgrade:", err)
			return
		}
		defer conn.Close()

		mu.Lock()
		clients[conn] = true
		mu.Unlock()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				mu.Lock()
				delete(clients, conn)
				mu.Unlock()
				break
			}
		}
	}
}

// notifyStaff pushes an event to every connected dashboard client.
func notifyStaff(event string, payload interface{}) {
	mu.Lock()
	defer mu.Unlock()

	messageBytes, err := json.Marshal(Message{Event: event, Payload: payload})
	if err != nil {
		log.Println("error marshaling message:", err)
		return
	}
	for client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, messageBytes); err != nil {
			log.Println("error writing message:", err)
			client.Close()
			delete(clients, client)
		}
	}
}

// Dashboard aggregates the headline numbers for the staff landing page.
func Dashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		totalOrders, err := orderCollection.CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while counting orders"})
			return
		}
		pendingOrders, err := orderCollection.CountDocuments(ctx, bson.M{"status": "pending"})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while counting orders"})
			return
		}
		pendingReservations, err := reservationCollection.CountDocuments(ctx, bson.M{"status": "pending"})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while counting reservations"})
			return
		}

		matchStage := bson.D{{Key: "$match", Value: bson.D{{Key: "status", Value: "delivered"}}}}
		groupStage := bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total_revenue", Value: bson.D{{Key: "$sum", Value: "$total_amount"}}},
		}}}
		cursor, err := orderCollection.Aggregate(ctx, mongo.Pipeline{matchStage, groupStage})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while computing revenue"})
			return
		}
		var revenueRows []bson.M
		if err := cursor.All(ctx, &revenueRows); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		var totalRevenue interface{} = 0.0
		if len(revenueRows) > 0 {
			totalRevenue = revenueRows[0]["total_revenue"]
		}

		recentCursor, err := orderCollection.Find(ctx, bson.M{},
			options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(5))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing orders"})
			return
		}
		var recentOrders []models.Order
		if err := recentCursor.All(ctx, &recentOrders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		today := time.Now().Format("2006-01-02")
		todayCursor, err := reservationCollection.Find(ctx, bson.M{"date": today},
			options.Find().SetSort(bson.D{{Key: "time", Value: 1}}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing reservations"})
			return
		}
		var todayReservations []models.Reservation
		if err := todayCursor.All(ctx, &todayReservations); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total_orders":         totalOrders,
			"total_revenue":        totalRevenue,
			"pending_orders":       pendingOrders,
			"pending_reservations": pendingReservations,
			"recent_orders":        recentOrders,
			"today_reservations":   todayReservations,
		})
	}
}
