package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go-restaurant-ordering/database"
	"go-restaurant-ordering/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var reservationCollection *mongo.Collection = database.OpenCollection(database.Client, "reservation")

// MakeReservation books a table slot. Overlapping reservations are allowed;
// capacity is a front-of-house concern.
func MakeReservation() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		uid := c.GetString("uid")

		guests, err := strconv.Atoi(c.PostForm("guests"))
		if err != nil || guests < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "number of guests must be at least 1"})
			return
		}
		date := c.PostForm("date")
		reservationTime := c.PostForm("time")
		requests := c.PostForm("requests")
		phone := c.PostForm("phone")

		reservation := models.Reservation{
			User_id:          uid,
			Date:             &date,
			Time:             &reservationTime,
			Number_of_guests: &guests,
			Status:           "pending",
			Special_requests: &requests,
			Phone_number:     &phone,
		}
		validationErr := validate.Struct(&reservation)
		if validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		reservation.ID = primitive.NewObjectID()
		reservation.Reservation_id = reservation.ID.Hex()
		reservation.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		reservation.Updated_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))

		if _, err := reservationCollection.InsertOne(ctx, reservation); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "reservation was not created"})
			return
		}
		notifyStaff("newReservation", reservation)
		c.JSON(http.StatusOK, gin.H{"success": true, "reservation_id": reservation.Reservation_id})
	}
}

func MyReservations() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		uid := c.GetString("uid")

		cursor, err := reservationCollection.Find(ctx, bson.M{"user_id": uid},
			options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing reservations"})
			return
		}
		var reservations []models.Reservation
		if err := cursor.All(ctx, &reservations); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, reservations)
	}
}

func AdminReservations() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		total, err := reservationCollection.CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while counting reservations"})
			return
		}
		cursor, err := reservationCollection.Find(ctx, bson.M{}, options.Find().
			SetSort(bson.D{{Key: "date", Value: -1}, {Key: "time", Value: -1}}).
			SetSkip(int64((page-1)*adminPageSize)).
			SetLimit(adminPageSize))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing reservations"})
			return
		}
		var reservations []models.Reservation
		if err := cursor.All(ctx, &reservations); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"reservations": reservations,
			"page":         page,
			"total_items":  total,
			"total_pages":  (total + adminPageSize - 1) / adminPageSize,
		})
	}
}

// AdminReservationEvents returns reservations in a date range shaped for the
// dashboard calendar.
func AdminReservationEvents() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		start := c.Query("start")
		end := c.Query("end")

		matchStage := bson.D{{Key: "$match", Value: bson.D{
			{Key: "date", Value: bson.D{{Key: "$gte", Value: start}, {Key: "$lte", Value: end}}},
		}}}
		lookupStage := bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "user"},
			{Key: "localField", Value: "user_id"},
			{Key: "foreignField", Value: "user_id"},
			{Key: "as", Value: "user"},
		}}}
		unwindStage := bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$user"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}}
		projectStage := bson.D{{Key: "$project", Value: bson.D{
			{Key: "reservation_id", Value: 1},
			{Key: "date", Value: 1},
			{Key: "time", Value: 1},
			{Key: "number_of_guests", Value: 1},
			{Key: "status", Value: 1},
			{Key: "user_name", Value: "$user.name"},
		}}}

		cursor, err := reservationCollection.Aggregate(ctx, mongo.Pipeline{matchStage, lookupStage, unwindStage, projectStage})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing reservation events"})
			return
		}
		var rows []bson.M
		if err := cursor.All(ctx, &rows); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		events := []gin.H{}
		for _, row := range rows {
			events = append(events, gin.H{
				"id":        row["reservation_id"],
				"title":     reservationEventTitle(row),
				"start":     fmt.Sprintf("%vT%v", row["date"], row["time"]),
				"className": fmt.Sprintf("bg-%v", row["status"]),
			})
		}
		c.JSON(http.StatusOK, events)
	}
}

// reservationEventTitle labels a calendar entry. The booking user may have
// been deleted since, so the joined name can be absent.
func reservationEventTitle(row bson.M) string {
	name := row["user_name"]
	if name == nil {
		name = "guest"
	}
	return fmt.Sprintf("%v - %v pers.", name, row["number_of_guests"])
}

// UpdateReservationStatus follows the same permissive model as order status.
func UpdateReservationStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		reservationId := c.Param("reservation_id")

		status := c.PostForm("status")
		if !models.IsValidReservationStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false})
			return
		}
		updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		result, err := reservationCollection.UpdateOne(
			ctx,
			bson.M{"reservation_id": reservationId},
			bson.D{{Key: "$set", Value: bson.D{
				{Key: "status", Value: status},
				{Key: "updated_at", Value: updated_at},
			}}},
			options.Update().SetUpsert(false),
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
