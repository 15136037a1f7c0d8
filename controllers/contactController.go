package controllers

import (
	"context"
	"net/http"
	"time"

	"go-restaurant-ordering/database"
	"go-restaurant-ordering/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var contactCollection *mongo.Collection = database.OpenCollection(database.Client, "contact")

// SubmitContact records an inbound message. Write-only; nothing ever mutates
// a contact afterwards.
func SubmitContact() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		name := c.PostForm("name")
		email := c.PostForm("email")
		subject := c.PostForm("subject")
		message := c.PostForm("message")

		contact := models.Contact{
			Name:    &name,
			Email:   &email,
			Subject: &subject,
			Message: &message,
		}
		validationErr := validate.Struct(&contact)
		if validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		contact.ID = primitive.NewObjectID()
		contact.Contact_id = contact.ID.Hex()
		contact.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))

		if _, err := contactCollection.InsertOne(ctx, contact); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "message was not sent"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
