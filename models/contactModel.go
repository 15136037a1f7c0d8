package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Contact struct {
	ID         primitive.ObjectID `bson:"_id"`
	Contact_id string             `json:"contact_id"`
	Name       *string            `json:"name" validate:"required"`
	Email      *string            `json:"email" validate:"required,email"`
	Subject    *string            `json:"subject" validate:"required"`
	Message    *string            `json:"message" validate:"required"`
	Created_at time.Time          `json:"created_at"`
}
