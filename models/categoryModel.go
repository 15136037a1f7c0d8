package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID          primitive.ObjectID `bson:"_id"`
	Category_id string             `json:"category_id"`
	Name        *string            `json:"name" validate:"required,min=1,max=100"`
	Description *string            `json:"description"`
}
