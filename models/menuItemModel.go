package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuItem struct {
	ID           primitive.ObjectID `bson:"_id"`
	Item_id      string             `json:"item_id"`
	Name         *string            `json:"name" validate:"required,min=2,max=100"`
	Description  *string            `json:"description" validate:"required"`
	Price        *float64           `json:"price" validate:"required,gte=0"`
	Image        *string            `json:"image"`
	Category_id  *string            `json:"category_id" validate:"required"`
	Is_available *bool              `json:"is_available"`
	Created_at   time.Time          `json:"created_at"`
	Updated_at   time.Time          `json:"updated_at"`
}
