package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Order struct {
	ID               primitive.ObjectID `bson:"_id"`
	Order_id         string             `json:"order_id"`
	User_id          string             `json:"user_id"`
	Status           string             `json:"status" validate:"required,eq=pending|eq=confirmed|eq=preparing|eq=ready|eq=delivered|eq=cancelled"`
	Total_amount     float64            `json:"total_amount"`
	Delivery_address *string            `json:"delivery_address"`
	Phone_number     *string            `json:"phone_number" validate:"required"`
	Created_at       time.Time          `json:"created_at"`
	Updated_at       time.Time          `json:"updated_at"`
}

type OrderItem struct {
	ID            primitive.ObjectID `bson:"_id"`
	Order_item_id string             `json:"order_item_id"`
	Order_id      string             `json:"order_id"`
	Item_id       string             `json:"item_id"`
	Item_name     string             `json:"item_name"`
	Quantity      int                `json:"quantity" validate:"gte=1"`
	Price         float64            `json:"price"` // unit price frozen at checkout
}

func (oi OrderItem) GetTotal() float64 {
	return oi.Price * float64(oi.Quantity)
}

// OrderStatuses is the full recognized set. Any recognized status may be set
// at any time; there is no transition graph.
var OrderStatuses = []string{"pending", "confirmed", "preparing", "ready", "delivered", "cancelled"}

func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}
