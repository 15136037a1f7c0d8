package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeliveryFee is a fixed display-time charge. It is shown next to the cart
// subtotal but never stored into Order.Total_amount.
const DeliveryFee float64 = 1000

type Cart struct {
	ID         primitive.ObjectID `bson:"_id"`
	Cart_id    string             `json:"cart_id"`
	User_id    string             `json:"user_id"`
	Created_at time.Time          `json:"created_at"`
	Updated_at time.Time          `json:"updated_at"`
}

type CartItem struct {
	ID           primitive.ObjectID `bson:"_id"`
	Cart_item_id string             `json:"cart_item_id"`
	Cart_id      string             `json:"cart_id"`
	Item_id      string             `json:"item_id"`
	Quantity     int                `json:"quantity" validate:"gte=1"`
}

// CartLine is a cart item joined with its menu item, as produced by the
// cart aggregation pipeline.
type CartLine struct {
	Cart_item_id string  `bson:"cart_item_id" json:"cart_item_id"`
	Item_id      string  `bson:"item_id" json:"item_id"`
	Item_name    string  `bson:"item_name" json:"item_name"`
	Image        *string `bson:"image" json:"image"`
	Price        float64 `bson:"price" json:"price"`
	Quantity     int     `bson:"quantity" json:"quantity"`
}

func (l CartLine) GetTotal() float64 {
	return l.Price * float64(l.Quantity)
}

// CartSubtotal recomputes the cart total from its lines on every call.
func CartSubtotal(lines []CartLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.GetTotal()
	}
	return total
}

// CartCount is the sum of quantities across all lines.
func CartCount(lines []CartLine) int {
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return count
}
