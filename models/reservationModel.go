package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Reservation struct {
	ID               primitive.ObjectID `bson:"_id"`
	Reservation_id   string             `json:"reservation_id"`
	User_id          string             `json:"user_id"`
	Date             *string            `json:"date" validate:"required"`
	Time             *string            `json:"time" validate:"required"`
	Number_of_guests *int               `json:"number_of_guests" validate:"required,gte=1"`
	Status           string             `json:"status"`
	Special_requests *string            `json:"special_requests"`
	Phone_number     *string            `json:"phone_number" validate:"required"`
	Created_at       time.Time          `json:"created_at"`
	Updated_at       time.Time          `json:"updated_at"`
}

var ReservationStatuses = []string{"pending", "confirmed", "cancelled"}

func IsValidReservationStatus(status string) bool {
	for _, s := range ReservationStatuses {
		if s == status {
			return true
		}
	}
	return false
}
