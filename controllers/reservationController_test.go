package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestReservationEventTitle(t *testing.T) {
	row := bson.M{"user_name": "Awa", "number_of_guests": 4}
	assert.Equal(t, "Awa - 4 pers.", reservationEventTitle(row))
}

func TestReservationEventTitleDeletedUser(t *testing.T) {
	// The $lookup joins nothing when the booking user has been removed.
	row := bson.M{"user_name": nil, "number_of_guests": 2}
	assert.Equal(t, "guest - 2 pers.", reservationEventTitle(row))

	row = bson.M{"number_of_guests": 6}
	assert.Equal(t, "guest - 6 pers.", reservationEventTitle(row))
}
