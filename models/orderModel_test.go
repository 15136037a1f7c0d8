package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidOrderStatus(t *testing.T) {
	tests := []struct {
		status string
		valid  bool
	}{
		{"pending", true},
		{"confirmed", true},
		{"preparing", true},
		{"ready", true},
		{"delivered", true},
		{"cancelled", true},
		{"invalid_value", false},
		{"PENDING", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, IsValidOrderStatus(tt.status), tt.status)
	}
}

func TestIsValidReservationStatus(t *testing.T) {
	tests := []struct {
		status string
		valid  bool
	}{
		{"pending", true},
		{"confirmed", true},
		{"cancelled", true},
		{"preparing", false},
		{"delivered", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, IsValidReservationStatus(tt.status), tt.status)
	}
}

func TestOrderItemGetTotal(t *testing.T) {
	item := OrderItem{Quantity: 3, Price: 1500}
	assert.Equal(t, float64(4500), item.GetTotal())
}

// An order item keeps its own price copy, so editing the menu item it came
// from must not change the line's total.
func TestOrderItemPriceIsSnapshot(t *testing.T) {
	menuPrice := 2500.0
	item := OrderItem{Quantity: 2, Price: menuPrice}
	assert.Equal(t, float64(5000), item.GetTotal())

	menuPrice = 9999.0
	_ = menuPrice
	assert.Equal(t, float64(5000), item.GetTotal())
}
