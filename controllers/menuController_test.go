package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestToFixed(t *testing.T) {
	assert.Equal(t, 2500.0, toFixed(2500.004, 2))
	assert.Equal(t, 1234.57, toFixed(1234.567, 2))
	assert.Equal(t, 0.0, toFixed(0, 2))
	assert.Equal(t, 1500.5, toFixed(1500.499999, 2))
}

func TestMenuSortOption(t *testing.T) {
	tests := []struct {
		sort string
		want bson.D
	}{
		{"name", bson.D{{Key: "name", Value: 1}}},
		{"-name", bson.D{{Key: "name", Value: -1}}},
		{"price", bson.D{{Key: "price", Value: 1}}},
		{"-price", bson.D{{Key: "price", Value: -1}}},
		{"", bson.D{{Key: "name", Value: 1}}},
		{"bogus", bson.D{{Key: "name", Value: 1}}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, menuSortOption(tt.sort), tt.sort)
	}
}
