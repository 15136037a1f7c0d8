package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, refreshToken, err := GenerateAllTokens("amina@example.com", "Amina", "user-1", false)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, refreshToken)

	claims, msg := ValidateToken(token)
	assert.Empty(t, msg)
	assert.Equal(t, "amina@example.com", claims.Email)
	assert.Equal(t, "Amina", claims.Name)
	assert.Equal(t, "user-1", claims.Uid)
	assert.False(t, claims.Is_staff)
}

func TestStaffClaimSurvivesRoundTrip(t *testing.T) {
	token, _, err := GenerateAllTokens("chef@example.com", "Chef", "user-2", true)
	assert.NoError(t, err)

	claims, msg := ValidateToken(token)
	assert.Empty(t, msg)
	assert.True(t, claims.Is_staff)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	claims, msg := ValidateToken("not-a-token")
	assert.Nil(t, claims)
	assert.NotEmpty(t, msg)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	token, _, err := GenerateAllTokens("amina@example.com", "Amina", "user-1", false)
	assert.NoError(t, err)

	tampered := token + "xx"
	claims, msg := ValidateToken(tampered)
	assert.Nil(t, claims)
	assert.NotEmpty(t, msg)
}
