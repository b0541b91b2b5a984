package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTripCarriesActorIdentity(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")

	token, err := GenerateAccessToken("9", "Patient", "pat-uuid")
	assert.NoError(t, err)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "9", claims.UserID)
	assert.Equal(t, "Patient", claims.Role)
	assert.Equal(t, "pat-uuid", claims.ProfileID)
}

func TestValidateTokenEnforcesRoles(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")

	token, err := GenerateAccessToken("3", "Doctor", "doc-uuid")
	assert.NoError(t, err)

	claims, err := ValidateToken(token, "Admin", "Doctor")
	assert.NoError(t, err)
	assert.Equal(t, "Doctor", claims.Role)

	_, err = ValidateToken(token, "Admin")
	assert.Error(t, err)
}
