package infrastructure

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	service := NewJWTService("secret")
	userID := uuid.New()

	token, err := service.GenerateToken(userID, "rita@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsedID, err := service.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsedID)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret").GenerateToken(uuid.New(), "rita@example.com")
	require.NoError(t, err)

	_, err = NewJWTService("other-secret").ParseToken(token)
	assert.Error(t, err)
}

func TestJWTMalformedToken(t *testing.T) {
	_, err := NewJWTService("secret").ParseToken("not-a-token")
	assert.Error(t, err)
}
