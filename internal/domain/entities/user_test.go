package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserValidation(t *testing.T) {
	_, err := NewValidatedUser(NewUser("", "rita@example.com", "password123"))
	assert.Error(t, err)

	_, err = NewValidatedUser(NewUser("Rita", "not-an-email", "password123"))
	assert.Error(t, err)

	_, err = NewValidatedUser(NewUser("Rita", "rita@example.com", "short"))
	assert.Error(t, err)

	_, err = NewValidatedUser(NewUser("Rita", "rita@example.com", "password123"))
	assert.NoError(t, err)
}

func TestUserEmailNormalized(t *testing.T) {
	user := NewUser("Rita", "  Rita@Example.COM ", "password123")
	assert.Equal(t, "rita@example.com", user.Email)
}

func TestPasswordHashing(t *testing.T) {
	user := NewUser("Rita", "rita@example.com", "password123")
	require.NoError(t, user.HashPassword())

	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, user.CheckPassword("password123"))
	assert.Error(t, user.CheckPassword("wrong-password"))
}

func TestResetTokenLifecycle(t *testing.T) {
	user := NewUser("Rita", "rita@example.com", "password123")

	token, err := user.IssueResetToken()
	require.NoError(t, err)
	assert.Len(t, token, 40)
	assert.True(t, user.ResetTokenValid(time.Now()))

	// Expired tokens are invalid.
	assert.False(t, user.ResetTokenValid(time.Now().Add(2*time.Hour)))

	user.ClearResetToken()
	assert.False(t, user.ResetTokenValid(time.Now()))
}
