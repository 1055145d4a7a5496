package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, exp, err := m.GenerateSessionToken("user-42")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
}

func TestParseSessionTokenRejectsBadInput(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	_, err := m.ParseSessionToken("not-a-token")
	assert.Error(t, err)

	// Token signed with a different secret.
	other := NewJWTManager("other-secret", time.Hour)
	token, _, err := other.GenerateSessionToken("user-42")
	require.NoError(t, err)
	_, err = m.ParseSessionToken(token)
	assert.Error(t, err)

	// Expired token.
	shortLived := NewJWTManager("secret", -time.Minute)
	token, _, err = shortLived.GenerateSessionToken("user-42")
	require.NoError(t, err)
	_, err = m.ParseSessionToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, CompareHashAndPassword(hash, "password123"))
	assert.False(t, CompareHashAndPassword(hash, "wrong"))
}
