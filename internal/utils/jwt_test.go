package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := NewAccessToken("secret-a", "user-42", time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken("secret-a", token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
	assert.True(t, claims.AllowLogin)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := NewRefreshToken("secret-r", "user-42", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken("secret-r", token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
	assert.False(t, claims.AllowLogin)
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	token, err := NewAccessToken("secret-a", "user-42", time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("secret-b", token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := NewAccessToken("secret-a", "user-42", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("secret-a", token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("secret-a", "not.a.jwt")
	assert.Error(t, err)
}

func TestConfirmationTokensAreUnique(t *testing.T) {
	a, err := NewConfirmationToken()
	require.NoError(t, err)
	b, err := NewConfirmationToken()
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
