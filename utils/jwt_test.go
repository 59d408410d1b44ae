package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret", time.Hour)

	token, err := GenerateToken(4, true)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(4), claims.StaffID)
	assert.True(t, claims.Admin)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)

	again, err := GenerateToken(4, true)
	require.NoError(t, err)
	assert.NotEqual(t, token, again)

	second, err := ParseToken(again)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
	assert.NotEqual(t, claims.ID, second.ID)

	BlacklistToken(token, time.Now().Add(time.Hour))
	_, err = ParseToken(again)
	assert.NoError(t, err, "revoking one session leaves the other valid")
}

func TestParseTokenRejectsForeignTokens(t *testing.T) {
	SetJWTSecret("test-secret", time.Hour)

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, &CustomClaims{
		StaffID: 4,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	forged, err := other.SignedString([]byte("another-secret"))
	require.NoError(t, err)

	_, err = ParseToken(forged)
	assert.Error(t, err)

	_, err = ParseToken("not-a-token")
	assert.Error(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &CustomClaims{
		StaffID: 4,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	stale, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = ParseToken(stale)
	assert.Error(t, err)
}

func TestBlacklistedTokenIsRejected(t *testing.T) {
	SetJWTSecret("test-secret", time.Hour)

	token, err := GenerateToken(9, false)
	require.NoError(t, err)

	BlacklistToken(token, time.Now().Add(time.Hour))
	assert.True(t, IsTokenBlacklisted(token))
	_, err = ParseToken(token)
	assert.Error(t, err)

	BlacklistToken("old", time.Now().Add(-time.Second))
	assert.False(t, IsTokenBlacklisted("old"))
}
