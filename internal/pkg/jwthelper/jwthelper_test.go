package jwthelper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var signingKey = []byte("test-signing-key")

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(signingKey, 42, "admin")
	require.NoError(t, err)

	claims, err := ParseToken(signingKey, token)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.AdminID)
	assert.Equal(t, "admin", claims.Username)
	assert.WithinDuration(t, time.Now().Add(TokenLifetime), claims.ExpiresAt.Time, time.Minute)
}

func TestParseToken_WrongKey(t *testing.T) {
	token, err := GenerateToken(signingKey, 1, "admin")
	require.NoError(t, err)

	_, err = ParseToken([]byte("another-key"), token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		AdminID:  1,
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	signed, err := expired.SignedString(signingKey)
	require.NoError(t, err)

	_, err = ParseToken(signingKey, signed)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken(signingKey, "not-a-jwt")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaims_RemainingLifetime(t *testing.T) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(3 * time.Hour)),
		},
	}

	assert.Equal(t, 3*time.Hour, claims.RemainingLifetime(now))

	var noExpiry Claims
	assert.Equal(t, time.Duration(0), noExpiry.RemainingLifetime(now))
}
