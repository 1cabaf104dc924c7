package adapter

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func TestParseActorToken_Success(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signTestToken(t, jwt.RegisteredClaims{Subject: "u1", ExpiresAt: jwt.NewNumericDate(exp)})

	claims, err := ParseActorToken(token)

	require.NoError(t, err)
	assert.Equal(t, "u1", claims.ActorID)
	assert.True(t, claims.ExpiresAt.Equal(exp))
	assert.False(t, claims.Expired(time.Now()))
	assert.True(t, claims.Expired(exp.Add(time.Second)))
}

func TestParseActorToken_NoExpiry(t *testing.T) {
	claims, err := ParseActorToken(signTestToken(t, jwt.RegisteredClaims{Subject: "u2"}))

	require.NoError(t, err)
	assert.False(t, claims.Expired(time.Now().Add(100*365*24*time.Hour)))
}

func TestParseActorToken_MissingSubject(t *testing.T) {
	_, err := ParseActorToken(signTestToken(t, jwt.RegisteredClaims{Issuer: "x"}))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseActorToken_Garbage(t *testing.T) {
	_, err := ParseActorToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseActorToken_Blocked(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     "u3",
		"blocked": true,
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	claims, err := ParseActorToken(token)

	require.NoError(t, err)
	assert.Equal(t, "u3", claims.ActorID)
	assert.True(t, claims.Blocked)
}
