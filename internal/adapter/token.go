package adapter

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ActorClaims is what the client needs to know about the actor token.
type ActorClaims struct {
	ActorID   string
	ExpiresAt time.Time

	// Blocked is set by the server for actors barred from liking.
	Blocked bool
}

// ParseActorToken reads the "sub", "exp" and "blocked" claims of a bearer token without
// verifying its signature. The server verifies the token on every request;
// the client only needs the actor id and a hint about expiry.
func ParseActorToken(tokenString string) (ActorClaims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return ActorClaims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ActorClaims{}, fmt.Errorf("%w: unexpected claims type", ErrInvalidToken)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return ActorClaims{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	var expiresAt time.Time
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
	}

	blocked, _ := claims["blocked"].(bool)

	return ActorClaims{ActorID: sub, ExpiresAt: expiresAt, Blocked: blocked}, nil
}

// Expired reports whether the token expired before now. Tokens without an
// expiry never expire.
func (c ActorClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
