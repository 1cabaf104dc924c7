package engine

import (
	"context"
	"time"

	"github.com/MKhiriev/go-toggle-sync/internal/adapter"
)

// ActorPolicy decides whether an actor may toggle at all. It returns
// [ErrUnauthenticated] or [ErrBlocked] to reject.
type ActorPolicy interface {
	Authorize(ctx context.Context, actorID string) error
}

// TokenPolicy authorizes the actor named by the client's bearer token.
type TokenPolicy struct {
	claims adapter.ActorClaims
	now    func() time.Time
}

// NewTokenPolicy parses token. An unparsable token is returned as an error
// wrapping [adapter.ErrInvalidToken].
func NewTokenPolicy(token string, now func() time.Time) (*TokenPolicy, error) {
	claims, err := adapter.ParseActorToken(token)
	if err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}
	return &TokenPolicy{claims: claims, now: now}, nil
}

// ActorID returns the actor the token was issued to.
func (p *TokenPolicy) ActorID() string {
	return p.claims.ActorID
}

// Authorize rejects actors other than the token subject, expired tokens and
// tokens carrying the "blocked" claim.
func (p *TokenPolicy) Authorize(_ context.Context, actorID string) error {
	if actorID != p.claims.ActorID || p.claims.Expired(p.now()) {
		return ErrUnauthenticated
	}
	if p.claims.Blocked {
		return ErrBlocked
	}
	return nil
}
