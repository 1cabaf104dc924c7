// Package utils provides small helpers shared across the client: typed
// context keys, JSON response writing and device id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys so they never collide with
// string keys set by other packages.
type contextKey string

// String implements [fmt.Stringer].
func (c contextKey) String() string {
	return string(c)
}

// ActorIDCtxKey is the context key under which the local API stores the id of
// the actor issuing a toggle.
//
//	ctx := context.WithValue(ctx, utils.ActorIDCtxKey, "actor-42")
var ActorIDCtxKey = contextKey("actorID")

// GetActorIDFromContext returns the actor id stored under [ActorIDCtxKey].
// ok is false when the value is missing, not a string or empty.
func GetActorIDFromContext(ctx context.Context) (string, bool) {
	actorID, ok := ctx.Value(ActorIDCtxKey).(string)
	if !ok || actorID == "" {
		return "", false
	}
	return actorID, true
}

// WithActorID returns a copy of ctx carrying actorID.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, ActorIDCtxKey, actorID)
}
