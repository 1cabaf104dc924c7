// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains message strings shared by the local API handlers.
//
// All Msg* constants are written into HTTP response bodies to describe why a
// request failed. Keeping them in one place keeps the wording consistent.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned for failures the caller cannot
	// resolve.
	MsgInternalServerError = "internal server error"

	// MsgEntityNotTracked is returned when the requested entity has never
	// been initialized, toggled or recovered, or was evicted.
	MsgEntityNotTracked = "entity is not tracked"

	MsgEmptyEntityID = "entity id is empty"
	MsgNegativeCount = "count must not be negative"

	// MsgInvalidEntityID is returned for entity ids that are too long or
	// contain whitespace or slashes.
	MsgInvalidEntityID = "invalid entity id"

	// MsgUnauthenticated is returned when no actor could be resolved for the
	// request or the actor token is expired.
	MsgUnauthenticated = "actor is not authenticated"

	// MsgActorBlocked is returned when the actor is not allowed to toggle.
	MsgActorBlocked = "actor is blocked"

	// MsgRateLimited is returned when the actor toggled the entity too often
	// within the current window. The toggle was not applied.
	MsgRateLimited = "too many toggles, try again later"

	// MsgEngineClosed is returned while the client is shutting down.
	MsgEngineClosed = "client is shutting down"
)
