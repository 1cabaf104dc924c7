// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for talking to the
// remote toggle service.
//
// [ServerAdapter] submits toggle intents and returns authoritative state; the
// package ships an HTTP/REST implementation ([NewHTTPServerAdapter]).
// [PushStream] delivers out-of-band state changes; the package ships a
// WebSocket implementation ([NewWebSocketPushStream]) and [NopPushStream] for
// deployments without a push channel.
//
// Transport failures are mapped to the sentinel errors in errors.go and then
// to a closed [ErrorClass] by [Classify], so callers never inspect status
// codes or error shapes themselves.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-toggle-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ServerAdapter submits toggle intents to the server.
type ServerAdapter interface {
	// SubmitToggle asks the server to move req.EntityID to
	// req.TargetIsLiked for req.ActorID and returns the authoritative state.
	// The request is idempotent per (entity, device, timestamp).
	//
	// Errors are wrapped sentinels from this package; use [Classify] to decide
	// between retry and rollback.
	SubmitToggle(ctx context.Context, req models.SubmitRequest) (models.ServerState, error)
}

// PushStream delivers server-side state changes that were not caused by the
// local engine.
type PushStream interface {
	// Subscribe registers fn for updates of entityID. The returned function
	// removes the registration and is safe to call more than once. Neither
	// may block on the network: the engine calls both while holding its lock.
	Subscribe(entityID string, fn func(models.PushUpdate)) (cancel func())

	// Online reports whether the stream currently has a live connection to
	// the server, used as the connectivity signal of the client.
	Online() bool
}
