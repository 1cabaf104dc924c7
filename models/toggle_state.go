// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ToggleStatus describes where the latest toggle of an entity is in its
// lifecycle.
type ToggleStatus string

const (
	// StatusIdle means the entity is known but no toggle has been issued in
	// this session.
	StatusIdle ToggleStatus = "idle"

	// StatusLoading means a submission for the entity is in flight right now.
	StatusLoading ToggleStatus = "loading"

	// StatusPending means the submission failed with a retryable error and is
	// queued for retry, possibly across a restart.
	StatusPending ToggleStatus = "pending"

	// StatusSuccess means the state was confirmed or pushed by the server.
	StatusSuccess ToggleStatus = "success"

	// StatusError means the last toggle failed terminally and was rolled back.
	// It is advisory only and never blocks further toggles.
	StatusError ToggleStatus = "error"
)

// ToggleState is the client's belief about one entity: whether the actor is in
// the liking set and how many likes the entity has in total.
type ToggleState struct {
	// EntityID is the opaque identifier of the toggled entity (comment, post).
	EntityID string `json:"entity_id"`

	// IsLiked is the client's belief about the actor's membership in the
	// liking set.
	IsLiked bool `json:"is_liked"`

	// Count is the client's belief about the total number of likes. Never
	// negative.
	Count int64 `json:"count"`

	// Status is the lifecycle status of the latest toggle.
	Status ToggleStatus `json:"status"`

	// ServerTimestamp is the last timestamp confirmed or pushed by the server,
	// in Unix milliseconds. Zero until the server has spoken about the entity.
	// It never decreases once set.
	ServerTimestamp int64 `json:"server_timestamp"`
}
