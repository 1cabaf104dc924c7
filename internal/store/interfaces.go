package store

import (
	"context"

	"github.com/MKhiriev/go-toggle-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// RetryStore is crash-safe local persistence of not-yet-confirmed toggle
// actions, keyed by entity id.
//
// An entry exists if and only if its action has not yet been confirmed by the
// server. Writes are idempotent upserts, so several engine instances (several
// processes on one device) may share a store: last write wins and a lost race
// only delays one retry.
type RetryStore interface {
	// Put inserts or replaces the pending action of action.EntityID.
	Put(ctx context.Context, action models.QueuedAction) error

	// Remove deletes the pending action of entityID. Removing a missing entry
	// is not an error.
	Remove(ctx context.Context, entityID string) error

	// ListAll returns every pending action ordered by intent timestamp.
	ListAll(ctx context.Context) ([]models.QueuedAction, error)
}

// DeviceStore provides the locally persisted device id.
type DeviceStore interface {
	// DeviceID returns the device id, generating and persisting one on first
	// use. Subsequent calls, including from later processes, return the same
	// value.
	DeviceID(ctx context.Context) (string, error)
}

// LocalStorage is a storage backend of the client.
type LocalStorage interface {
	RetryStore
	DeviceStore

	// Close releases the backend.
	Close() error
}
