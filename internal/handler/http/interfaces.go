package http

//go:generate mockgen -source=interfaces.go -destination=../../mock/handler_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-toggle-sync/models"
)

// ToggleService is the part of the sync engine the local API drives.
type ToggleService interface {
	Toggle(ctx context.Context, entityID, actorID string) error
	Initialize(entityID string, isLiked bool, count int64)
	Observe(entityID string) (models.ToggleState, bool)
	Evict(entityID string)
	Tracked() []string
	Flush()
}
