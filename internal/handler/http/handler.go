package http

import (
	"github.com/MKhiriev/go-toggle-sync/internal/logger"
	"github.com/MKhiriev/go-toggle-sync/internal/validators"
	"github.com/MKhiriev/go-toggle-sync/models"
	"github.com/prometheus/client_golang/prometheus"
)

// Options configures a [Handler].
type Options struct {
	// BuildInfo is served by GET /api/version.
	BuildInfo models.AppBuildInfo

	// Gatherer backs GET /metrics. Nil disables the route.
	Gatherer prometheus.Gatherer

	// DefaultActorID is used when a request carries no X-Actor-ID header.
	DefaultActorID string
}

type Handler struct {
	toggles   ToggleService
	validator validators.Validator
	opts      Options

	logger *logger.Logger
}

func NewHandler(toggles ToggleService, opts Options, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		toggles:   toggles,
		validator: validators.NewToggleValidator(),
		opts:      opts,
		logger:    logger,
	}
}
