// Package handler assembles the transport handlers of the local API.
package handler

import (
	"github.com/MKhiriev/go-toggle-sync/internal/config"
	"github.com/MKhiriev/go-toggle-sync/internal/handler/http"
	"github.com/MKhiriev/go-toggle-sync/internal/logger"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers creates a handler for every transport enabled in cfg.
func NewHandlers(toggles http.ToggleService, opts http.Options, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(toggles, opts, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
