package server

import (
	"context"
	"time"

	"github.com/MKhiriev/go-toggle-sync/internal/config"
	"github.com/MKhiriev/go-toggle-sync/internal/handler"
	"github.com/MKhiriev/go-toggle-sync/internal/logger"
)

const shutdownTimeout = 5 * time.Second

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{logger: logger}

	if handlers != nil && handlers.HTTP != nil && cfg.HTTPAddress != "" {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}

	if servers.httpServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

// Run listens on the configured address and serves until ctx is done or
// serving fails.
func (s *server) Run(ctx context.Context) error {
	if s.httpServer == nil {
		return errNoServersAreCreated
	}

	l, err := s.httpServer.listen()
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.serve(l)
	}()

	select {
	case err = <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = s.Shutdown(shutdownCtx); err != nil {
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return <-serveErr
}

func (s *server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.shutdown(ctx)
	}
	return nil
}
