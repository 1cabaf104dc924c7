package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-toggle-sync/internal/adapter"
	"github.com/MKhiriev/go-toggle-sync/internal/config"
	"github.com/MKhiriev/go-toggle-sync/internal/engine"
	"github.com/MKhiriev/go-toggle-sync/internal/handler"
	handlerhttp "github.com/MKhiriev/go-toggle-sync/internal/handler/http"
	"github.com/MKhiriev/go-toggle-sync/internal/logger"
	"github.com/MKhiriev/go-toggle-sync/internal/server"
	"github.com/MKhiriev/go-toggle-sync/internal/store"
	"github.com/MKhiriev/go-toggle-sync/internal/workers"
	"github.com/MKhiriev/go-toggle-sync/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

type App struct {
	storage store.LocalStorage
	engine  *engine.SyncEngine
	workers *workers.Workers
	server  server.Server

	logger *logger.Logger
}

// NewApp builds every component of the client from cfg. The returned App owns
// the opened storage; Run closes it.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	storage, err := store.NewLocalStorage(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	app, err := newApp(ctx, cfg, storage, buildInfo, log)
	if err != nil {
		_ = storage.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, cfg *config.StructuredConfig, storage store.LocalStorage, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	deviceID := cfg.App.DeviceID
	if deviceID == "" {
		id, err := storage.DeviceID(ctx)
		if err != nil {
			return nil, fmt.Errorf("get device id: %w", err)
		}
		deviceID = id
	}
	log.Info().Str("device_id", deviceID).Msg("device identified")

	var policy engine.ActorPolicy
	var defaultActor string
	if cfg.App.ActorToken != "" {
		tokenPolicy, err := engine.NewTokenPolicy(cfg.App.ActorToken, time.Now)
		if err != nil {
			return nil, fmt.Errorf("parse actor token: %w", err)
		}
		policy, defaultActor = tokenPolicy, tokenPolicy.ActorID()
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App.ActorToken, log)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	var (
		push   adapter.PushStream = adapter.NopPushStream{}
		stream *adapter.WebSocketPushStream
	)
	if cfg.Adapter.StreamAddress != "" {
		stream, err = adapter.NewWebSocketPushStream(cfg.Adapter.StreamAddress, cfg.App.ActorToken, log)
		if err != nil {
			return nil, fmt.Errorf("create push stream: %w", err)
		}
		push = stream
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	syncEngine, err := engine.NewSyncEngine(cfg.Engine, engine.Dependencies{
		Server:   serverAdapter,
		Push:     push,
		Store:    storage,
		DeviceID: deviceID,
		Policy:   policy,
		Metrics:  engine.NewMetrics(reg),
		Logger:   log,
	})
	if err != nil {
		return nil, fmt.Errorf("create sync engine: %w", err)
	}

	bg := workers.NewWorkers(workers.NewRecoveryJob(syncEngine, push, cfg.Workers.RecoveryInterval, log))
	if stream != nil {
		stream.OnConnected(syncEngine.OnConnectivityRestored)
		bg.Add(stream)
	}

	handlers, err := handler.NewHandlers(syncEngine, handlerhttp.Options{
		BuildInfo:      buildInfo,
		Gatherer:       reg,
		DefaultActorID: defaultActor,
	}, cfg.Server, log)
	if err != nil {
		_ = syncEngine.Close()
		return nil, fmt.Errorf("create handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		_ = syncEngine.Close()
		return nil, fmt.Errorf("create server: %w", err)
	}

	return &App{
		storage: storage,
		engine:  syncEngine,
		workers: bg,
		server:  srv,
		logger:  log,
	}, nil
}

// Run recovers persisted intents, then runs the background workers and the
// local API until ctx is cancelled. On exit unsettled intents are persisted
// and the storage is closed.
func (a *App) Run(ctx context.Context) error {
	if err := a.engine.Start(ctx); err != nil {
		a.logger.Err(err).Msg("startup recovery failed")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.workers.Run(gctx) })
	g.Go(func() error { return a.server.Run(gctx) })
	runErr := g.Wait()

	closeErr := errors.Join(a.engine.Close(), a.storage.Close())
	if closeErr != nil {
		a.logger.Err(closeErr).Msg("client shutdown")
	}

	return errors.Join(runErr, closeErr)
}
