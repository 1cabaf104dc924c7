// Command client runs the toggle sync client: it recovers persisted toggle
// intents, keeps the push stream connected and serves the local API used by
// the UI.
package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-toggle-sync/internal/client"
	"github.com/MKhiriev/go-toggle-sync/internal/config"
	"github.com/MKhiriev/go-toggle-sync/internal/logger"
	"github.com/MKhiriev/go-toggle-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := getBuildInfo()
	printBuildInfo(buildInfo)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("toggle-sync-client").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("toggle-sync-client", cfg.App.LogPath, cfg.App.LogLevel)
	log.Debug().Any("config", redacted(cfg)).Msg("received configs")

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	var app client.Client
	app, err = client.NewApp(ctx, cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
	log.Info().Msg("client stopped")
}

// redacted returns a copy of cfg safe to log.
func redacted(cfg *config.StructuredConfig) config.StructuredConfig {
	c := *cfg
	if c.App.ActorToken != "" {
		c.App.ActorToken = "***"
	}
	return c
}

func getBuildInfo() models.AppBuildInfo {
	info := models.AppBuildInfo{
		BuildVersion: buildVersion,
		BuildDate:    buildDate,
		BuildCommit:  buildCommit,
	}
	if info.BuildVersion == "" {
		info.BuildVersion = "N/A"
	}
	if info.BuildDate == "" {
		info.BuildDate = "N/A"
	}
	if info.BuildCommit == "" {
		info.BuildCommit = "N/A"
	}
	return info
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion)
	fmt.Printf("Build date: %s\n", info.BuildDate)
	fmt.Printf("Build commit: %s\n", info.BuildCommit)
}
