// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the toggle
// sync client. It is populated by merging environment variables,
// command-line flags and an optional JSON file, then completed with defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds actor identity, device identity and logging settings.
	App App `envPrefix:"APP_"`

	// Adapter holds the addresses and timeout of the remote toggle service.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage selects and configures the durable retry store backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Engine holds the tuning knobs of the sync engine.
	Engine Engine `envPrefix:"ENGINE_"`

	// Workers holds configuration for background workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// Server holds the local UI API settings.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// ActorToken is the bearer token (JWT) of the acting user. Its "sub"
	// claim is the actor id sent with every toggle.
	// Env: APP_ACTOR_TOKEN, or a file named by APP_ACTOR_TOKEN_FILE
	ActorToken string `env:"ACTOR_TOKEN"`

	// DeviceID overrides the locally persisted device id. Leave empty to let
	// the store generate and persist one.
	// Env: APP_DEVICE_ID
	DeviceID string `env:"DEVICE_ID"`

	// LogPath is the file client logs are appended to.
	// Env: APP_LOG_PATH
	LogPath string `env:"LOG_PATH"`

	// LogLevel is a zerolog level name (debug, info, warn, error).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Adapter holds network settings used by the client transport layer.
type Adapter struct {
	// HTTPAddress is the base address of the toggle REST API
	// (e.g. "http://localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// StreamAddress is the WebSocket address of the push update stream
	// (e.g. "ws://localhost:8080/api/likes/stream").
	// Env: ADAPTER_STREAM_ADDRESS
	StreamAddress string `env:"STREAM_ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage selects the durable retry store.
type Storage struct {
	// Driver is one of "sqlite", "badger" or "memory".
	// Env: STORAGE_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the sqlite database file or the badger directory.
	// Env: STORAGE_DSN
	DSN string `env:"DSN"`
}

// Engine holds sync engine tuning.
type Engine struct {
	// Env: ENGINE_MAX_ACTIONS_PER_WINDOW
	MaxActionsPerWindow int `env:"MAX_ACTIONS_PER_WINDOW"`
	// Env: ENGINE_RATE_WINDOW
	RateWindow time.Duration `env:"RATE_WINDOW"`
	// Env: ENGINE_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`
	// RetryBaseDelay is multiplied by 2^retryCount to get the backoff.
	// Env: ENGINE_RETRY_BASE_DELAY
	RetryBaseDelay time.Duration `env:"RETRY_BASE_DELAY"`
	// Env: ENGINE_SUBMIT_TIMEOUT
	SubmitTimeout time.Duration `env:"SUBMIT_TIMEOUT"`
	// Env: ENGINE_BATCH_SIZE
	BatchSize int `env:"BATCH_SIZE"`
	// Env: ENGINE_BATCH_DELAY
	BatchDelay time.Duration `env:"BATCH_DELAY"`
	// CacheSize bounds the number of entities whose state is kept in memory.
	// Env: ENGINE_CACHE_SIZE
	CacheSize int `env:"CACHE_SIZE"`
}

// Workers holds configuration for background workers.
type Workers struct {
	// RecoveryInterval defines how often pending actions are re-driven from
	// the durable store while online.
	// Env: WORKERS_RECOVERY_INTERVAL
	RecoveryInterval time.Duration `env:"RECOVERY_INTERVAL"`
}

// Server holds the local UI API settings.
type Server struct {
	// HTTPAddress is the "host:port" the local API and /metrics listen on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
}

// Defaults returns the configuration used for every field no source sets.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogLevel: "debug",
		},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
		Storage: Storage{
			Driver: DriverSQLite,
			DSN:    "toggle-sync.db",
		},
		Engine: Engine{
			MaxActionsPerWindow: 10,
			RateWindow:          time.Minute,
			MaxRetries:          3,
			RetryBaseDelay:      time.Second,
			SubmitTimeout:       10 * time.Second,
			BatchSize:           10,
			BatchDelay:          50 * time.Millisecond,
			CacheSize:           1024,
		},
		Workers: Workers{
			RecoveryInterval: time.Minute,
		},
		Server: Server{
			HTTPAddress: "localhost:8090",
		},
	}
}

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverBadger = "badger"
	DriverMemory = "memory"
)

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources in the following priority order (later sources override
// earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Fields left zero by every source take their value from [Defaults].
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
