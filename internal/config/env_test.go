// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	setEnvVars(t, map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_ACTOR_TOKEN": "token",
		"APP_DEVICE_ID":   "device-1",
		"APP_LOG_PATH":    "/tmp/client.log",
		"APP_LOG_LEVEL":   "info",

		"ADAPTER_ADDRESS":         "http://localhost:8080",
		"ADAPTER_STREAM_ADDRESS":  "ws://localhost:8080/api/likes/stream",
		"ADAPTER_REQUEST_TIMEOUT": "5s",

		"STORAGE_DRIVER": "badger",
		"STORAGE_DSN":    "/var/lib/toggle",

		"ENGINE_MAX_ACTIONS_PER_WINDOW": "20",
		"ENGINE_RATE_WINDOW":            "2m",
		"ENGINE_MAX_RETRIES":            "5",
		"ENGINE_RETRY_BASE_DELAY":       "500ms",
		"ENGINE_SUBMIT_TIMEOUT":         "3s",
		"ENGINE_BATCH_SIZE":             "4",
		"ENGINE_BATCH_DELAY":            "10ms",
		"ENGINE_CACHE_SIZE":             "64",

		"WORKERS_RECOVERY_INTERVAL": "30s",
		"SERVER_ADDRESS":            "localhost:9000",
	})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.NoError(t, err)
	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, App{ActorToken: "token", DeviceID: "device-1", LogPath: "/tmp/client.log", LogLevel: "info"}, cfg.App)
	assert.Equal(t, "ws://localhost:8080/api/likes/stream", cfg.Adapter.StreamAddress)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, Storage{Driver: "badger", DSN: "/var/lib/toggle"}, cfg.Storage)
	assert.Equal(t, Engine{
		MaxActionsPerWindow: 20,
		RateWindow:          2 * time.Minute,
		MaxRetries:          5,
		RetryBaseDelay:      500 * time.Millisecond,
		SubmitTimeout:       3 * time.Second,
		BatchSize:           4,
		BatchDelay:          10 * time.Millisecond,
		CacheSize:           64,
	}, cfg.Engine)
	assert.Equal(t, 30*time.Second, cfg.Workers.RecoveryInterval)
	assert.Equal(t, "localhost:9000", cfg.Server.HTTPAddress)
}

func TestParseEnv_Empty(t *testing.T) {
	setEnvVars(t, map[string]string{})

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{"ENGINE_BATCH_DELAY": "soon"})

	err := parseEnv(&StructuredConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}

func TestParseEnv_ActorTokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("file-token\n"), 0o600))

	t.Run("read from file", func(t *testing.T) {
		setEnvVars(t, map[string]string{"APP_ACTOR_TOKEN_FILE": path})

		cfg := &StructuredConfig{}
		require.NoError(t, parseEnv(cfg))
		assert.Equal(t, "file-token", cfg.App.ActorToken)
	})

	t.Run("explicit token wins", func(t *testing.T) {
		setEnvVars(t, map[string]string{"APP_ACTOR_TOKEN_FILE": path, "APP_ACTOR_TOKEN": "env-token"})

		cfg := &StructuredConfig{}
		require.NoError(t, parseEnv(cfg))
		assert.Equal(t, "env-token", cfg.App.ActorToken)
	})

	t.Run("missing file", func(t *testing.T) {
		setEnvVars(t, map[string]string{"APP_ACTOR_TOKEN_FILE": filepath.Join(t.TempDir(), "absent")})

		err := parseEnv(&StructuredConfig{})
		assert.ErrorContains(t, err, "error reading actor token file")
	})
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for _, k := range allEnvKeys {
		// t.Setenv restores the previous value on cleanup
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

var allEnvKeys = []string{
	"CONFIG",
	"APP_ACTOR_TOKEN", "APP_ACTOR_TOKEN_FILE", "APP_DEVICE_ID", "APP_LOG_PATH", "APP_LOG_LEVEL",
	"ADAPTER_ADDRESS", "ADAPTER_STREAM_ADDRESS", "ADAPTER_REQUEST_TIMEOUT",
	"STORAGE_DRIVER", "STORAGE_DSN",
	"ENGINE_MAX_ACTIONS_PER_WINDOW", "ENGINE_RATE_WINDOW", "ENGINE_MAX_RETRIES",
	"ENGINE_RETRY_BASE_DELAY", "ENGINE_SUBMIT_TIMEOUT", "ENGINE_BATCH_SIZE",
	"ENGINE_BATCH_DELAY", "ENGINE_CACHE_SIZE",
	"WORKERS_RECOVERY_INTERVAL", "SERVER_ADDRESS",
}
