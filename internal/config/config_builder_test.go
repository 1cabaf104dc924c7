package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func newTestBuilder(args ...string) *configBuilder {
	b := newConfigBuilder()
	b.args = args
	return b
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no sources yields the defaults.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newTestBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newTestBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourceWins verifies that non-zero fields of later configs
// override earlier ones and untouched fields survive.
func TestBuild_LaterSourceWins(t *testing.T) {
	b := newTestBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Engine: Engine{BatchSize: 5}, App: App{DeviceID: "a"}},
		&StructuredConfig{Engine: Engine{BatchSize: 7}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Engine.BatchSize)
	assert.Equal(t, "a", cfg.App.DeviceID)
	assert.Equal(t, 50*time.Millisecond, cfg.Engine.BatchDelay)
}

func TestBuild_ValidationError(t *testing.T) {
	b := newTestBuilder()
	b.configs = append(b.configs, &StructuredConfig{Storage: Storage{Driver: "postgres"}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// ── sources ───────────────────────────────────────────────────────────────────

func TestBuilder_EnvFlagsJSON(t *testing.T) {
	jsonPath := writeTempJSONConfig(t, map[string]any{
		"engine": map[string]any{"cache_size": 16},
	})
	setEnvVars(t, map[string]string{
		"ENGINE_CACHE_SIZE": "8",
		"STORAGE_DRIVER":    "memory",
	})

	cfg, err := newTestBuilder("-config", jsonPath, "-log-level", "error").
		withEnv().
		withFlags().
		withJSON().
		build()

	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Engine.CacheSize)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "error", cfg.App.LogLevel)
}

func TestBuilder_WithJSON_MissingFile(t *testing.T) {
	setEnvVars(t, map[string]string{})

	_, err := newTestBuilder("-c", "/does/not/exist.json").
		withEnv().
		withFlags().
		withJSON().
		build()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestBuilder_WithFlags_Invalid(t *testing.T) {
	b := newTestBuilder("-a", "nowhere").withFlags()
	assert.Error(t, b.err)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *StructuredConfig)
		wantErr error
	}{
		{name: "defaults", mutate: func(c *StructuredConfig) {}},
		{name: "memory without dsn", mutate: func(c *StructuredConfig) { c.Storage = Storage{Driver: DriverMemory} }},
		{name: "badger without dsn", mutate: func(c *StructuredConfig) { c.Storage.Driver, c.Storage.DSN = DriverBadger, "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "no adapter address", mutate: func(c *StructuredConfig) { c.Adapter.HTTPAddress = "" }, wantErr: ErrInvalidAdapterConfigs},
		{name: "zero batch size", mutate: func(c *StructuredConfig) { c.Engine.BatchSize = 0 }, wantErr: ErrInvalidEngineConfigs},
		{name: "negative retries", mutate: func(c *StructuredConfig) { c.Engine.MaxRetries = -1 }, wantErr: ErrInvalidEngineConfigs},
		{name: "zero recovery interval", mutate: func(c *StructuredConfig) { c.Workers.RecoveryInterval = 0 }, wantErr: ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
