package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_AllFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-a", "127.0.0.1:9000",
		"-server", "http://api.local",
		"-stream", "ws://api.local/api/likes/stream",
		"-request-timeout", "7s",
		"-d", "likes.db",
		"-storage", "sqlite",
		"-token", "jwt",
		"-device-id", "dev",
		"-log-level", "warn",
		"-config", "/etc/toggle.json",
	})

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, "http://api.local", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "ws://api.local/api/likes/stream", cfg.Adapter.StreamAddress)
	assert.Equal(t, 7*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, Storage{Driver: "sqlite", DSN: "likes.db"}, cfg.Storage)
	assert.Equal(t, "jwt", cfg.App.ActorToken)
	assert.Equal(t, "dev", cfg.App.DeviceID)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, "/etc/toggle.json", cfg.JSONFilePath)
}

func TestParseFlags_NoFlags(t *testing.T) {
	cfg, err := parseFlags(nil)

	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	_, err := parseFlags([]string{"-nope"})
	assert.Error(t, err)
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "localhost", input: "localhost:8090", want: "localhost:8090"},
		{name: "ip", input: "10.0.0.1:80", want: "10.0.0.1:80"},
		{name: "no port", input: "localhost", wantErr: true},
		{name: "bad port", input: "localhost:abc", wantErr: true},
		{name: "zero port", input: "localhost:0", wantErr: true},
		{name: "port too big", input: "localhost:70000", wantErr: true},
		{name: "bad host", input: "example:80", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.String())
		})
	}
}

func TestNetAddress_String_Empty(t *testing.T) {
	var a NetAddress
	assert.Empty(t, a.String())
}
