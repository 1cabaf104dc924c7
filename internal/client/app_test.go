package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-toggle-sync/internal/config"
	"github.com/MKhiriev/go-toggle-sync/internal/logger"
	"github.com/MKhiriev/go-toggle-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddress(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func testConfig(t *testing.T, remoteURL string) *config.StructuredConfig {
	t.Helper()
	cfg := config.Defaults()
	cfg.Adapter.HTTPAddress = remoteURL
	cfg.Storage = config.Storage{Driver: config.DriverMemory}
	cfg.Server.HTTPAddress = freeAddress(t)
	cfg.Engine.BatchDelay = 5 * time.Millisecond
	cfg.Engine.RetryBaseDelay = 10 * time.Millisecond
	return cfg
}

func doRequest(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("X-Actor-ID", "actor-1")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	return resp, []byte(buf.String())
}

func TestApp_ToggleThroughLocalAPI(t *testing.T) {
	var calls atomic.Int32
	var got models.SubmitRequest
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.ServerState{IsLiked: true, Count: 6, ServerTimestamp: 500})
	}))
	defer remote.Close()

	cfg := testConfig(t, remote.URL)
	cfg.App.DeviceID = "device-test"
	app, err := NewApp(context.Background(), cfg, models.AppBuildInfo{BuildVersion: "test"}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	base := "http://" + cfg.Server.HTTPAddress
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/api/version")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	resp, _ := doRequest(t, http.MethodPost, base+"/api/entities/c1/init", `{"is_liked":false,"count":5}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doRequest(t, http.MethodPost, base+"/api/entities/c1/toggle", "")
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	var optimistic models.ToggleState
	require.NoError(t, json.Unmarshal(body, &optimistic))
	assert.True(t, optimistic.IsLiked)
	assert.Equal(t, int64(6), optimistic.Count)

	require.Eventually(t, func() bool {
		_, body := doRequest(t, http.MethodGet, base+"/api/entities/c1", "")
		var state models.ToggleState
		return json.Unmarshal(body, &state) == nil && state.Status == models.StatusSuccess && state.ServerTimestamp == 500
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "actor-1", got.ActorID)
	assert.Equal(t, "device-test", got.DeviceID)
	assert.True(t, got.TargetIsLiked)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestNewApp_InvalidStreamAddress(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.Adapter.StreamAddress = "http://not-a-websocket"

	_, err := NewApp(context.Background(), cfg, models.AppBuildInfo{}, logger.Nop())

	assert.ErrorContains(t, err, "create push stream")
}

func TestNewApp_InvalidActorToken(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.App.ActorToken = "not-a-jwt"

	_, err := NewApp(context.Background(), cfg, models.AppBuildInfo{}, logger.Nop())

	assert.ErrorContains(t, err, "parse actor token")
}

func TestNewApp_DeviceIDFromStorage(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")

	app, err := NewApp(context.Background(), cfg, models.AppBuildInfo{}, logger.Nop())
	require.NoError(t, err)

	id, err := app.storage.DeviceID(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.NoError(t, app.engine.Close())
	require.NoError(t, app.storage.Close())
}
