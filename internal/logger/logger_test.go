package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewLogger_RoleField verifies that every log entry contains the "role" field.
func TestNewLogger_RoleField(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("test-role")
	l.Logger = l.Output(&buf)

	l.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test-role", entry["role"])
	_, hasTime := entry["time"]
	assert.True(t, hasTime, "expected 'time' field in log entry")
}

// TestNewLogger_CallerFieldName verifies that the caller field is named "func".
func TestNewLogger_CallerFieldName(t *testing.T) {
	NewLogger("caller-role")
	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewClientLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")
	l := NewClientLogger("client", path, "info")
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	l.Info().Msg("to file")
	l.Debug().Msg("filtered out")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.NotContains(t, string(data), "filtered out")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, parseLevel(" WARN "))
	assert.Equal(t, zerolog.DebugLevel, parseLevel(""))
	assert.Equal(t, zerolog.DebugLevel, parseLevel("loud"))
}

// TestNop_DiscardsOutput verifies that a Nop logger produces no output.
func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

func TestWithEntity_AddsField(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("engine")
	l.Logger = l.Output(&buf)

	l.WithEntity("c1").Info().Msg("toggle")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "c1", entry["entity_id"])
}

func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("ctx")
	l.Logger = l.Output(&buf)

	ctx := l.WithContext(context.Background())
	FromContext(ctx).Info().Msg("from ctx")

	assert.Contains(t, buf.String(), "from ctx")
}

func TestFromRequest_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("req")
	l.Logger = l.Output(&buf)

	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(l.WithContext(r.Context()))
	FromRequest(r).Info().Msg("from request")

	assert.Contains(t, buf.String(), "from request")
}
