package store

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-toggle-sync/internal/logger"
	"github.com/MKhiriev/go-toggle-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgerStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewBadgerStorage(dir, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, models.QueuedAction{EntityID: "c2", TargetState: true, Timestamp: 200}))
	require.NoError(t, s.Put(ctx, models.QueuedAction{EntityID: "c1", TargetState: true, Timestamp: 100}))
	require.NoError(t, s.Put(ctx, models.QueuedAction{EntityID: "c1", TargetState: false, Timestamp: 150, RetryCount: 1}))
	require.ErrorIs(t, s.Put(ctx, models.QueuedAction{}), ErrEmptyEntityID)

	deviceID, err := s.DeviceID(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, deviceID)
	require.NoError(t, s.Close())

	reopened, err := NewBadgerStorage(dir, logger.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	actions, err := reopened.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.Equal(t, models.QueuedAction{EntityID: "c1", TargetState: false, Timestamp: 150, RetryCount: 1}, actions[0])
	assert.Equal(t, "c2", actions[1].EntityID)

	again, err := reopened.DeviceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, deviceID, again)

	require.NoError(t, reopened.Remove(ctx, "c2"))
	actions, err = reopened.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, actions, 1)
}

func TestNewBadgerStorage_EmptyPath(t *testing.T) {
	_, err := NewBadgerStorage("", logger.Nop())
	require.Error(t, err)
}
