// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"

	"github.com/MKhiriev/go-toggle-sync/models"
	"github.com/stretchr/testify/require"
)

func Test_upsertRetryActionQuery(t *testing.T) {
	action := models.QueuedAction{
		EntityID:    "c1",
		TargetState: true,
		ActorID:     "actor",
		DeviceID:    "dev",
		Timestamp:   100,
		RetryCount:  2,
	}

	query, args, err := upsertRetryActionQuery(action)
	require.NoError(t, err)

	require.Equal(t, []any{"c1", true, "actor", "dev", int64(100), 2}, args)

	q := strings.ToLower(query)
	require.Contains(t, q, "insert into retry_actions")
	require.Contains(t, q, "on conflict(entity_id) do update")
	require.Contains(t, q, "retry_count  = excluded.retry_count")
	// sqlite placeholders
	require.Contains(t, query, "?")
	require.NotContains(t, query, "$1")
}

func Test_deleteRetryActionQuery(t *testing.T) {
	query, args, err := deleteRetryActionQuery("c1")
	require.NoError(t, err)

	require.Equal(t, "DELETE FROM retry_actions WHERE entity_id = ?", query)
	require.Equal(t, []any{"c1"}, args)
}

func Test_listRetryActionsQuery(t *testing.T) {
	query, args, err := listRetryActionsQuery()
	require.NoError(t, err)

	require.Empty(t, args)
	require.Equal(t,
		"SELECT entity_id, target_state, actor_id, device_id, timestamp, retry_count FROM retry_actions ORDER BY timestamp, entity_id",
		query)
}

func Test_deviceIDQueries(t *testing.T) {
	query, args, err := selectDeviceIDQuery()
	require.NoError(t, err)
	require.Equal(t, "SELECT device_id FROM device WHERE id = ?", query)
	require.Equal(t, []any{1}, args)

	query, args, err = insertDeviceIDQuery("dev-1")
	require.NoError(t, err)
	require.Equal(t, "INSERT INTO device (id,device_id) VALUES (?,?) ON CONFLICT(id) DO NOTHING", query)
	require.Equal(t, []any{1, "dev-1"}, args)
}
