package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-toggle-sync/models"
)

const (
	retryActionsTable = "retry_actions"
	deviceTable       = "device"
)

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

	retryActionColumns = []string{
		"entity_id",
		"target_state",
		"actor_id",
		"device_id",
		"timestamp",
		"retry_count",
	}
)

func upsertRetryActionQuery(action models.QueuedAction) (string, []any, error) {
	return psql.Insert(retryActionsTable).
		Columns(retryActionColumns...).
		Values(
			action.EntityID,
			action.TargetState,
			action.ActorID,
			action.DeviceID,
			action.Timestamp,
			action.RetryCount,
		).
		Suffix(`ON CONFLICT(entity_id) DO UPDATE SET
			target_state = excluded.target_state,
			actor_id     = excluded.actor_id,
			device_id    = excluded.device_id,
			timestamp    = excluded.timestamp,
			retry_count  = excluded.retry_count`).
		ToSql()
}

func deleteRetryActionQuery(entityID string) (string, []any, error) {
	return psql.Delete(retryActionsTable).
		Where(sq.Eq{"entity_id": entityID}).
		ToSql()
}

func listRetryActionsQuery() (string, []any, error) {
	return psql.Select(retryActionColumns...).
		From(retryActionsTable).
		OrderBy("timestamp", "entity_id").
		ToSql()
}

func selectDeviceIDQuery() (string, []any, error) {
	return psql.Select("device_id").
		From(deviceTable).
		Where(sq.Eq{"id": 1}).
		ToSql()
}

func insertDeviceIDQuery(deviceID string) (string, []any, error) {
	return psql.Insert(deviceTable).
		Columns("id", "device_id").
		Values(1, deviceID).
		Suffix("ON CONFLICT(id) DO NOTHING").
		ToSql()
}
