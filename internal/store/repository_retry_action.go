// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-toggle-sync/internal/logger"
	"github.com/MKhiriev/go-toggle-sync/internal/utils"
	"github.com/MKhiriev/go-toggle-sync/models"
)

type sqliteStorage struct {
	db     *DB
	ids    *utils.UUIDGenerator
	logger *logger.Logger
}

// NewSQLiteStorage builds a [LocalStorage] on an opened and migrated sqlite
// database.
func NewSQLiteStorage(db *DB, logger *logger.Logger) LocalStorage {
	return &sqliteStorage{
		db:     db,
		ids:    utils.NewUUIDGenerator(),
		logger: logger,
	}
}

func (s *sqliteStorage) Put(ctx context.Context, action models.QueuedAction) error {
	if action.EntityID == "" {
		return ErrEmptyEntityID
	}

	query, args, err := upsertRetryActionQuery(action)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).
			Str("func", "sqliteStorage.Put").
			Str("entity_id", action.EntityID).
			Msg("failed to upsert retry action")
		return fmt.Errorf("%w (entity_id=%s): %w", ErrExecutingStatement, action.EntityID, err)
	}

	return nil
}

func (s *sqliteStorage) Remove(ctx context.Context, entityID string) error {
	query, args, err := deleteRetryActionQuery(entityID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).
			Str("func", "sqliteStorage.Remove").
			Str("entity_id", entityID).
			Msg("failed to delete retry action")
		return fmt.Errorf("%w (entity_id=%s): %w", ErrExecutingStatement, entityID, err)
	}

	return nil
}

func (s *sqliteStorage) ListAll(ctx context.Context) ([]models.QueuedAction, error) {
	query, args, err := listRetryActionsQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Err(err).Str("func", "sqliteStorage.ListAll").Msg("failed to query retry actions")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	actions := make([]models.QueuedAction, 0)
	for rows.Next() {
		var a models.QueuedAction
		if err = rows.Scan(
			&a.EntityID,
			&a.TargetState,
			&a.ActorID,
			&a.DeviceID,
			&a.Timestamp,
			&a.RetryCount,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		actions = append(actions, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return actions, nil
}

// DeviceID implements [DeviceStore]. Two processes racing on first use both
// insert with ON CONFLICT DO NOTHING and then read back the winner.
func (s *sqliteStorage) DeviceID(ctx context.Context) (string, error) {
	id, err := s.selectDeviceID(ctx)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}

	query, args, err := insertDeviceIDQuery(s.ids.Generate())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return s.selectDeviceID(ctx)
}

func (s *sqliteStorage) selectDeviceID(ctx context.Context) (string, error) {
	query, args, err := selectDeviceIDQuery()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id string
	if err = s.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return id, nil
}

func (s *sqliteStorage) Close() error {
	return s.db.Close()
}
