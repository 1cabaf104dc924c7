package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/MKhiriev/go-toggle-sync/internal/logger"
	"github.com/MKhiriev/go-toggle-sync/internal/utils"
	"github.com/MKhiriev/go-toggle-sync/models"
	"github.com/dgraph-io/badger/v4"
)

var (
	retryKeyPrefix = []byte("retry/")
	deviceIDKey    = []byte("meta/device_id")
)

type badgerStorage struct {
	db     *badger.DB
	ids    *utils.UUIDGenerator
	logger *logger.Logger
}

// badgerLogger forwards badger's internal logging to zerolog.
type badgerLogger struct {
	logger *logger.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn().Msgf(format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Trace().Msgf(format, args...)
}

// NewBadgerStorage opens a badger database in dir. Badger holds an exclusive
// directory lock, so unlike sqlite one directory serves one process at a time.
func NewBadgerStorage(dir string, logger *logger.Logger) (LocalStorage, error) {
	if dir == "" {
		return nil, errors.New("path is required for badger storage")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create badger directory %s: %w", dir, err)
	}

	opts := badger.DefaultOptions(dir).
		WithSyncWrites(true).
		WithLogger(&badgerLogger{logger: logger})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	return &badgerStorage{db: db, ids: utils.NewUUIDGenerator(), logger: logger}, nil
}

func retryKey(entityID string) []byte {
	return append(append([]byte{}, retryKeyPrefix...), entityID...)
}

func (s *badgerStorage) Put(_ context.Context, action models.QueuedAction) error {
	if action.EntityID == "" {
		return ErrEmptyEntityID
	}

	value, err := json.Marshal(action)
	if err != nil {
		return fmt.Errorf("encode retry action: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(retryKey(action.EntityID), value)
	})
}

func (s *badgerStorage) Remove(_ context.Context, entityID string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(retryKey(entityID))
	})
}

func (s *badgerStorage) ListAll(_ context.Context) ([]models.QueuedAction, error) {
	actions := make([]models.QueuedAction, 0)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = retryKeyPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var a models.QueuedAction
				if err := json.Unmarshal(val, &a); err != nil {
					return fmt.Errorf("%w: %w", ErrDecodingAction, err)
				}
				actions = append(actions, a)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortActions(actions)
	return actions, nil
}

func (s *badgerStorage) DeviceID(_ context.Context) (string, error) {
	var id string
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(deviceIDKey)
		if err == nil {
			return item.Value(func(val []byte) error {
				id = string(val)
				return nil
			})
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		id = s.ids.Generate()
		return txn.Set(deviceIDKey, []byte(id))
	})
	if err != nil {
		return "", fmt.Errorf("read device id: %w", err)
	}

	return id, nil
}

func (s *badgerStorage) Close() error {
	return s.db.Close()
}

func sortActions(actions []models.QueuedAction) {
	sort.Slice(actions, func(i, j int) bool {
		if actions[i].Timestamp != actions[j].Timestamp {
			return actions[i].Timestamp < actions[j].Timestamp
		}
		return actions[i].EntityID < actions[j].EntityID
	})
}
