package store

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-toggle-sync/internal/utils"
	"github.com/MKhiriev/go-toggle-sync/models"
)

// MemoryStorage is an in-process [LocalStorage]. Entries survive engine
// re-creation within one process, which makes it the store of choice for
// tests, but not process restarts.
type MemoryStorage struct {
	mu       sync.Mutex
	actions  map[string]models.QueuedAction
	deviceID string
}

// NewMemoryStorage returns an empty [MemoryStorage].
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{actions: make(map[string]models.QueuedAction)}
}

func (m *MemoryStorage) Put(_ context.Context, action models.QueuedAction) error {
	if action.EntityID == "" {
		return ErrEmptyEntityID
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions[action.EntityID] = action
	return nil
}

func (m *MemoryStorage) Remove(_ context.Context, entityID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.actions, entityID)
	return nil
}

func (m *MemoryStorage) ListAll(_ context.Context) ([]models.QueuedAction, error) {
	m.mu.Lock()
	actions := make([]models.QueuedAction, 0, len(m.actions))
	for _, a := range m.actions {
		actions = append(actions, a)
	}
	m.mu.Unlock()

	sortActions(actions)
	return actions, nil
}

func (m *MemoryStorage) DeviceID(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.deviceID == "" {
		m.deviceID = utils.NewUUIDGenerator().Generate()
	}
	return m.deviceID, nil
}

func (m *MemoryStorage) Close() error { return nil }
