package engine

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/MKhiriev/go-toggle-sync/models"
)

// DefaultCacheSize is used when a cache size below one is configured.
const DefaultCacheSize = 1024

// entityRecord is everything the engine tracks about one entity.
type entityRecord struct {
	state models.ToggleState

	// confirmed is the last known-good isLiked/count, restored on rollback.
	confirmed models.ServerState

	// seeded is false for records created by a toggle or by recovery before
	// the UI supplied a baseline through Initialize.
	seeded bool

	// intent is bumped on every local intent; only the newest one applies
	// its result.
	intent uint64

	unsubscribe func()
}

// StateCache is the bounded set of entities the engine keeps in memory.
// When it is full the least recently used entity is evicted.
type StateCache struct {
	cache *lru.Cache
}

// NewStateCache returns a cache of at most size entities. onEvict is called
// for every entity leaving the cache, whether evicted or removed.
func NewStateCache(size int, onEvict func(entityID string, rec *entityRecord)) (*StateCache, error) {
	if size < 1 {
		size = DefaultCacheSize
	}

	cache, err := lru.NewWithEvict(size, func(key, value interface{}) {
		if onEvict != nil {
			onEvict(key.(string), value.(*entityRecord))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("create state cache: %w", err)
	}

	return &StateCache{cache: cache}, nil
}

func (c *StateCache) get(entityID string) (*entityRecord, bool) {
	v, ok := c.cache.Get(entityID)
	if !ok {
		return nil, false
	}
	return v.(*entityRecord), true
}

func (c *StateCache) peek(entityID string) (*entityRecord, bool) {
	v, ok := c.cache.Peek(entityID)
	if !ok {
		return nil, false
	}
	return v.(*entityRecord), true
}

func (c *StateCache) add(entityID string, rec *entityRecord) {
	c.cache.Add(entityID, rec)
}

func (c *StateCache) remove(entityID string) bool {
	return c.cache.Remove(entityID)
}

// Len returns the number of cached entities.
func (c *StateCache) Len() int {
	return c.cache.Len()
}

// Keys returns the cached entity ids from oldest to newest.
func (c *StateCache) Keys() []string {
	keys := c.cache.Keys()
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, k.(string))
	}
	return ids
}
