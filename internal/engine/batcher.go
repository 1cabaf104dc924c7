package engine

import (
	"sync"
	"time"
)

// BatchItem is one entity of a flushed batch.
type BatchItem[T any] struct {
	EntityID string
	Payload  T
}

// Batcher groups payloads of distinct entities into one flush. A batch is
// flushed when it holds size entities or delay after its first item,
// whichever comes first.
type Batcher[T any] struct {
	mu      sync.Mutex
	size    int
	delay   time.Duration
	flushFn func([]BatchItem[T])

	items  map[string]T
	order  []string
	timer  *time.Timer
	closed bool
}

// NewBatcher returns a batcher handing each batch to flush. flush may be
// called from a timer or a fresh goroutine and must be safe for concurrent
// use.
func NewBatcher[T any](size int, delay time.Duration, flush func([]BatchItem[T])) *Batcher[T] {
	if size < 1 {
		size = 1
	}
	return &Batcher[T]{
		size:    size,
		delay:   delay,
		flushFn: flush,
		items:   make(map[string]T),
	}
}

// AddToBatch queues payload for entityID, replacing the payload of an entity
// already in the batch. AddToBatch never calls the flush function on the
// caller's goroutine, so it is safe to call while holding a lock the flush
// function needs.
func (b *Batcher[T]) AddToBatch(entityID string, payload T) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}

	if _, ok := b.items[entityID]; !ok {
		b.order = append(b.order, entityID)
	}
	b.items[entityID] = payload

	if len(b.order) >= b.size {
		batch := b.take()
		b.mu.Unlock()
		go b.flushFn(batch)
		return
	}

	if b.timer == nil {
		b.timer = time.AfterFunc(b.delay, b.Flush)
	}
	b.mu.Unlock()
}

// Flush hands the current batch to the flush function and returns when it
// does. An empty batch is not flushed.
func (b *Batcher[T]) Flush() {
	b.mu.Lock()
	batch := b.take()
	b.mu.Unlock()

	if len(batch) > 0 {
		b.flushFn(batch)
	}
}

// Len returns the number of entities waiting for the next flush.
func (b *Batcher[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.order)
}

// Close stops the timer and drops unflushed items. Later adds are ignored.
func (b *Batcher[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.take()
}

// take empties the batch. Callers hold b.mu.
func (b *Batcher[T]) take() []BatchItem[T] {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	if len(b.order) == 0 {
		return nil
	}

	batch := make([]BatchItem[T], 0, len(b.order))
	for _, id := range b.order {
		batch = append(batch, BatchItem[T]{EntityID: id, Payload: b.items[id]})
	}
	b.items = make(map[string]T)
	b.order = b.order[:0:0]

	return batch
}
