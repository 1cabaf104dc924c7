package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type batchRecorder struct {
	mu      sync.Mutex
	batches [][]BatchItem[int]
}

func (r *batchRecorder) flush(items []BatchItem[int]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, items)
}

func (r *batchRecorder) Batches() [][]BatchItem[int] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]BatchItem[int](nil), r.batches...)
}

func TestBatcher_FlushesOnDelay(t *testing.T) {
	rec := &batchRecorder{}
	b := NewBatcher(10, 20*time.Millisecond, rec.flush)

	b.AddToBatch("a", 1)
	b.AddToBatch("b", 2)
	assert.Empty(t, rec.Batches())

	require.Eventually(t, func() bool { return len(rec.Batches()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []BatchItem[int]{{EntityID: "a", Payload: 1}, {EntityID: "b", Payload: 2}}, rec.Batches()[0])
	assert.Zero(t, b.Len())
}

func TestBatcher_FlushesOnSize(t *testing.T) {
	rec := &batchRecorder{}
	b := NewBatcher(3, time.Hour, rec.flush)

	b.AddToBatch("a", 1)
	b.AddToBatch("b", 2)
	b.AddToBatch("c", 3)

	require.Eventually(t, func() bool { return len(rec.Batches()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Len(t, rec.Batches()[0], 3)
	assert.Zero(t, b.Len())
}

func TestBatcher_ReplacesPayloadOfQueuedEntity(t *testing.T) {
	rec := &batchRecorder{}
	b := NewBatcher(2, time.Hour, rec.flush)

	b.AddToBatch("a", 1)
	b.AddToBatch("a", 2)
	b.AddToBatch("a", 3)
	assert.Equal(t, 1, b.Len(), "re-adding an entity does not count towards the size")

	b.Flush()
	require.Len(t, rec.Batches(), 1)
	assert.Equal(t, []BatchItem[int]{{EntityID: "a", Payload: 3}}, rec.Batches()[0])
}

func TestBatcher_FlushEmpty(t *testing.T) {
	rec := &batchRecorder{}
	b := NewBatcher(2, time.Hour, rec.flush)

	b.Flush()

	assert.Empty(t, rec.Batches())
}

func TestBatcher_Close(t *testing.T) {
	rec := &batchRecorder{}
	b := NewBatcher(10, 10*time.Millisecond, rec.flush)

	b.AddToBatch("a", 1)
	b.Close()
	b.AddToBatch("b", 2)

	time.Sleep(40 * time.Millisecond)
	assert.Empty(t, rec.Batches())
	assert.Zero(t, b.Len())
}
