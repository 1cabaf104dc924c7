package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-toggle-sync/internal/adapter"
	"github.com/MKhiriev/go-toggle-sync/internal/logger"
	"github.com/MKhiriev/go-toggle-sync/models"
	"github.com/cenkalti/backoff"
	lru "github.com/hashicorp/golang-lru"
)

// settledHistorySize bounds how many entities remember their last settled
// intent.
const settledHistorySize = 4096

// SubmitFunc sends one intent to the server.
type SubmitFunc func(ctx context.Context, action models.QueuedAction) (models.ServerState, error)

// QueueConfig tunes an [ActionQueue].
type QueueConfig struct {
	DeviceID      string
	MaxRetries    int
	BaseDelay     time.Duration
	SubmitTimeout time.Duration
	BatchSize     int
	BatchDelay    time.Duration

	// OnRetry is called after a retryable failure, with the retry count
	// already incremented and before the backoff starts.
	OnRetry func(action models.QueuedAction)

	// Now is the clock used to stamp intents; nil means [time.Now].
	Now func() time.Time
}

type queuePhase int

const (
	phaseBatched queuePhase = iota
	phaseInFlight
	phaseBackoff
)

type queueResult struct {
	state models.ServerState
	err   error
}

// entityQueue is the per-entity state of the queue. Entities without an
// entry are idle.
type entityQueue struct {
	latest  models.QueuedAction
	version uint64
	phase   queuePhase
	waiters []chan queueResult
}

// ActionQueue serializes submissions per entity and coalesces intents: while
// an entity is batched, in flight or backing off, a new intent replaces the
// pending one and every waiter receives the result of the newest intent.
type ActionQueue struct {
	mu       sync.Mutex
	cfg      QueueConfig
	submit   SubmitFunc
	batcher  *Batcher[models.QueuedAction]
	entities map[string]*entityQueue
	closed   bool

	// settled maps an entity id to the timestamp of its newest settled
	// intent, so a stale recovered copy is not submitted twice.
	settled *lru.Cache

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	metrics *Metrics
	logger  *logger.Logger
}

// NewActionQueue returns a queue submitting intents with submit.
func NewActionQueue(cfg QueueConfig, submit SubmitFunc, metrics *Metrics, log *logger.Logger) *ActionQueue {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.OnRetry == nil {
		cfg.OnRetry = func(models.QueuedAction) {}
	}
	if log == nil {
		log = logger.Nop()
	}

	// lru.New fails only for a size below one
	settled, _ := lru.New(settledHistorySize)

	ctx, cancel := context.WithCancel(context.Background())
	q := &ActionQueue{
		cfg:      cfg,
		submit:   submit,
		entities: make(map[string]*entityQueue),
		settled:  settled,
		ctx:      ctx,
		cancel:   cancel,
		metrics:  metrics,
		logger:   log,
	}
	q.batcher = NewBatcher(cfg.BatchSize, cfg.BatchDelay, q.flush)

	return q
}

// Enqueue installs !requestedCurrentState as the pending intent of entityID
// and waits for the settled result of the entity's newest intent.
func (q *ActionQueue) Enqueue(ctx context.Context, entityID string, requestedCurrentState bool, actorID string) (models.ServerState, error) {
	return q.EnqueueAction(ctx, models.QueuedAction{
		EntityID:    entityID,
		TargetState: !requestedCurrentState,
		ActorID:     actorID,
		DeviceID:    q.cfg.DeviceID,
		Timestamp:   q.cfg.Now().UnixMilli(),
	})
}

// EnqueueAction is [ActionQueue.Enqueue] for a fully built intent.
// Cancelling ctx stops the wait, not the submission.
func (q *ActionQueue) EnqueueAction(ctx context.Context, action models.QueuedAction) (models.ServerState, error) {
	ch, err := q.push(action)
	if err != nil {
		return models.ServerState{}, err
	}
	return q.await(ctx, ch)
}

// Resubmit re-drives a recovered intent as if its last attempt had just
// failed: it waits the backoff of action.RetryCount and then submits. It
// returns [ErrEntityBusy] while the entity has a queued intent and
// [ErrAlreadySettled] when this or a newer intent of the entity has settled.
func (q *ActionQueue) Resubmit(ctx context.Context, action models.QueuedAction) (models.ServerState, error) {
	ch, err := q.resubmit(action)
	if err != nil {
		return models.ServerState{}, err
	}
	return q.await(ctx, ch)
}

// push installs action as the newest intent of its entity and returns the
// channel its settled result is delivered on.
func (q *ActionQueue) push(action models.QueuedAction) (<-chan queueResult, error) {
	ch := make(chan queueResult, 1)

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil, ErrQueueClosed
	}

	st, ok := q.entities[action.EntityID]
	if !ok {
		st = &entityQueue{phase: phaseBatched}
		q.entities[action.EntityID] = st
	}
	st.version++
	st.latest = action
	st.waiters = append(st.waiters, ch)
	if st.phase == phaseBatched {
		q.batcher.AddToBatch(action.EntityID, action)
	}

	return ch, nil
}

func (q *ActionQueue) resubmit(action models.QueuedAction) (<-chan queueResult, error) {
	ch := make(chan queueResult, 1)

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil, ErrQueueClosed
	}
	if _, ok := q.entities[action.EntityID]; ok {
		return nil, ErrEntityBusy
	}
	if ts, ok := q.settled.Get(action.EntityID); ok && action.Timestamp <= ts.(int64) {
		return nil, ErrAlreadySettled
	}

	q.entities[action.EntityID] = &entityQueue{
		latest:  action,
		version: 1,
		phase:   phaseBackoff,
		waiters: []chan queueResult{ch},
	}
	q.wg.Add(1)
	go q.backoff(action.EntityID, action.RetryCount)

	return ch, nil
}

// Busy reports whether entityID has an unsettled intent.
func (q *ActionQueue) Busy(entityID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.entities[entityID]
	return ok
}

// Flush submits the current batch without waiting for the batch delay and
// returns when those submissions have settled or entered backoff.
func (q *ActionQueue) Flush() {
	q.batcher.Flush()
}

// Close stops the queue. Waiters receive [ErrQueueClosed]; the newest intent
// of every unsettled entity is returned so the caller can persist it.
func (q *ActionQueue) Close() []models.QueuedAction {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true

	unsettled := make([]models.QueuedAction, 0, len(q.entities))
	var waiters []chan queueResult
	for _, st := range q.entities {
		unsettled = append(unsettled, st.latest)
		waiters = append(waiters, st.waiters...)
	}
	q.entities = make(map[string]*entityQueue)
	q.mu.Unlock()

	q.cancel()
	q.batcher.Close()
	for _, ch := range waiters {
		ch <- queueResult{err: ErrQueueClosed}
	}
	q.wg.Wait()

	return unsettled
}

func (q *ActionQueue) await(ctx context.Context, ch <-chan queueResult) (models.ServerState, error) {
	select {
	case r := <-ch:
		return r.state, r.err
	case <-ctx.Done():
		return models.ServerState{}, ctx.Err()
	}
}

// flush is the batcher callback. It fires one request per entity
// concurrently and returns when all of them are settled.
func (q *ActionQueue) flush(items []BatchItem[models.QueuedAction]) {
	var wg sync.WaitGroup

	for _, item := range items {
		q.mu.Lock()
		st, ok := q.entities[item.EntityID]
		if q.closed || !ok || st.phase != phaseBatched {
			q.mu.Unlock()
			continue
		}
		// item.Payload may lag behind st.latest when a size-triggered flush
		// races a new intent
		action, version := st.latest, st.version
		st.phase = phaseInFlight
		q.wg.Add(1)
		q.mu.Unlock()

		wg.Go(func() {
			defer q.wg.Done()
			q.submitOne(action, version)
		})
	}

	wg.Wait()
}

func (q *ActionQueue) submitOne(action models.QueuedAction, version uint64) {
	ctx, cancel := context.WithTimeout(q.ctx, q.cfg.SubmitTimeout)
	state, err := q.submit(ctx, action)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, adapter.ErrTimeout) {
		err = fmt.Errorf("%w: %w", adapter.ErrTimeout, err)
	}
	cancel()

	q.settle(action, version, state, err)
}

func (q *ActionQueue) settle(action models.QueuedAction, version uint64, state models.ServerState, err error) {
	log := q.logger.WithEntity(action.EntityID)

	q.mu.Lock()
	st, ok := q.entities[action.EntityID]
	if q.closed || !ok {
		q.mu.Unlock()
		return
	}

	// a newer intent arrived while this one was in flight
	if st.version != version {
		st.phase = phaseBatched
		q.batcher.AddToBatch(action.EntityID, st.latest)
		q.mu.Unlock()
		log.Debug().Str("func", "ActionQueue.settle").Msg("discarding superseded result")
		return
	}

	if err == nil {
		waiters := st.waiters
		q.markSettled(action)
		q.mu.Unlock()

		q.metrics.submission("success")
		resolve(waiters, queueResult{state: state})
		return
	}

	class := adapter.Classify(err)
	if class == adapter.ClassRetryable && action.RetryCount < q.cfg.MaxRetries {
		action.RetryCount++
		st.latest = action
		st.phase = phaseBackoff
		q.wg.Add(1)
		q.mu.Unlock()

		q.metrics.submission(class.String())
		q.metrics.retry()
		log.Warn().Err(err).
			Str("func", "ActionQueue.settle").
			Int("retry_count", action.RetryCount).
			Dur("retry_in", q.backoffDelay(action.RetryCount)).
			Msg("submission failed, retrying")

		q.cfg.OnRetry(action)
		go q.backoff(action.EntityID, action.RetryCount)
		return
	}

	waiters := st.waiters
	q.markSettled(action)
	q.mu.Unlock()

	if class == adapter.ClassRetryable {
		err = fmt.Errorf("%w after %d retries: %w", ErrRetriesExhausted, action.RetryCount, err)
	}
	q.metrics.submission(adapter.ClassTerminal.String())
	log.Error().Err(err).Str("func", "ActionQueue.settle").Msg("submission failed")
	resolve(waiters, queueResult{err: err})
}

// markSettled removes the entity of action from the queue and remembers the
// timestamp of action. Callers hold q.mu.
func (q *ActionQueue) markSettled(action models.QueuedAction) {
	delete(q.entities, action.EntityID)
	if ts, ok := q.settled.Get(action.EntityID); !ok || action.Timestamp > ts.(int64) {
		q.settled.Add(action.EntityID, action.Timestamp)
	}
}

// backoff waits the delay of retryCount and puts the entity's newest intent
// back into the batch. Callers have already done q.wg.Add(1).
func (q *ActionQueue) backoff(entityID string, retryCount int) {
	defer q.wg.Done()

	t := time.NewTimer(q.backoffDelay(retryCount))
	defer t.Stop()

	select {
	case <-q.ctx.Done():
		return
	case <-t.C:
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	st, ok := q.entities[entityID]
	if q.closed || !ok || st.phase != phaseBackoff {
		return
	}
	st.phase = phaseBatched
	q.batcher.AddToBatch(entityID, st.latest)
}

// backoffDelay returns 2^retryCount * BaseDelay.
func (q *ActionQueue) backoffDelay(retryCount int) time.Duration {
	if q.cfg.BaseDelay <= 0 {
		return 0
	}

	b := &backoff.ExponentialBackOff{
		InitialInterval:     q.cfg.BaseDelay,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         q.cfg.BaseDelay << 16,
		MaxElapsedTime:      0,
		Clock:               backoff.SystemClock,
	}
	b.Reset()

	d := b.NextBackOff()
	for i := 0; i < retryCount; i++ {
		d = b.NextBackOff()
	}
	return d
}

func resolve(waiters []chan queueResult, r queueResult) {
	for _, ch := range waiters {
		ch <- r
	}
}
