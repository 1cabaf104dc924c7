// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-toggle-sync/internal/adapter"
	"github.com/MKhiriev/go-toggle-sync/internal/config"
	"github.com/MKhiriev/go-toggle-sync/internal/logger"
	"github.com/MKhiriev/go-toggle-sync/internal/store"
	"github.com/MKhiriev/go-toggle-sync/internal/validators"
	"github.com/MKhiriev/go-toggle-sync/models"
	"github.com/rs/zerolog"
)

// Dependencies are the collaborators of a [SyncEngine].
type Dependencies struct {
	// Server submits intents. Required.
	Server adapter.ServerAdapter

	// Push delivers server-side changes and reports connectivity. Nil means
	// [adapter.NopPushStream].
	Push adapter.PushStream

	// Store persists intents that failed with a retryable error. Required.
	Store store.RetryStore

	// DeviceID identifies this client installation. Required.
	DeviceID string

	// Policy authorizes actors; nil admits every non-empty actor id.
	Policy ActorPolicy

	Metrics *Metrics
	Logger  *logger.Logger

	// Now is the engine clock; nil means [time.Now].
	Now func() time.Time
}

// SyncEngine owns the observable toggle state of every tracked entity.
type SyncEngine struct {
	mu     sync.Mutex
	cache  *StateCache
	subs   map[string]map[uint64]func(models.ToggleState)
	nextID uint64
	closed bool

	limiter   *RateLimiter
	resolver  *ConflictResolver
	queue     *ActionQueue
	validator validators.Validator

	server   adapter.ServerAdapter
	push     adapter.PushStream
	store    store.RetryStore
	policy   ActorPolicy
	deviceID string
	now      func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	metrics *Metrics
	logger  *logger.Logger
}

// NewSyncEngine wires a [SyncEngine] from cfg and deps. Call
// [SyncEngine.Start] to recover persisted intents and [SyncEngine.Close] to
// stop it.
func NewSyncEngine(cfg config.Engine, deps Dependencies) (*SyncEngine, error) {
	if deps.Server == nil || deps.Store == nil || deps.DeviceID == "" {
		return nil, errors.New("sync engine requires a server adapter, a retry store and a device id")
	}
	if deps.Push == nil {
		deps.Push = adapter.NopPushStream{}
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &SyncEngine{
		subs:      make(map[string]map[uint64]func(models.ToggleState)),
		limiter:   NewRateLimiter(cfg.MaxActionsPerWindow, cfg.RateWindow, deps.Now),
		resolver:  NewConflictResolver(),
		validator: validators.NewToggleValidator(),
		server:    deps.Server,
		push:      deps.Push,
		store:     deps.Store,
		policy:    deps.Policy,
		deviceID:  deps.DeviceID,
		now:       deps.Now,
		ctx:       ctx,
		cancel:    cancel,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
	}

	cache, err := NewStateCache(cfg.CacheSize, e.onEvict)
	if err != nil {
		cancel()
		return nil, err
	}
	e.cache = cache

	e.queue = NewActionQueue(QueueConfig{
		DeviceID:      deps.DeviceID,
		MaxRetries:    cfg.MaxRetries,
		BaseDelay:     cfg.RetryBaseDelay,
		SubmitTimeout: cfg.SubmitTimeout,
		BatchSize:     cfg.BatchSize,
		BatchDelay:    cfg.BatchDelay,
		OnRetry:       e.onRetry,
		Now:           deps.Now,
	}, e.submit, deps.Metrics, deps.Logger)

	return e, nil
}

// Toggle flips the liked state of entityID for actorID optimistically and
// confirms it with the server in the background.
//
// It returns [ErrUnauthenticated], [ErrBlocked] or [ErrRateLimited] without
// touching any state when the toggle is not admitted.
func (e *SyncEngine) Toggle(ctx context.Context, entityID, actorID string) error {
	if entityID == "" {
		return ErrEmptyEntityID
	}
	if actorID == "" {
		e.metrics.toggle("unauthenticated")
		return ErrUnauthenticated
	}
	if e.policy != nil {
		if err := e.policy.Authorize(ctx, actorID); err != nil {
			if errors.Is(err, ErrBlocked) {
				e.metrics.toggle("blocked")
			} else {
				e.metrics.toggle("unauthenticated")
			}
			return err
		}
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrEngineClosed
	}
	if !e.limiter.CanAct(entityID) {
		e.mu.Unlock()
		e.metrics.toggle("rate_limited")
		return ErrRateLimited
	}

	rec := e.record(entityID)
	ts := e.now().UnixMilli()
	action := models.QueuedAction{
		EntityID:    entityID,
		TargetState: !rec.state.IsLiked,
		ActorID:     actorID,
		DeviceID:    e.deviceID,
		Timestamp:   ts,
	}

	// registered under e.mu so intents reach the queue in toggle order
	result, err := e.queue.push(action)
	if err != nil {
		e.mu.Unlock()
		return err
	}

	e.limiter.RecordAction(entityID)
	e.resolver.RecordLocalAction(entityID, ts, e.deviceID)

	rec.state.IsLiked = action.TargetState
	rec.state.Count = adjustCount(rec.state.Count, action.TargetState)
	rec.state.Status = models.StatusLoading
	rec.intent++

	snapshot, intent := rec.state, rec.intent
	e.wg.Add(1)
	e.mu.Unlock()

	e.metrics.toggle("accepted")
	e.notify(snapshot)

	go e.settle(entityID, intent, result)

	return nil
}

// ReceivePush merges a server push into the state of update.EntityID if the
// [ConflictResolver] accepts it. It reports whether the push was applied.
func (e *SyncEngine) ReceivePush(update models.PushUpdate) bool {
	e.mu.Lock()
	rec, ok := e.cache.get(update.EntityID)
	if !ok || !e.resolver.ShouldAcceptPush(update.EntityID, update.ServerTimestamp, update.DeviceID) ||
		update.ServerTimestamp < rec.state.ServerTimestamp {
		e.mu.Unlock()
		e.metrics.push(false)
		e.logger.WithEntity(update.EntityID).Debug().
			Str("func", "SyncEngine.ReceivePush").
			Int64("server_timestamp", update.ServerTimestamp).
			Msg("push update rejected")
		return false
	}

	rec.state.IsLiked = update.IsLiked
	rec.state.Count = update.Count
	rec.state.Status = models.StatusSuccess
	rec.state.ServerTimestamp = max(rec.state.ServerTimestamp, update.ServerTimestamp)
	rec.confirmed = models.ServerState{IsLiked: update.IsLiked, Count: update.Count, ServerTimestamp: update.ServerTimestamp}
	rec.seeded = true
	snapshot := rec.state
	e.mu.Unlock()

	e.metrics.push(true)
	e.notify(snapshot)
	return true
}

// Initialize seeds the state of entityID once. Tracked entities are left
// alone, except records created before any baseline was known: they take the
// baseline with their unsettled optimistic change applied on top.
func (e *SyncEngine) Initialize(entityID string, isLiked bool, count int64) {
	if count < 0 {
		count = 0
	}

	e.mu.Lock()
	rec, ok := e.cache.get(entityID)
	if ok && rec.seeded {
		e.mu.Unlock()
		return
	}

	if !ok {
		rec = e.newRecord(entityID)
		rec.state.IsLiked, rec.state.Count = isLiked, count
	} else if rec.state.Status == models.StatusLoading || rec.state.Status == models.StatusPending {
		if rec.state.IsLiked != isLiked {
			rec.state.Count = adjustCount(count, rec.state.IsLiked)
		} else {
			rec.state.Count = count
		}
	} else {
		rec.state.IsLiked, rec.state.Count = isLiked, count
		rec.state.Status = models.StatusIdle
	}
	rec.confirmed = models.ServerState{IsLiked: isLiked, Count: count}
	rec.seeded = true
	snapshot := rec.state
	e.mu.Unlock()

	e.notify(snapshot)
}

// Observe returns the current state of entityID.
func (e *SyncEngine) Observe(entityID string) (models.ToggleState, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.cache.get(entityID)
	if !ok {
		return models.ToggleState{}, false
	}
	return rec.state, true
}

// Subscribe calls fn with every new state of entityID until the returned
// cancel function is called. fn runs on the goroutine that changed the state
// and must not block.
func (e *SyncEngine) Subscribe(entityID string, fn func(models.ToggleState)) (cancel func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	if e.subs[entityID] == nil {
		e.subs[entityID] = make(map[uint64]func(models.ToggleState))
	}
	e.subs[entityID][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			delete(e.subs[entityID], id)
			if len(e.subs[entityID]) == 0 {
				delete(e.subs, entityID)
			}
		})
	}
}

// Evict drops entityID from memory. An unsettled intent keeps going and is
// still persisted or cleared in the retry store.
func (e *SyncEngine) Evict(entityID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache.remove(entityID)
}

// Tracked returns the ids of the entities currently held in memory.
func (e *SyncEngine) Tracked() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cache.Keys()
}

// Start re-drives persisted intents when the client is online.
func (e *SyncEngine) Start(ctx context.Context) error {
	if !e.push.Online() {
		e.logger.Info().Str("func", "SyncEngine.Start").Msg("offline, recovery deferred")
		return nil
	}
	return e.Recover(ctx)
}

// OnConnectivityRestored re-drives persisted intents after the connection
// came back.
func (e *SyncEngine) OnConnectivityRestored(ctx context.Context) {
	if err := e.Recover(ctx); err != nil {
		e.logger.Err(err).Str("func", "SyncEngine.OnConnectivityRestored").Msg("recovery failed")
	}
}

// Recover loads every persisted intent and resubmits the ones not already
// queued in this process. Recovered entities show the intent optimistically
// with status pending.
func (e *SyncEngine) Recover(ctx context.Context) error {
	log := e.loggerFrom(ctx)

	actions, err := e.store.ListAll(ctx)
	if err != nil {
		return err
	}

	recovered := 0
	for _, action := range actions {
		if err = e.validator.Validate(ctx, action); err != nil {
			log.Warn().Err(err).
				Str("func", "SyncEngine.Recover").
				Str("entity_id", action.EntityID).
				Msg("dropping malformed persisted action")
			e.removePersisted(action.EntityID)
			continue
		}

		e.mu.Lock()
		if e.closed {
			e.mu.Unlock()
			return ErrEngineClosed
		}
		result, err := e.queue.resubmit(action)
		if err != nil {
			e.mu.Unlock()
			if errors.Is(err, ErrEntityBusy) || errors.Is(err, ErrAlreadySettled) {
				continue
			}
			return err
		}

		rec := e.record(action.EntityID)
		if rec.state.IsLiked != action.TargetState {
			rec.state.IsLiked = action.TargetState
			rec.state.Count = adjustCount(rec.state.Count, action.TargetState)
		}
		rec.state.Status = models.StatusPending
		rec.intent++
		e.resolver.RecordLocalAction(action.EntityID, action.Timestamp, action.DeviceID)

		snapshot, intent := rec.state, rec.intent
		e.wg.Add(1)
		e.mu.Unlock()

		e.notify(snapshot)
		go e.settle(action.EntityID, intent, result)
		recovered++
	}

	log.Info().
		Str("func", "SyncEngine.Recover").
		Int("persisted", len(actions)).
		Int("resubmitted", recovered).
		Msg("recovery finished")

	return nil
}

// Flush submits batched intents right away.
func (e *SyncEngine) Flush() {
	e.queue.Flush()
}

// Close stops the engine. Unsettled intents are written to the retry store so
// the next process picks them up.
func (e *SyncEngine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	var errs []error
	for _, action := range e.queue.Close() {
		if err := e.store.Put(context.Background(), action); err != nil {
			errs = append(errs, err)
		}
	}

	e.cancel()
	e.wg.Wait()

	e.mu.Lock()
	for _, id := range e.cache.Keys() {
		e.cache.remove(id)
	}
	e.mu.Unlock()

	return errors.Join(errs...)
}

// settle waits for the queue result of an intent and applies it if intent is
// still the newest intent of the entity.
func (e *SyncEngine) settle(entityID string, intent uint64, result <-chan queueResult) {
	defer e.wg.Done()
	e.metrics.settling(1)
	defer e.metrics.settling(-1)

	// the queue answers every waiter, including on Close
	r := <-result

	switch {
	case errors.Is(r.err, ErrQueueClosed):
		return
	case r.err == nil:
		e.applyServerState(entityID, intent, r.state)
	default:
		e.logger.WithEntity(entityID).Error().Err(r.err).
			Str("func", "SyncEngine.settle").
			Msg("toggle failed, rolling back")
		e.rollback(entityID, intent)
	}
}

func (e *SyncEngine) applyServerState(entityID string, intent uint64, state models.ServerState) {
	e.mu.Lock()
	rec, ok := e.cache.peek(entityID)
	latest := !ok || rec.intent == intent
	var snapshot models.ToggleState
	if ok && latest {
		rec.state.IsLiked = state.IsLiked
		rec.state.Count = state.Count
		rec.state.Status = models.StatusSuccess
		rec.state.ServerTimestamp = max(rec.state.ServerTimestamp, state.ServerTimestamp)
		rec.confirmed = state
		rec.seeded = true
		snapshot = rec.state
	}
	e.mu.Unlock()

	if !latest {
		return
	}
	e.removePersisted(entityID)
	if ok {
		e.notify(snapshot)
	}
}

func (e *SyncEngine) rollback(entityID string, intent uint64) {
	e.mu.Lock()
	rec, ok := e.cache.peek(entityID)
	latest := !ok || rec.intent == intent
	var snapshot models.ToggleState
	if ok && latest {
		rec.state.IsLiked = rec.confirmed.IsLiked
		rec.state.Count = rec.confirmed.Count
		rec.state.Status = models.StatusError
		e.resolver.Forget(entityID)
		snapshot = rec.state
	}
	e.mu.Unlock()

	if !latest {
		return
	}
	e.metrics.rollback()
	e.removePersisted(entityID)
	if ok {
		e.notify(snapshot)
	}
}

// onRetry persists action and marks its entity pending.
func (e *SyncEngine) onRetry(action models.QueuedAction) {
	if err := e.store.Put(e.ctx, action); err != nil {
		e.logger.WithEntity(action.EntityID).Err(err).
			Str("func", "SyncEngine.onRetry").
			Msg("failed to persist retry action")
	}

	e.mu.Lock()
	rec, ok := e.cache.peek(action.EntityID)
	if !ok || rec.state.Status != models.StatusLoading {
		e.mu.Unlock()
		return
	}
	rec.state.Status = models.StatusPending
	snapshot := rec.state
	e.mu.Unlock()

	e.notify(snapshot)
}

func (e *SyncEngine) submit(ctx context.Context, action models.QueuedAction) (models.ServerState, error) {
	return e.server.SubmitToggle(ctx, models.NewSubmitRequest(action))
}

func (e *SyncEngine) removePersisted(entityID string) {
	if err := e.store.Remove(e.ctx, entityID); err != nil && !errors.Is(err, context.Canceled) {
		e.logger.WithEntity(entityID).Err(err).
			Str("func", "SyncEngine.removePersisted").
			Msg("failed to remove retry action")
	}
}

// record returns the record of entityID, creating an unseeded one. Callers
// hold e.mu.
func (e *SyncEngine) record(entityID string) *entityRecord {
	if rec, ok := e.cache.get(entityID); ok {
		return rec
	}
	return e.newRecord(entityID)
}

// newRecord adds a fresh record and subscribes it to push updates. Callers
// hold e.mu.
func (e *SyncEngine) newRecord(entityID string) *entityRecord {
	rec := &entityRecord{
		state: models.ToggleState{EntityID: entityID, Status: models.StatusIdle},
	}
	rec.unsubscribe = e.push.Subscribe(entityID, func(update models.PushUpdate) {
		update.EntityID = entityID
		e.ReceivePush(update)
	})
	e.cache.add(entityID, rec)
	return rec
}

// onEvict runs inside cache calls, which the engine only makes holding e.mu.
func (e *SyncEngine) onEvict(entityID string, rec *entityRecord) {
	if rec.unsubscribe != nil {
		rec.unsubscribe()
	}
	if !e.queue.Busy(entityID) {
		e.resolver.Forget(entityID)
	}
}

// loggerFrom prefers the logger attached to ctx over the engine logger.
func (e *SyncEngine) loggerFrom(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return e.logger
}

func (e *SyncEngine) notify(state models.ToggleState) {
	e.mu.Lock()
	fns := make([]func(models.ToggleState), 0, len(e.subs[state.EntityID]))
	for _, fn := range e.subs[state.EntityID] {
		fns = append(fns, fn)
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}

// adjustCount moves count one step towards liked, never below zero.
func adjustCount(count int64, liked bool) int64 {
	if liked {
		return count + 1
	}
	if count > 0 {
		return count - 1
	}
	return 0
}
