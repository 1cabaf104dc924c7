// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-toggle-sync/internal/logger"
	"github.com/MKhiriev/go-toggle-sync/models"
	"github.com/cenkalti/backoff"
	"github.com/gorilla/websocket"
)

// streamCommand is sent to the server to narrow the push feed to the entities
// the client currently displays.
type streamCommand struct {
	Action   string `json:"action"`
	EntityID string `json:"entity_id"`
}

const (
	actionSubscribe   = "subscribe"
	actionUnsubscribe = "unsubscribe"
)

// WebSocketPushStream is a [PushStream] over a WebSocket connection. It keeps
// reconnecting with exponential backoff until its Run context is cancelled,
// re-sends all subscriptions after every reconnect, and reports Online while
// a connection is established.
//
// Subscribe and its cancel function never touch the connection: stream
// commands are queued and written by the session's writer goroutine.
type WebSocketPushStream struct {
	url    string
	header http.Header
	dialer *websocket.Dialer

	maxBackoff   time.Duration
	writeTimeout time.Duration

	online atomic.Bool

	mu          sync.RWMutex
	subscribers map[string]map[uint64]func(models.PushUpdate)
	nextID      uint64
	onConnected []func(ctx context.Context)

	// pending is the newest unsent command action per entity, guarded by mu.
	pending map[string]string
	wake    chan struct{}

	logger *logger.Logger
}

// NewWebSocketPushStream creates a stream for streamAddress. The stream is
// idle until Run is called.
func NewWebSocketPushStream(streamAddress, actorToken string, logger *logger.Logger) (*WebSocketPushStream, error) {
	addr := strings.TrimSpace(streamAddress)
	if addr == "" {
		return nil, errors.New("empty stream address")
	}
	if !strings.HasPrefix(addr, "ws://") && !strings.HasPrefix(addr, "wss://") {
		return nil, fmt.Errorf("stream address must use ws:// or wss://: %s", addr)
	}

	header := http.Header{}
	if token := strings.TrimSpace(actorToken); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	return &WebSocketPushStream{
		url:         addr,
		header:      header,
		dialer:      websocket.DefaultDialer,
		maxBackoff:   30 * time.Second,
		writeTimeout: 10 * time.Second,
		subscribers:  make(map[string]map[uint64]func(models.PushUpdate)),
		pending:      make(map[string]string),
		wake:         make(chan struct{}, 1),
		logger:       logger,
	}, nil
}

// OnConnected registers fn to be called after every successful (re)connect.
// The client uses it to re-drive pending actions when connectivity returns.
func (s *WebSocketPushStream) OnConnected(fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onConnected = append(s.onConnected, fn)
}

// Online implements [PushStream].
func (s *WebSocketPushStream) Online() bool {
	return s.online.Load()
}

// Subscribe implements [PushStream].
func (s *WebSocketPushStream) Subscribe(entityID string, fn func(models.PushUpdate)) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	subs, ok := s.subscribers[entityID]
	if !ok {
		subs = make(map[uint64]func(models.PushUpdate))
		s.subscribers[entityID] = subs
	}
	subs[id] = fn
	if !ok {
		s.queueCommand(entityID, actionSubscribe)
	}
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(entityID, id) })
	}
}

func (s *WebSocketPushStream) unsubscribe(entityID string, id uint64) {
	s.mu.Lock()
	subs := s.subscribers[entityID]
	delete(subs, id)
	if len(subs) == 0 {
		delete(s.subscribers, entityID)
		s.queueCommand(entityID, actionUnsubscribe)
	}
	s.mu.Unlock()
}

// queueCommand records action as the next command for entityID and wakes the
// writer. Callers hold s.mu.
func (s *WebSocketPushStream) queueCommand(entityID, action string) {
	s.pending[entityID] = action
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Run connects to the server and dispatches updates until ctx is cancelled.
// Connection failures are retried with exponential backoff capped at 30s.
func (s *WebSocketPushStream) Run(ctx context.Context) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = s.maxBackoff
	b.MaxElapsedTime = 0
	b.Reset()

	for {
		err := s.session(ctx, b)
		if ctx.Err() != nil {
			return nil
		}

		wait := b.NextBackOff()
		s.logger.Warn().Err(err).
			Str("func", "WebSocketPushStream.Run").
			Dur("retry_in", wait).
			Msg("push stream disconnected")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(wait):
		}
	}
}

// session runs one connection until it breaks.
func (s *WebSocketPushStream) session(ctx context.Context, b backoff.BackOff) error {
	conn, _, err := s.dialer.DialContext(ctx, s.url, s.header)
	if err != nil {
		return fmt.Errorf("dial push stream: %w", err)
	}
	defer conn.Close()
	b.Reset()

	// every subscription is re-sent below, so older commands are moot
	s.mu.Lock()
	entityIDs := make([]string, 0, len(s.subscribers))
	for id := range s.subscribers {
		entityIDs = append(entityIDs, id)
	}
	clear(s.pending)
	hooks := append([]func(context.Context){}, s.onConnected...)
	s.mu.Unlock()

	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// unblocks ReadJSON and a stalled write
	stop := context.AfterFunc(sessionCtx, func() { _ = conn.Close() })
	defer stop()

	writeErr := make(chan error, 1)
	go func() {
		err := s.writeLoop(sessionCtx, conn, entityIDs)
		cancel()
		writeErr <- err
	}()

	s.online.Store(true)
	defer s.online.Store(false)

	s.logger.Info().Str("func", "WebSocketPushStream.session").Str("url", s.url).Msg("push stream connected")
	for _, hook := range hooks {
		go hook(ctx)
	}

	for {
		var update models.PushUpdate
		if err = conn.ReadJSON(&update); err != nil {
			cancel()
			if wErr := <-writeErr; wErr != nil {
				return wErr
			}
			return fmt.Errorf("read push update: %w", err)
		}
		if update.EntityID == "" {
			continue
		}
		s.dispatch(update)
	}
}

// writeLoop is the only writer of conn. It sends a subscribe command for each
// of entityIDs and then every queued command until ctx is done or a write
// fails.
func (s *WebSocketPushStream) writeLoop(ctx context.Context, conn *websocket.Conn, entityIDs []string) error {
	for _, id := range entityIDs {
		if err := s.write(conn, streamCommand{Action: actionSubscribe, EntityID: id}); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.wake:
		}

		s.mu.Lock()
		cmds := make([]streamCommand, 0, len(s.pending))
		for id, action := range s.pending {
			cmds = append(cmds, streamCommand{Action: action, EntityID: id})
		}
		clear(s.pending)
		s.mu.Unlock()

		for _, cmd := range cmds {
			if err := s.write(conn, cmd); err != nil {
				return err
			}
		}
	}
}

func (s *WebSocketPushStream) write(conn *websocket.Conn, cmd streamCommand) error {
	if err := conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := conn.WriteJSON(cmd); err != nil {
		return fmt.Errorf("send %s command for %s: %w", cmd.Action, cmd.EntityID, err)
	}
	return nil
}

func (s *WebSocketPushStream) dispatch(update models.PushUpdate) {
	s.mu.RLock()
	fns := make([]func(models.PushUpdate), 0, len(s.subscribers[update.EntityID]))
	for _, fn := range s.subscribers[update.EntityID] {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(update)
	}
}

// NopPushStream is a [PushStream] that never delivers updates and always
// reports the client as online. Used when no stream address is configured.
type NopPushStream struct{}

// Subscribe implements [PushStream].
func (NopPushStream) Subscribe(string, func(models.PushUpdate)) func() { return func() {} }

// Online implements [PushStream].
func (NopPushStream) Online() bool { return true }
