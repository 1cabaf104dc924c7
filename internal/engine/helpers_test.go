package engine

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-toggle-sync/models"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(ms int64) *fakeClock {
	return &fakeClock{t: time.UnixMilli(ms)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// fakeServer records submissions and answers them with respond.
type fakeServer struct {
	mu      sync.Mutex
	calls   []models.SubmitRequest
	respond func(ctx context.Context, n int, req models.SubmitRequest) (models.ServerState, error)
}

func (s *fakeServer) SubmitToggle(ctx context.Context, req models.SubmitRequest) (models.ServerState, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	n := len(s.calls)
	s.mu.Unlock()

	return s.respond(ctx, n, req)
}

func (s *fakeServer) Calls() []models.SubmitRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.SubmitRequest(nil), s.calls...)
}

func (s *fakeServer) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// echoServer confirms every request with count and ts.
func echoServer(count, ts int64) *fakeServer {
	return &fakeServer{respond: func(_ context.Context, _ int, req models.SubmitRequest) (models.ServerState, error) {
		return models.ServerState{IsLiked: req.TargetIsLiked, Count: count, ServerTimestamp: ts}, nil
	}}
}

// blockingServer holds every request until release is closed.
func blockingServer(release <-chan struct{}, state models.ServerState) *fakeServer {
	return &fakeServer{respond: func(ctx context.Context, _ int, _ models.SubmitRequest) (models.ServerState, error) {
		select {
		case <-release:
			return state, nil
		case <-ctx.Done():
			return models.ServerState{}, ctx.Err()
		}
	}}
}

func errorServer(err error) *fakeServer {
	return &fakeServer{respond: func(context.Context, int, models.SubmitRequest) (models.ServerState, error) {
		return models.ServerState{}, err
	}}
}

type fakePolicy struct {
	err error
}

func (p fakePolicy) Authorize(context.Context, string) error {
	return p.err
}
