// Package workers runs the background loops of the client: the push stream
// connection and the periodic recovery of persisted toggle intents.
package workers

import "context"

// Worker is a background loop. Run blocks until ctx is cancelled or the
// worker fails.
//
// [adapter.WebSocketPushStream] is a Worker as is.
type Worker interface {
	Run(ctx context.Context) error
}

// Recoverer re-drives persisted intents. Implemented by engine.SyncEngine.
type Recoverer interface {
	Recover(ctx context.Context) error
}

// Connectivity reports whether the server is reachable.
type Connectivity interface {
	Online() bool
}
