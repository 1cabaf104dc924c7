package server

import "context"

// Server defines the lifecycle of the transport servers managed by this
// package.
type Server interface {
	// Run serves requests until ctx is cancelled, then shuts down
	// gracefully. It returns the first serving error, if any.
	Run(ctx context.Context) error

	// Shutdown stops the server and frees its resources.
	Shutdown(ctx context.Context) error
}
