// Package server runs the local API server and shuts it down gracefully when
// its context is cancelled.
package server
