// Package http implements the local API through which a UI drives the sync
// engine: it seeds, toggles, observes and evicts entities, and exposes the
// engine metrics for scraping.
//
// Every request under /api/entities passes through trace id, access logging
// and actor resolution middleware before it reaches the engine.
package http
