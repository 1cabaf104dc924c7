// Package engine implements optimistic per-entity toggle synchronization.
//
// A toggle is applied to the locally observed [models.ToggleState] at once
// and then confirmed by the server in the background:
//
//	Toggle -> RateLimiter -> optimistic flip -> ActionQueue -> Batcher -> ServerAdapter
//
// The [ActionQueue] coalesces rapid toggles of one entity into the latest
// intent and retries retryable failures with exponential backoff. Failed
// intents are persisted to a [store.RetryStore] and re-driven after a restart.
// Terminal failures roll the entity back to its last confirmed state.
//
// Push updates from the server go through the [ConflictResolver], which keeps
// them from overwriting an action the user has just taken.
package engine
