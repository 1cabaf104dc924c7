// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package engine

import "errors"

// Local rejections of [SyncEngine.Toggle]. They never reach the queue or the
// retry store.
var (
	ErrRateLimited     = errors.New("rate limited, try again later")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrBlocked         = errors.New("actor is blocked")
	ErrEmptyEntityID   = errors.New("empty entity id")
)

var (
	// ErrRetriesExhausted wraps the last retryable error once the retry
	// budget of an intent is spent.
	ErrRetriesExhausted = errors.New("retries exhausted")

	// ErrQueueClosed is returned to waiters of intents that were still
	// unsettled when the queue was closed.
	ErrQueueClosed = errors.New("action queue closed")

	// ErrEntityBusy is returned by [ActionQueue.Resubmit] when the entity
	// already has an intent in the queue.
	ErrEntityBusy = errors.New("entity already has a queued intent")

	// ErrAlreadySettled is returned by [ActionQueue.Resubmit] for an intent
	// that is not newer than the last settled intent of its entity.
	ErrAlreadySettled = errors.New("intent already settled")

	ErrEngineClosed = errors.New("sync engine closed")
)
