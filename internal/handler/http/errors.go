// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Request errors produced by the handlers themselves. Engine rejections are
// passed through and mapped in [responseFromError].
var (
	ErrEntityNotTracked   = errors.New("entity is not tracked")
	ErrInvalidRequestBody = errors.New("invalid request body")
)
