// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks input arriving through the local API before it
// reaches the sync engine.
package validators

import "context"

// Validator validates a value. When fields are given, only those fields are
// checked.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
