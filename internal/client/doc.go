// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client wires the toggle sync client: the durable retry store, the
// server adapter and push stream, the sync engine, its background workers and
// the local API server.
package client
