// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.Driver {
	case DriverSQLite, DriverBadger:
		if cfg.Storage.DSN == "" {
			return fmt.Errorf("%w: empty dsn for %s", ErrInvalidStorageConfigs, cfg.Storage.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.Driver)
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	e := cfg.Engine
	if e.MaxActionsPerWindow <= 0 || e.RateWindow <= 0 || e.MaxRetries < 0 ||
		e.RetryBaseDelay <= 0 || e.SubmitTimeout <= 0 || e.BatchSize <= 0 ||
		e.BatchDelay <= 0 || e.CacheSize <= 0 {
		return ErrInvalidEngineConfigs
	}

	if cfg.Workers.RecoveryInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
