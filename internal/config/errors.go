package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid adapter settings
	// (for example, missing HTTP address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates an unknown storage driver or an
	// empty DSN for a persistent driver.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidEngineConfigs indicates a non-positive engine tuning value.
	ErrInvalidEngineConfigs = errors.New("invalid engine configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero recovery interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
