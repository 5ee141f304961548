package config

import "time"

// SyncConfig controls the cache-refresh policy for remote catalog data.
// A data kind is refreshed when its table is empty or its last successful
// sync is older than MaxAge.
type SyncConfig struct {
	// Maximum age of cached catalog data before a sync refreshes it
	MaxAge time.Duration `mapstructure:"max_age" validate:"required"`
}
