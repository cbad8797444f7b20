package config

import "time"

const (
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
)

// StorageConfig configures the snapshot repository
type StorageConfig struct {
	Driver      string `yaml:"driver" validate:"oneof=sqlite postgres"`
	SQLitePath  string `yaml:"sqlite_path" validate:"required_if=Driver sqlite"`
	PostgresDSN string `yaml:"postgres_dsn" validate:"required_if=Driver postgres"`

	// Retention is how long price points are kept. Snapshots are never pruned.
	Retention     time.Duration `yaml:"retention" validate:"gte=0"`
	PruneInterval time.Duration `yaml:"prune_interval" validate:"gte=0"`

	// GlobalStatsKeep is how many global stats samples survive a prune. Zero keeps all.
	GlobalStatsKeep int `yaml:"global_stats_keep" validate:"gte=0"`
}

// DefaultStorageConfig returns default storage configuration
func DefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Driver:          StorageDriverSQLite,
		SQLitePath:      "market.db",
		Retention:       90 * 24 * time.Hour,
		PruneInterval:   24 * time.Hour,
		GlobalStatsKeep: 100,
	}
}
