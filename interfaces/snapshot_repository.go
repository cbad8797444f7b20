package interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/status-im/market-assistant/models"
)

//go:generate mockgen -destination=mocks/snapshot_repository.go . SnapshotRepository

// SnapshotRepository persists coin snapshots, daily price points and global stats
type SnapshotRepository interface {
	// UpsertSnapshot inserts or replaces the snapshot keyed by coin ID
	UpsertSnapshot(ctx context.Context, snapshot models.CoinSnapshot) error

	// GetSnapshot returns nil, nil when the coin is unknown
	GetSnapshot(ctx context.Context, coinID string) (*models.CoinSnapshot, error)

	// ListSnapshots returns at most limit snapshots in the given order
	ListSnapshots(ctx context.Context, orderBy models.SnapshotOrder, limit int) ([]models.CoinSnapshot, error)

	// SearchSnapshots matches query against coin ID, symbol and name
	SearchSnapshots(ctx context.Context, query string, limit int) ([]models.CoinSnapshot, error)

	// UpsertPricePoint inserts or replaces the price of a coin on a date
	UpsertPricePoint(ctx context.Context, coinID string, date time.Time, price decimal.Decimal) error

	// ListPricePoints returns points on or after since, ascending by date
	ListPricePoints(ctx context.Context, coinID string, since time.Time) ([]models.PricePoint, error)

	// PrunePricePoints deletes points dated before the cutoff and returns how many were removed
	PrunePricePoints(ctx context.Context, before time.Time) (int64, error)

	// SaveGlobalStats records a global stats sample
	SaveGlobalStats(ctx context.Context, stats models.GlobalStats) error

	// LatestGlobalStats returns nil, nil when no sample was recorded
	LatestGlobalStats(ctx context.Context) (*models.GlobalStats, error)

	// PruneGlobalStats keeps the newest keep samples and returns how many were removed
	PruneGlobalStats(ctx context.Context, keep int) (int64, error)
}
