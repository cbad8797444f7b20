package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/status-im/market-assistant/config"
	"github.com/status-im/market-assistant/interfaces"
	"github.com/status-im/market-assistant/metrics"
	"github.com/status-im/market-assistant/scheduler"
)

// Repository is a SnapshotRepository and ChatRepository backed by a database
type Repository interface {
	interfaces.SnapshotRepository
	interfaces.ChatRepository
	Migrate(ctx context.Context) error
	Close() error
}

// Service owns the repository lifecycle and prunes old price points and global stats
type Service struct {
	Repository
	config    config.StorageConfig
	scheduler *scheduler.Scheduler
	now       func() time.Time
}

// Open connects to the configured backend and migrates its schema
func Open(ctx context.Context, cfg config.StorageConfig) (Repository, error) {
	var (
		repo Repository
		err  error
	)

	switch cfg.Driver {
	case config.StorageDriverPostgres:
		repo, err = NewPostgresRepository(ctx, cfg.PostgresDSN)
	case config.StorageDriverSQLite, "":
		repo, err = NewSQLiteRepository(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := repo.Migrate(ctx); err != nil {
		repo.Close()
		return nil, err
	}

	log.Info().Str("driver", cfg.Driver).Msg("Storage: repository ready")
	return repo, nil
}

// NewService wraps an open repository
func NewService(repo Repository, cfg config.StorageConfig) *Service {
	return &Service{
		Repository: repo,
		config:     cfg,
		now:        time.Now,
	}
}

// Start schedules retention cleanup. Pruning is disabled when the interval is zero
// or when neither retention nor global stats keep is set.
func (s *Service) Start(ctx context.Context) error {
	if s.config.PruneInterval <= 0 || (s.config.Retention <= 0 && s.config.GlobalStatsKeep <= 0) {
		log.Info().Msg("Storage: retention disabled")
		return nil
	}

	s.scheduler = scheduler.New("storage-prune", s.config.PruneInterval, func(ctx context.Context) {
		if _, err := s.Prune(ctx); err != nil {
			log.Error().Err(err).Msg("Storage: retention cleanup failed")
		}
	})
	s.scheduler.Start(ctx, true)
	return nil
}

// Stop stops the cleanup scheduler and closes the repository
func (s *Service) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	if err := s.Repository.Close(); err != nil {
		log.Error().Err(err).Msg("Storage: failed to close repository")
	}
}

// Prune removes price points older than the retention window and global stats
// samples beyond the newest GlobalStatsKeep. It returns the number of price points removed.
func (s *Service) Prune(ctx context.Context) (int64, error) {
	var removed int64
	if s.config.Retention > 0 {
		cutoff := s.now().UTC().Add(-s.config.Retention)

		var err error
		removed, err = s.PrunePricePoints(ctx, cutoff)
		if err != nil {
			return 0, err
		}

		metrics.RecordPrunedPricePoints(removed)
		log.Info().Int64("removed", removed).Time("before", cutoff).Msg("Storage: pruned price points")
	}

	if s.config.GlobalStatsKeep > 0 {
		stats, err := s.PruneGlobalStats(ctx, s.config.GlobalStatsKeep)
		if err != nil {
			return removed, err
		}
		log.Info().Int64("removed", stats).Int("keep", s.config.GlobalStatsKeep).Msg("Storage: pruned global stats")
	}

	return removed, nil
}
