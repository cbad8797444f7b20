package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/status-im/market-assistant/config"
	"github.com/status-im/market-assistant/events"
	"github.com/status-im/market-assistant/interfaces"
	"github.com/status-im/market-assistant/metrics"
	"github.com/status-im/market-assistant/models"
	"github.com/status-im/market-assistant/scheduler"
)

var (
	// ErrInvalidRequest is returned for refresh arguments that can never succeed
	ErrInvalidRequest = errors.New("invalid refresh request")
	// ErrEmptyHistory is returned when the provider has no price history for a coin
	ErrEmptyHistory = errors.New("empty price history")
)

const (
	kindTopCoins   = string(events.KindTopCoins)
	kindGlobal     = string(events.KindGlobal)
	kindHistorical = string(events.KindHistorical)
)

// Report summarizes a full refresh cycle
type Report struct {
	TopCoinsUpdated   bool          `json:"top_coins_updated"`
	GlobalUpdated     bool          `json:"global_data_updated"`
	HistoricalUpdated int           `json:"historical_updated"`
	HistoricalTotal   int           `json:"historical_total"`
	StartedAt         time.Time     `json:"started_at"`
	Duration          time.Duration `json:"duration"`
}

// HistoricalSummary renders the historical outcome as "updated/total coins"
func (r Report) HistoricalSummary() string {
	return fmt.Sprintf("%d/%d coins", r.HistoricalUpdated, r.HistoricalTotal)
}

// Service pulls fresh market data from the provider and persists it
type Service struct {
	market    interfaces.MarketDataClient
	repo      interfaces.SnapshotRepository
	events    events.ISubscriptionManager
	config    config.RefreshConfig
	scheduler *scheduler.Scheduler

	// cycleMu serializes full refresh cycles
	cycleMu sync.Mutex

	reportMu   sync.RWMutex
	lastReport *Report

	now func() time.Time
}

func NewService(market interfaces.MarketDataClient, repo interfaces.SnapshotRepository, em events.ISubscriptionManager, cfg config.RefreshConfig) *Service {
	return &Service{
		market: market,
		repo:   repo,
		events: em,
		config: cfg,
		now:    time.Now,
	}
}

// Start schedules periodic refresh cycles
func (s *Service) Start(ctx context.Context) error {
	if !s.config.Enabled {
		log.Info().Msg("Refresh: periodic refresh disabled")
		return nil
	}

	s.scheduler = scheduler.New("market-refresh", s.config.Interval, func(ctx context.Context) {
		s.RefreshAll(ctx)
	})
	s.scheduler.Start(ctx, s.config.RunOnStart)
	return nil
}

func (s *Service) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// Trigger asks the periodic refresher for an extra cycle without waiting for it.
// It returns false when periodic refresh is not running.
func (s *Service) Trigger() bool {
	if s.scheduler == nil || !s.scheduler.IsRunning() {
		return false
	}
	s.scheduler.Trigger()
	log.Debug().Msg("Refresh: extra cycle requested")
	return true
}

// RefreshTopCoins fetches the top coins bypassing the cache and upserts their snapshots
func (s *Service) RefreshTopCoins(ctx context.Context, limit int) (err error) {
	defer func() { metrics.RecordRefresh(kindTopCoins, err) }()

	if limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidRequest, limit)
	}

	coins, err := s.market.RefreshTopCoins(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to refresh top coins: %w", err)
	}

	for _, coin := range coins {
		if err := s.repo.UpsertSnapshot(ctx, coin); err != nil {
			return fmt.Errorf("failed to persist snapshot %s: %w", coin.ID, err)
		}
	}

	log.Info().Int("count", len(coins)).Msg("Refresh: updated top coins")
	s.emit(ctx, events.KindTopCoins, len(coins))
	return nil
}

// RefreshHistorical fetches the price chart of a coin bypassing the cache and
// upserts one price point per day
func (s *Service) RefreshHistorical(ctx context.Context, coinID string, days int) (err error) {
	defer func() { metrics.RecordRefresh(kindHistorical, err) }()

	if coinID == "" {
		return fmt.Errorf("%w: coin id is required", ErrInvalidRequest)
	}
	if days <= 0 {
		return fmt.Errorf("%w: days must be positive, got %d", ErrInvalidRequest, days)
	}

	history, err := s.market.RefreshHistoricalPrices(ctx, coinID, days)
	if err != nil {
		return fmt.Errorf("failed to refresh history of %s: %w", coinID, err)
	}
	if len(history) == 0 {
		return fmt.Errorf("%s: %w", coinID, ErrEmptyHistory)
	}

	points := models.PricePointsFromHistory(coinID, history)
	for _, p := range points {
		if err := s.repo.UpsertPricePoint(ctx, coinID, p.Date, p.Price); err != nil {
			return fmt.Errorf("failed to persist price point of %s: %w", coinID, err)
		}
	}

	log.Debug().Str("coin", coinID).Int("points", len(points)).Msg("Refresh: updated price history")
	s.emit(ctx, events.KindHistorical, len(points))
	return nil
}

// RefreshGlobal fetches global stats bypassing the cache and records a sample
func (s *Service) RefreshGlobal(ctx context.Context) (err error) {
	defer func() { metrics.RecordRefresh(kindGlobal, err) }()

	stats, err := s.market.RefreshGlobalStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh global stats: %w", err)
	}

	if err := s.repo.SaveGlobalStats(ctx, stats); err != nil {
		return fmt.Errorf("failed to persist global stats: %w", err)
	}

	log.Info().Msg("Refresh: updated global stats")
	s.emit(ctx, events.KindGlobal, 1)
	return nil
}

// RefreshAll updates top coins, global stats and the price history of the
// highest ranked coins. Each step succeeds or fails independently.
func (s *Service) RefreshAll(ctx context.Context) Report {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	start := time.Now()
	defer metrics.RecordRefreshCycle(start)

	report := Report{StartedAt: s.now().UTC()}

	if err := s.RefreshTopCoins(ctx, s.config.TopCoinsLimit); err != nil {
		log.Error().Err(err).Msg("Refresh: top coins update failed")
	} else {
		report.TopCoinsUpdated = true
	}

	if err := s.RefreshGlobal(ctx); err != nil {
		log.Error().Err(err).Msg("Refresh: global stats update failed")
	} else {
		report.GlobalUpdated = true
	}

	if s.config.HistoricalCoins > 0 {
		coins, err := s.repo.ListSnapshots(ctx, models.OrderByMarketCapRank, s.config.HistoricalCoins)
		if err != nil {
			log.Error().Err(err).Msg("Refresh: failed to list coins for history update")
		}

		report.HistoricalTotal = len(coins)
		for _, coin := range coins {
			if ctx.Err() != nil {
				break
			}
			if err := s.RefreshHistorical(ctx, coin.ID, s.config.HistoricalDays); err != nil {
				log.Warn().Err(err).Str("coin", coin.ID).Msg("Refresh: history update failed")
				continue
			}
			report.HistoricalUpdated++
		}
	}

	report.Duration = time.Since(start)
	s.reportMu.Lock()
	s.lastReport = &report
	s.reportMu.Unlock()

	log.Info().
		Bool("top_coins", report.TopCoinsUpdated).
		Bool("global", report.GlobalUpdated).
		Str("historical", report.HistoricalSummary()).
		Msg("Refresh: cycle completed")
	return report
}

// LastReport returns the report of the most recent full cycle
func (s *Service) LastReport() (Report, bool) {
	s.reportMu.RLock()
	defer s.reportMu.RUnlock()

	if s.lastReport == nil {
		return Report{}, false
	}
	return *s.lastReport, true
}

// Healthy is false only when the last full cycle updated nothing
func (s *Service) Healthy() bool {
	report, ok := s.LastReport()
	if !ok {
		return true
	}
	return report.TopCoinsUpdated || report.GlobalUpdated || report.HistoricalUpdated > 0
}

func (s *Service) emit(ctx context.Context, kind events.Kind, count int) {
	if s.events == nil {
		return
	}
	s.events.Emit(ctx, events.Event{Kind: kind, Count: count, At: s.now().UTC()})
}
