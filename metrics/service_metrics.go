package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "market_assistant_"

// Service constants
const (
	ServiceTopCoins = "top-coins"
	ServiceCoin     = "coin"
	ServiceHistory  = "history"
	ServiceGlobal   = "global"
)

var (
	// Global Coingecko request counter (all services)
	// Cardinality: ~5 (success, error, rate_limited, timeout, etc.)
	CoingeckoRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "coingecko_requests_total",
			Help: "Total number of HTTP requests to Coingecko API across all services",
		},
		[]string{"status"},
	)

	// Cardinality: ~20 (4 services × 5 statuses)
	ServiceCoingeckoRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "service_coingecko_requests_total",
			Help: "Total number of HTTP requests to Coingecko API per service",
		},
		[]string{"service", "status"},
	)

	// Cardinality: ~4 (number of services)
	ServiceRetryCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "service_retry_attempts_total",
			Help: "Total number of retry attempts per service",
		},
		[]string{"service"},
	)

	// Cardinality: ~12 (4 services × hit/miss/refresh)
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "cache_lookups_total",
			Help: "Cache lookups per service by outcome",
		},
		[]string{"service", "status"},
	)

	// Cardinality: 4 (number of services)
	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "fallbacks_total",
			Help: "Synthetic payloads served because the upstream was unavailable",
		},
		[]string{"service"},
	)

	// Cardinality: 8 (number of intents)
	IntentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "intents_total",
			Help: "Questions classified per intent",
		},
		[]string{"intent"},
	)

	// Cardinality: 8 (number of intents)
	AnswerDurationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "answer_duration_seconds",
			Help: "Time taken to answer a question",
		},
		[]string{"intent"},
	)

	// Cardinality: ~6 (3 kinds × success/error)
	RefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "refresh_total",
			Help: "Refresh operations by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	// Cardinality: 1
	RefreshCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "refresh_cycle_duration_seconds",
			Help: "Time taken to complete a full refresh cycle",
		},
	)

	// Cardinality: 1
	PrunedPricePointsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "pruned_price_points_total",
			Help: "Price points removed by retention cleanup",
		},
	)
)

// MetricsWriter provides a unified interface for recording service metrics
type MetricsWriter struct {
	serviceName string
}

// NewMetricsWriter creates a new MetricsWriter for the specified service
func NewMetricsWriter(serviceName string) *MetricsWriter {
	return &MetricsWriter{
		serviceName: serviceName,
	}
}

// GetServiceName returns the service name
func (mw *MetricsWriter) GetServiceName() string {
	return mw.serviceName
}

// RecordServiceCoingeckoRequest records a service-specific Coingecko API request
func (mw *MetricsWriter) RecordServiceCoingeckoRequest(status string) {
	CoingeckoRequestsTotal.WithLabelValues(status).Inc()
	ServiceCoingeckoRequestsTotal.WithLabelValues(mw.serviceName, status).Inc()
	log.Debug().Str("service", mw.serviceName).Str("status", status).Msg("Metrics: Coingecko request recorded")
}

// RecordRetryAttempt records a retry attempt
func (mw *MetricsWriter) RecordRetryAttempt() {
	ServiceRetryCounter.WithLabelValues(mw.serviceName).Inc()
}

// RecordCacheLookup records a cache hit, miss or forced refresh
func (mw *MetricsWriter) RecordCacheLookup(status string) {
	CacheLookupsTotal.WithLabelValues(mw.serviceName, status).Inc()
}

// RecordFallback records a synthetic payload served instead of upstream data
func (mw *MetricsWriter) RecordFallback() {
	FallbacksTotal.WithLabelValues(mw.serviceName).Inc()
	log.Debug().Str("service", mw.serviceName).Msg("Metrics: fallback payload served")
}

// OnRequest records an HTTP request with its status
func (mw *MetricsWriter) OnRequest(status string) {
	mw.RecordServiceCoingeckoRequest(status)
}

// OnRetry records an HTTP retry attempt
func (mw *MetricsWriter) OnRetry() {
	mw.RecordRetryAttempt()
}

// RecordAnswer records the classified intent and how long answering took
func RecordAnswer(intent string, start time.Time) {
	IntentsTotal.WithLabelValues(intent).Inc()
	AnswerDurationHistogram.WithLabelValues(intent).Observe(time.Since(start).Seconds())
}

// RecordRefresh records the outcome of a single refresh operation
func RecordRefresh(kind string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	RefreshTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordRefreshCycle measures and records the duration of a full refresh cycle
func RecordRefreshCycle(start time.Time) {
	duration := time.Since(start)
	RefreshCycleDuration.Observe(duration.Seconds())
	log.Info().Float64("seconds", duration.Seconds()).Msg("Metrics: refresh cycle finished")
}

// RecordPrunedPricePoints adds to the count of price points removed by retention
func RecordPrunedPricePoints(n int64) {
	if n > 0 {
		PrunedPricePointsTotal.Add(float64(n))
	}
}
