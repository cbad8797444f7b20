package coingecko_common

// IHttpStatusHandler is an interface for handling HTTP request statuses.
// metrics.MetricsWriter is the production implementation.
type IHttpStatusHandler interface {
	// OnRequest handles a request with its status result
	OnRequest(status string)
	// OnRetry handles retry events
	OnRetry()
}

const (
	StatusSuccess     = "success"
	StatusError       = "error"
	StatusRateLimited = "rate_limited"
	StatusTimeout     = "timeout"
)
