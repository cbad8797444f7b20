package coingecko_common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

// KeyExecutor performs one upstream call with the given key
type KeyExecutor[T any] func(key APIKey) (T, error)

// TryWithKeys runs executor with each key in order until one succeeds.
// Keys that fail are reported to onFailed. The last error is returned
// when every key fails. A rejection of the request itself (see IsRequestError)
// ends the loop at once and no key is reported.
func TryWithKeys[T any](keys []APIKey, logPrefix string, executor KeyExecutor[T], onFailed func(APIKey, error)) (T, error) {
	var zero T
	var lastErr error

	for _, key := range keys {
		result, err := executor(key)
		if err == nil {
			return result, nil
		}

		if IsRequestError(err) {
			log.Debug().Err(err).Str("key_type", key.Type.String()).Msgf("%s: request rejected", logPrefix)
			return zero, err
		}

		lastErr = err
		log.Warn().Err(err).Str("key_type", key.Type.String()).Msgf("%s: request failed", logPrefix)
		if onFailed != nil {
			onFailed(key, err)
		}
	}

	if lastErr == nil {
		return zero, fmt.Errorf("%s: no API keys available", logPrefix)
	}
	return zero, lastErr
}

// IsRequestError reports whether err is a 4xx answer about the request itself,
// such as an unknown coin id. Every key would get the same answer.
// 401, 403 and 429 are about the key and are not request errors.
func IsRequestError(err error) bool {
	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) {
		return false
	}

	switch statusErr.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
		return false
	}
	return statusErr.StatusCode >= 400 && statusErr.StatusCode < 500
}

// CreateFailCallback returns an onFailed callback that puts keyed credentials in backoff.
// Request errors never back off a key.
func CreateFailCallback(manager IAPIKeyManager) func(APIKey, error) {
	return func(key APIKey, err error) {
		if key.Type == NoKey || IsRequestError(err) {
			return
		}
		manager.MarkKeyAsFailed(key.Key)
	}
}
