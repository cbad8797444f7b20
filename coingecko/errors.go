package coingecko

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstreamUnavailable covers transport errors, timeouts, non-2xx responses and bad payloads
	ErrUpstreamUnavailable = errors.New("market data provider unavailable")

	// ErrMalformedPayload is returned for bodies that fail to decode or validate.
	// It matches ErrUpstreamUnavailable with errors.Is.
	ErrMalformedPayload = fmt.Errorf("%w: malformed payload", ErrUpstreamUnavailable)
)

func unavailable(op string, err error) error {
	if errors.Is(err, ErrUpstreamUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrUpstreamUnavailable, err)
}

func malformed(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrMalformedPayload, err)
}
