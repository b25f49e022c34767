// Package retry provides bounded retry with exponential backoff and jitter
// for calls to the upstream providers.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"net"
	"time"

	"go.uber.org/zap"
)

// Config controls retry behavior.
type Config struct {
	// Attempts is the total number of attempts including the first try.
	// Values below 1 fall back to 3.
	Attempts int

	// InitialBackoff is the delay before the first retry. Default 250ms.
	InitialBackoff time.Duration

	// MaxBackoff caps the backoff. Default 5s.
	MaxBackoff time.Duration

	// Multiplier scales the backoff after each attempt. Default 2.
	Multiplier float64

	// Jitter adds random jitter as a fraction of the computed delay.
	Jitter float64
}

func (c Config) withDefaults() Config {
	if c.Attempts < 1 {
		c.Attempts = 3
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = 250 * time.Millisecond
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = 5 * time.Second
	}
	if c.Multiplier <= 0 {
		c.Multiplier = 2
	}
	if c.Jitter < 0 {
		c.Jitter = 0
	}
	return c
}

// StatusError is implemented by provider errors that carry an HTTP status.
type StatusError interface {
	error
	HTTPStatus() int
}

// Transient reports whether the error is worth retrying: rate limiting,
// server-side failures, and network timeouts.
func Transient(err error) bool {
	if err == nil {
		return false
	}

	var se StatusError
	if errors.As(err, &se) {
		code := se.HTTPStatus()
		return code == 429 || (code >= 500 && code <= 599)
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Do runs fn up to cfg.Attempts times, backing off between transient
// failures. Non-transient errors and context cancellation return immediately.
func Do[T any](ctx context.Context, cfg Config, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	cfg = cfg.withDefaults()

	var zero T
	var lastErr error
	for attempt := 0; attempt < cfg.Attempts; attempt++ {
		val, err := fn(ctx)
		if err == nil {
			return val, nil
		}
		lastErr = err

		if ctx.Err() != nil || !Transient(err) || attempt >= cfg.Attempts-1 {
			break
		}

		zap.L().Warn("retrying after transient failure",
			zap.String("operation", op),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)

		timer := time.NewTimer(backoff(attempt, cfg))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, lastErr
		case <-timer.C:
		}
	}

	return zero, lastErr
}

func backoff(attempt int, cfg Config) time.Duration {
	delay := float64(cfg.InitialBackoff) * math.Pow(cfg.Multiplier, float64(attempt))
	if delay > float64(cfg.MaxBackoff) {
		delay = float64(cfg.MaxBackoff)
	}
	if cfg.Jitter > 0 {
		delay += (rand.Float64()*2 - 1) * delay * cfg.Jitter
	}
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay)
}
