// Package retry provides bounded-attempt retry middleware for the transport
// pipeline. Retries apply only to failures the taxonomy marks retryable
// (timeouts and upstream 5xx-class errors); auth, quota, schema, and
// rate-limit failures pass through untouched so callers keep full control.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	llmerrors "github.com/astroforge/astroforge/internal/llm/errors"
	"github.com/astroforge/astroforge/internal/llm/transport"
)

// Configuration validation errors.
var (
	errMaxAttemptsInvalid     = errors.New("max attempts must be greater than 0")
	errInitialIntervalInvalid = errors.New("initial interval must be greater than 0")
	errMaxIntervalInvalid     = errors.New("max interval must be >= initial interval")
	errMultiplierInvalid      = errors.New("multiplier must be >= 1.0")
)

// Config controls retry behavior. MaxAttempts of 1 preserves the
// single-attempt baseline; larger values enable backoff retries.
type Config struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	UseJitter       bool
}

// DefaultConfig returns the single-attempt policy with sane backoff
// parameters should a caller raise MaxAttempts.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:     1,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     8 * time.Second,
		Multiplier:      2.0,
		UseJitter:       true,
	}
}

// NewMiddleware creates retry middleware with the supplied policy.
func NewMiddleware(cfg Config) (transport.Middleware, error) {
	if cfg.MaxAttempts <= 0 {
		return nil, fmt.Errorf("%w, got %d", errMaxAttemptsInvalid, cfg.MaxAttempts)
	}
	if cfg.InitialInterval <= 0 {
		return nil, fmt.Errorf("%w, got %v", errInitialIntervalInvalid, cfg.InitialInterval)
	}
	if cfg.MaxInterval < cfg.InitialInterval {
		return nil, fmt.Errorf("%w, got max %v initial %v", errMaxIntervalInvalid, cfg.MaxInterval, cfg.InitialInterval)
	}
	if cfg.Multiplier < 1.0 {
		return nil, fmt.Errorf("%w, got %f", errMultiplierInvalid, cfg.Multiplier)
	}

	rm := &retryMiddleware{
		config: cfg,
		logger: slog.Default().With("component", "retry"),
	}
	return rm.middleware(), nil
}

type retryMiddleware struct {
	config Config
	logger *slog.Logger
}

func (r *retryMiddleware) middleware() transport.Middleware {
	return func(next transport.Handler) transport.Handler {
		return transport.HandlerFunc(func(ctx context.Context, req *transport.Request) (*transport.Completion, error) {
			var lastErr error

			for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
				if err := ctx.Err(); err != nil {
					return nil, llmerrors.Wrap(llmerrors.KindTransportFailure, err,
						"context cancelled before attempt %d", attempt)
				}

				resp, err := next.Handle(ctx, req)
				if err == nil {
					return resp, nil
				}
				lastErr = err

				if !llmerrors.IsRetryable(err) || attempt == r.config.MaxAttempts {
					return nil, err
				}

				backoff := r.backoff(attempt)
				r.logger.Warn("retrying after failure",
					"trace_id", req.TraceID,
					"operation", req.Operation,
					"attempt", attempt,
					"backoff", backoff,
					"error", err)

				select {
				case <-ctx.Done():
					return nil, llmerrors.Wrap(llmerrors.KindTransportFailure, ctx.Err(),
						"context cancelled during retry backoff")
				case <-time.After(backoff):
				}
			}

			return nil, lastErr
		})
	}
}

// backoff computes the exponential delay for the next attempt, with full
// jitter when enabled. Thread-safe via math/rand/v2.
func (r *retryMiddleware) backoff(attempt int) time.Duration {
	d := r.config.InitialInterval
	for i := 1; i < attempt; i++ {
		d = time.Duration(float64(d) * r.config.Multiplier)
		if d > r.config.MaxInterval {
			d = r.config.MaxInterval
			break
		}
	}
	if r.config.UseJitter {
		jitterMs := rand.Int64N(d.Milliseconds() + 1)
		d = time.Duration(jitterMs) * time.Millisecond
	}
	return d
}
