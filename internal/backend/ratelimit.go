package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/labelwise-ai/labelwise/harness/pkg/types"
)

// RateLimiterConfig configures a RateLimitedGenerator.
type RateLimiterConfig struct {
	RequestsPerMinute int
	Burst             int
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
}

// RateLimitedGenerator wraps a Generator with a token-bucket limiter and
// bounded retry with exponential backoff.
type RateLimitedGenerator struct {
	inner   Generator
	limiter *rate.Limiter
	config  RateLimiterConfig
}

// NewRateLimitedGenerator creates a rate-limited wrapper around inner.
func NewRateLimitedGenerator(inner Generator, cfg RateLimiterConfig) (*RateLimitedGenerator, error) {
	if cfg.RequestsPerMinute <= 0 {
		return nil, fmt.Errorf("rate limiter: RequestsPerMinute must be > 0")
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 500 * time.Millisecond
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 30 * time.Second
	}
	return &RateLimitedGenerator{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), cfg.Burst),
		config:  cfg,
	}, nil
}

// Name returns the inner generator's name prefixed with "ratelimited:".
func (r *RateLimitedGenerator) Name() string {
	return "ratelimited:" + r.inner.Name()
}

// Generate waits for a token, then delegates. Failed calls are retried up
// to MaxRetries times with doubling backoff, each retry taking a fresh token.
func (r *RateLimitedGenerator) Generate(ctx context.Context, scanData json.RawMessage, jurisdiction string) (*types.StructuredResponse, error) {
	backoff := r.config.InitialBackoff
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff *= 2
			if backoff > r.config.MaxBackoff {
				backoff = r.config.MaxBackoff
			}
		}

		if err := r.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		resp, err := r.inner.Generate(ctx, scanData, jurisdiction)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, lastErr
		}
	}

	return nil, fmt.Errorf("generate failed after %d retries: %w", r.config.MaxRetries, lastErr)
}
