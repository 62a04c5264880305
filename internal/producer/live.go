package producer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/labelwise-ai/labelwise/harness/internal/backend"
	"github.com/labelwise-ai/labelwise/harness/internal/cache"
	"github.com/labelwise-ai/labelwise/harness/pkg/types"
)

const defaultCaseTimeout = 60 * time.Second

// LiveProducer delegates to the explanation backend, bounding each call
// with a per-case timeout. Backend errors and timeouts surface as infra
// outcomes, never as panics or halted runs.
type LiveProducer struct {
	gen     backend.Generator
	timeout time.Duration
	cache   *cache.ResponseCache
	logger  *slog.Logger
}

// LiveOption configures a LiveProducer.
type LiveOption func(*LiveProducer)

// WithTimeout overrides the per-case timeout.
func WithTimeout(d time.Duration) LiveOption {
	return func(p *LiveProducer) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithCache enables read-through caching of backend responses.
func WithCache(c *cache.ResponseCache) LiveOption {
	return func(p *LiveProducer) { p.cache = c }
}

// NewLiveProducer creates a producer over the given backend generator.
func NewLiveProducer(gen backend.Generator, logger *slog.Logger, opts ...LiveOption) *LiveProducer {
	p := &LiveProducer{
		gen:     gen,
		timeout: defaultCaseTimeout,
		logger:  logger,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *LiveProducer) Name() string          { return "live:" + p.gen.Name() }
func (p *LiveProducer) ThresholdMode() string { return types.ModeTolerant }

// Produce calls the backend once, with no per-case retry: the suite is
// meant to surface regressions, not mask transient issues.
func (p *LiveProducer) Produce(ctx context.Context, scanData json.RawMessage, jurisdiction string) Outcome {
	key := cache.ContentHash(scanData, jurisdiction)
	if p.cache != nil {
		cached, err := p.cache.Get(key)
		if err != nil {
			p.logger.Warn("response cache read failed", "error", err)
		} else if cached != nil {
			return Outcome{Response: cached}
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.gen.Generate(callCtx, scanData, jurisdiction)
	if err != nil {
		timedOut := errors.Is(err, context.DeadlineExceeded)
		return Outcome{Err: types.NewInfraError("generate", err, timedOut)}
	}

	if p.cache != nil {
		if err := p.cache.Put(key, resp); err != nil {
			p.logger.Warn("response cache write failed", "error", err)
		}
	}

	return Outcome{Response: resp}
}
