package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/labelwise-ai/labelwise/harness/pkg/types"
)

// FaultConfig defines the fault injection parameters for a FaultInjector.
type FaultConfig struct {
	ErrorRate     float64       // Probability [0,1] of returning an error
	LatencyJitter time.Duration // Random additional latency [0, LatencyJitter)
	TimeoutAfter  time.Duration // If > 0, returns context.DeadlineExceeded after this duration
}

// FaultInjector wraps a Generator and injects configurable faults. It is
// used to exercise the harness's infra-failure classification without a
// flaky real backend.
type FaultInjector struct {
	inner  Generator
	config FaultConfig
	rng    *rand.Rand
	mu     sync.Mutex
}

// NewFaultInjector creates a FaultInjector with a time-based seed.
func NewFaultInjector(inner Generator, config FaultConfig) *FaultInjector {
	return NewFaultInjectorWithSeed(inner, config, time.Now().UnixNano())
}

// NewFaultInjectorWithSeed creates a FaultInjector with a deterministic seed for testing.
func NewFaultInjectorWithSeed(inner Generator, config FaultConfig, seed int64) *FaultInjector {
	return &FaultInjector{
		inner:  inner,
		config: config,
		rng:    rand.New(rand.NewSource(seed)), //nolint:gosec
	}
}

// Name returns the inner generator's name prefixed with "fault:".
func (f *FaultInjector) Name() string {
	return "fault:" + f.inner.Name()
}

// Generate injects faults according to FaultConfig before delegating.
func (f *FaultInjector) Generate(ctx context.Context, scanData json.RawMessage, jurisdiction string) (*types.StructuredResponse, error) {
	f.mu.Lock()
	errorRoll := f.rng.Float64()
	var jitter time.Duration
	if f.config.LatencyJitter > 0 {
		jitter = time.Duration(f.rng.Int63n(int64(f.config.LatencyJitter)))
	}
	f.mu.Unlock()

	if f.config.TimeoutAfter > 0 {
		select {
		case <-time.After(f.config.TimeoutAfter):
			return nil, context.DeadlineExceeded
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if jitter > 0 {
		select {
		case <-time.After(jitter):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if errorRoll < f.config.ErrorRate {
		return nil, fmt.Errorf("injected backend fault (roll %.3f < rate %.3f)", errorRoll, f.config.ErrorRate)
	}

	return f.inner.Generate(ctx, scanData, jurisdiction)
}
