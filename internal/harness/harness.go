// Package harness drives the evaluation run: for each golden case it calls
// the configured producer, validates the response against the case's
// expectations and records a classified result. Cases run strictly
// sequentially in file order; deterministic-mode reproducibility depends on
// there being no scheduling nondeterminism, and per-case latency is meant
// to measure isolated request cost.
package harness

import (
	"context"
	"log/slog"
	"time"

	"github.com/labelwise-ai/labelwise/harness/internal/producer"
	"github.com/labelwise-ai/labelwise/harness/internal/validate"
	"github.com/labelwise-ai/labelwise/harness/pkg/types"
)

// Harness runs golden cases through a producer.
type Harness struct {
	producer producer.Producer
	logger   *slog.Logger
}

// New creates a Harness over the given producer.
func New(p producer.Producer, logger *slog.Logger) *Harness {
	return &Harness{producer: p, logger: logger}
}

// Mode returns the threshold mode of the active producer.
func (h *Harness) Mode() string { return h.producer.ThresholdMode() }

// Run evaluates every case in order. A case is never retried and never
// dropped: an infra failure is recorded and the run moves on.
func (h *Harness) Run(ctx context.Context, cases []types.GoldenCase) []types.EvaluationResult {
	results := make([]types.EvaluationResult, 0, len(cases))
	for i := range cases {
		res := h.RunCase(ctx, cases[i])
		h.logger.Debug("case evaluated",
			"id", res.CaseID,
			"passed", res.Passed,
			"class", res.FailureClass,
			"latency_ms", res.LatencyMS,
		)
		results = append(results, res)
	}
	return results
}

// RunCase executes the per-case state machine: produce under a timer, then
// validate unless the producer signalled an infra failure.
func (h *Harness) RunCase(ctx context.Context, c types.GoldenCase) types.EvaluationResult {
	start := time.Now()
	out := h.producer.Produce(ctx, c.ScanData, c.Jurisdiction)
	latency := time.Since(start).Milliseconds()

	if !out.OK() {
		return types.EvaluationResult{
			CaseID:         c.ID,
			Passed:         false,
			FailureReasons: []string{"backend error: " + out.Err.Error()},
			LatencyMS:      latency,
			FailureClass:   types.ClassInfra,
		}
	}

	reasons := validate.Validate(out.Response, c.Expect)
	return types.EvaluationResult{
		CaseID:         c.ID,
		Passed:         len(reasons) == 0,
		FailureReasons: reasons,
		LatencyMS:      latency,
		FailureClass:   validate.Classify(reasons),
	}
}
