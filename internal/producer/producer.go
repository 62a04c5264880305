// Package producer defines the response producer capability and its two
// implementations: a canned deterministic generator for CI gating and a
// live adapter over the explanation backend.
package producer

import (
	"context"
	"encoding/json"

	"github.com/labelwise-ai/labelwise/harness/pkg/types"
)

// Outcome is the tagged result of a produce call. Exactly one of Response
// and Err is set; the per-case loop branches on the value, never on a
// recovered panic or a sentinel error.
type Outcome struct {
	Response *types.StructuredResponse
	Err      *types.InfraError
}

// OK reports whether the produce call yielded a response.
func (o Outcome) OK() bool { return o.Err == nil }

// Producer yields one structured response per golden case. The threshold
// mode is a property of the producer: deterministic producers are gated
// strictly, live producers tolerate model variance.
type Producer interface {
	Name() string
	ThresholdMode() string
	Produce(ctx context.Context, scanData json.RawMessage, jurisdiction string) Outcome
}
