// Package backend holds the narrow contract to the explanation-generation
// service, plus the adapters the harness wraps around it: an HTTP client,
// a configurable mock, a rate limiter and a fault injector.
package backend

import (
	"context"
	"encoding/json"

	"github.com/labelwise-ai/labelwise/harness/pkg/types"
)

// Generator produces a structured explanation for one scan payload. The
// generation internals (prompting, model choice, retries inside the
// service) are not the harness's concern.
type Generator interface {
	Name() string
	Generate(ctx context.Context, scanData json.RawMessage, jurisdiction string) (*types.StructuredResponse, error)
}
