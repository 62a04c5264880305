package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/labelwise-ai/labelwise/harness/pkg/types"
)

// MockGenerator implements Generator with configurable responses for testing.
type MockGenerator struct {
	mu               sync.Mutex
	Responses        []*types.StructuredResponse
	Errors           []error
	CallCount        int
	History          []json.RawMessage
	ReplayMode       bool
	SimulatedLatency time.Duration
}

// NewMockGenerator creates a MockGenerator cycling through the given
// responses. If both are nil/empty, a fixed default response is returned.
func NewMockGenerator(responses []*types.StructuredResponse, errors []error) *MockGenerator {
	return &MockGenerator{Responses: responses, Errors: errors}
}

// NewReplayGenerator creates a MockGenerator that consumes responses exactly
// once in order, erroring when they are exhausted.
func NewReplayGenerator(responses []*types.StructuredResponse) *MockGenerator {
	return &MockGenerator{Responses: responses, ReplayMode: true}
}

func (m *MockGenerator) Name() string { return "mock" }

func (m *MockGenerator) Generate(ctx context.Context, scanData json.RawMessage, jurisdiction string) (*types.StructuredResponse, error) {
	m.mu.Lock()
	latency := m.SimulatedLatency
	m.mu.Unlock()

	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.CallCount
	m.CallCount++
	m.History = append(m.History, append(json.RawMessage(nil), scanData...))

	if idx < len(m.Errors) && m.Errors[idx] != nil {
		return nil, m.Errors[idx]
	}

	if m.ReplayMode {
		if idx >= len(m.Responses) {
			return nil, fmt.Errorf("mock generator: all %d responses exhausted at call %d", len(m.Responses), idx)
		}
		return m.Responses[idx], nil
	}

	if len(m.Responses) > 0 {
		return m.Responses[idx%len(m.Responses)], nil
	}

	return &types.StructuredResponse{
		Summary:      "No safety concerns identified.",
		Disclaimer:   "Not medical advice.",
		Reasons:      []string{},
		Checks:       []string{"default mock check"},
		Flags:        []string{},
		Jurisdiction: jurisdiction,
	}, nil
}

// GetCallCount returns the number of times Generate has been called.
func (m *MockGenerator) GetCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}
