package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/encoding/json"

	"github.com/labelwise-ai/labelwise/harness/pkg/types"
)

// JSONReport is the machine-readable run artifact.
type JSONReport struct {
	Version   string                   `json:"version"`
	RunID     string                   `json:"run_id"`
	Timestamp string                   `json:"timestamp"`
	Producer  string                   `json:"producer"`
	Results   []types.EvaluationResult `json:"results"`
	Summary   types.RunSummary         `json:"summary"`
}

// GenerateJSONReport renders results and summary as an indented JSON document.
func GenerateJSONReport(producerName string, results []types.EvaluationResult, summary types.RunSummary) ([]byte, error) {
	rep := JSONReport{
		Version:   "1.0",
		RunID:     uuid.NewString(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Producer:  producerName,
		Results:   results,
		Summary:   summary,
	}

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return out, nil
}
