package types

const (
	ClassNone    = "none"
	ClassSchema  = "schema"
	ClassContent = "content"
	ClassInfra   = "infra"

	ModeStrict   = "strict"
	ModeTolerant = "tolerant"
)

// EvaluationResult is the outcome of running a single golden case.
// Passed is true iff FailureReasons is empty.
type EvaluationResult struct {
	CaseID         string   `json:"case_id"`
	Passed         bool     `json:"passed"`
	FailureReasons []string `json:"failure_reasons"`
	LatencyMS      int64    `json:"latency_ms"`
	FailureClass   string   `json:"failure_class"`
}

// RunSummary aggregates a completed run. Created once per run, immutable
// thereafter.
type RunSummary struct {
	Total         int    `json:"total"`
	Passed        int    `json:"passed"`
	Failed        int    `json:"failed"`
	TotalTimeMS   int64  `json:"total_time_ms"`
	ThresholdMode string `json:"threshold_mode"`
	ExitCode      int    `json:"exit_code"`
}

// RequiredRate returns the minimum pass rate for a threshold mode:
// strict requires every case to pass, tolerant admits model variance.
func RequiredRate(mode string) float64 {
	if mode == ModeTolerant {
		return 0.90
	}
	return 1.0
}

// PassRate returns the pass rate of the summary, or 0 for an empty run.
func (s RunSummary) PassRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Passed) / float64(s.Total)
}
