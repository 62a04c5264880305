// Package report renders run results: the console view that drives exit
// status, plus JSON and Markdown artifacts for CI.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/labelwise-ai/labelwise/harness/pkg/types"
)

// Summarize folds per-case results into the run summary for the given
// threshold mode. The summary is created once and not mutated afterwards.
func Summarize(results []types.EvaluationResult, mode string) types.RunSummary {
	s := types.RunSummary{
		Total:         len(results),
		ThresholdMode: mode,
	}
	for _, r := range results {
		s.TotalTimeMS += r.LatencyMS
		if r.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
	}

	// An empty suite gates nothing.
	if s.Total > 0 && s.PassRate() < types.RequiredRate(mode) {
		s.ExitCode = 1
	}
	return s
}

// WriteConsole writes the per-case lines and the aggregate summary.
func WriteConsole(w io.Writer, results []types.EvaluationResult, summary types.RunSummary) error {
	for _, r := range results {
		if r.Passed {
			if _, err := fmt.Fprintf(w, "[OK  ] %s  (%d ms)\n", r.CaseID, r.LatencyMS); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "[FAIL] %s  (%d ms)  -> %s\n",
			r.CaseID, r.LatencyMS, quotedList(r.FailureReasons)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Summary: %d/%d passed  (%d ms total)\n",
		summary.Passed, summary.Total, summary.TotalTimeMS); err != nil {
		return err
	}

	if summary.ExitCode != 0 {
		if _, err := fmt.Fprintf(w, "Exit non-zero: threshold %.2f not met.\n",
			types.RequiredRate(summary.ThresholdMode)); err != nil {
			return err
		}
	}
	return nil
}

// quotedList renders reasons as ['a', 'b'].
func quotedList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + s + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
