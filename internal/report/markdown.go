package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/labelwise-ai/labelwise/harness/pkg/types"
)

// MarkdownReport holds data for a Markdown PR comment report.
type MarkdownReport struct {
	Title   string
	RunAt   time.Time
	Results []types.EvaluationResult
	Summary types.RunSummary
}

// GenerateMarkdown writes a Markdown-formatted report to w.
func GenerateMarkdown(w io.Writer, r *MarkdownReport) error {
	title := r.Title
	if title == "" {
		title = "Golden Suite Report"
	}

	if _, err := fmt.Fprintf(w, "## %s\n\n", title); err != nil {
		return err
	}

	if !r.RunAt.IsZero() {
		if _, err := fmt.Fprintf(w, "**Run at:** %s\n\n", r.RunAt.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "**Results:** %d total — %d passed, %d failed (%s threshold, %d ms total)\n\n",
		r.Summary.Total, r.Summary.Passed, r.Summary.Failed, r.Summary.ThresholdMode, r.Summary.TotalTimeMS); err != nil {
		return err
	}

	if len(r.Results) == 0 {
		_, err := fmt.Fprintln(w, "_No cases evaluated._")
		return err
	}

	if _, err := fmt.Fprintln(w, "| Case | Status | Class | Latency | Reasons |"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "|------|--------|-------|---------|---------|"); err != nil {
		return err
	}

	for _, res := range r.Results {
		reasons := strings.ReplaceAll(strings.Join(res.FailureReasons, "; "), "|", "\\|")
		if len(reasons) > 100 {
			reasons = reasons[:97] + "..."
		}
		if _, err := fmt.Fprintf(w, "| `%s` | %s | %s | %d ms | %s |\n",
			res.CaseID, statusIcon(res.Passed), res.FailureClass, res.LatencyMS, reasons); err != nil {
			return err
		}
	}

	return nil
}

func statusIcon(passed bool) string {
	if passed {
		return ":white_check_mark: pass"
	}
	return ":x: fail"
}
