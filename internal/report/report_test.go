package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/labelwise-ai/labelwise/harness/internal/report"
	"github.com/labelwise-ai/labelwise/harness/pkg/types"
)

func mixedResults() []types.EvaluationResult {
	return []types.EvaluationResult{
		{CaseID: "cheese1", Passed: true, FailureReasons: []string{}, LatencyMS: 12, FailureClass: types.ClassNone},
		{
			CaseID:         "nuts1",
			Passed:         false,
			FailureReasons: []string{"missing flag: contains_peanuts", "missing evidence: recall"},
			LatencyMS:      8,
			FailureClass:   types.ClassContent,
		},
		{
			CaseID:         "down1",
			Passed:         false,
			FailureReasons: []string{"backend error: generate: connection refused"},
			LatencyMS:      2500,
			FailureClass:   types.ClassInfra,
		},
	}
}

func TestSummarize_ThresholdBoundaries(t *testing.T) {
	mk := func(passed, failed int) []types.EvaluationResult {
		var rs []types.EvaluationResult
		for i := 0; i < passed; i++ {
			rs = append(rs, types.EvaluationResult{Passed: true})
		}
		for i := 0; i < failed; i++ {
			rs = append(rs, types.EvaluationResult{Passed: false, FailureReasons: []string{"missing flag: x"}})
		}
		return rs
	}

	tests := []struct {
		name     string
		mode     string
		passed   int
		failed   int
		wantExit int
	}{
		{"strict all pass", types.ModeStrict, 10, 0, 0},
		{"strict one failure", types.ModeStrict, 9, 1, 1},
		{"tolerant at 90 percent", types.ModeTolerant, 9, 1, 0},
		{"tolerant at 80 percent", types.ModeTolerant, 8, 2, 1},
		{"empty suite gates nothing", types.ModeStrict, 0, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := report.Summarize(mk(tc.passed, tc.failed), tc.mode)
			if s.ExitCode != tc.wantExit {
				t.Errorf("exit code: got %d, want %d", s.ExitCode, tc.wantExit)
			}
			if s.Passed != tc.passed || s.Failed != tc.failed {
				t.Errorf("counts: got %d/%d, want %d/%d", s.Passed, s.Failed, tc.passed, tc.failed)
			}
		})
	}
}

func TestWriteConsole_Golden(t *testing.T) {
	results := mixedResults()
	summary := report.Summarize(results, types.ModeTolerant)

	var buf bytes.Buffer
	if err := report.WriteConsole(&buf, results, summary); err != nil {
		t.Fatalf("WriteConsole: %v", err)
	}

	g := goldie.New(t)
	g.Assert(t, "console", buf.Bytes())
}

func TestWriteConsole_NoThresholdLineOnSuccess(t *testing.T) {
	results := []types.EvaluationResult{{CaseID: "only1", Passed: true, LatencyMS: 3}}
	summary := report.Summarize(results, types.ModeStrict)

	var buf bytes.Buffer
	if err := report.WriteConsole(&buf, results, summary); err != nil {
		t.Fatalf("WriteConsole: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "Exit non-zero") {
		t.Errorf("threshold line must only appear on failure:\n%s", out)
	}
	if !strings.Contains(out, "Summary: 1/1 passed") {
		t.Errorf("summary line missing:\n%s", out)
	}
}

func TestGenerateJSONReport(t *testing.T) {
	results := mixedResults()
	summary := report.Summarize(results, types.ModeTolerant)

	raw, err := report.GenerateJSONReport("live:http", results, summary)
	if err != nil {
		t.Fatalf("GenerateJSONReport: %v", err)
	}

	var rep report.JSONReport
	if err := json.Unmarshal(raw, &rep); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if rep.RunID == "" {
		t.Error("run_id must be set")
	}
	if rep.Producer != "live:http" {
		t.Errorf("producer: got %q", rep.Producer)
	}
	if rep.Summary.Total != 3 || rep.Summary.Passed != 1 {
		t.Errorf("summary: got %+v", rep.Summary)
	}
	if len(rep.Results) != 3 {
		t.Errorf("results: got %d entries", len(rep.Results))
	}
}

func TestGenerateMarkdown(t *testing.T) {
	results := mixedResults()
	summary := report.Summarize(results, types.ModeTolerant)

	var buf bytes.Buffer
	err := report.GenerateMarkdown(&buf, &report.MarkdownReport{
		Results: results,
		Summary: summary,
	})
	if err != nil {
		t.Fatalf("GenerateMarkdown: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"## Golden Suite Report",
		"| `cheese1` | :white_check_mark: pass |",
		"| `down1` | :x: fail | infra |",
		"3 total — 1 passed, 2 failed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}
