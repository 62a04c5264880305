package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/labelwise-ai/labelwise/harness/internal/backend"
	"github.com/labelwise-ai/labelwise/harness/internal/cache"
	"github.com/labelwise-ai/labelwise/harness/internal/caseset"
	"github.com/labelwise-ai/labelwise/harness/internal/harness"
	"github.com/labelwise-ai/labelwise/harness/internal/producer"
	"github.com/labelwise-ai/labelwise/harness/internal/report"
	"github.com/labelwise-ai/labelwise/harness/pkg/types"
)

const (
	defaultCasesPath = "cases/golden_cases.jsonl"
	envBackendURL    = "LABELWISE_BACKEND_URL"
	envBackendAPIKey = "LABELWISE_API_KEY"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Cases      string
	Max        int
	Dummy      bool
	Timeout    time.Duration
	BackendURL string
	RPM        int
	CachePath  string
	JSONReport string
	MDReport   string

	// Chaos testing of the harness's infra classification.
	FaultRate   float64
	FaultJitter time.Duration
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate the golden suite and gate on the pass-rate threshold",
		Long: `Run every golden case through the selected producer and validate the
structured responses against each case's expectations.

With --dummy the deterministic canned producer is used and the run must
pass 100% of cases. Without it the live explanation backend is called and
a 90% pass rate is tolerated.

Exit status is 0 when the threshold is met, 1 otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuite(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Cases, "cases", defaultCasesPath, "path to golden case file (JSONL)")
	cmd.Flags().IntVar(&opts.Max, "max", 0, "limit to first N cases (0 = all)")
	cmd.Flags().BoolVar(&opts.Dummy, "dummy", false, "use the deterministic canned producer")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 60*time.Second, "per-case backend timeout (live mode)")
	cmd.Flags().StringVar(&opts.BackendURL, "backend-url", "", "explanation backend base URL (default $"+envBackendURL+")")
	cmd.Flags().IntVar(&opts.RPM, "rpm", 0, "backend requests per minute (0 = unlimited)")
	cmd.Flags().StringVar(&opts.CachePath, "cache", "", "path to a SQLite response cache (live mode)")
	cmd.Flags().StringVar(&opts.JSONReport, "json-report", "", "write a JSON report to this path")
	cmd.Flags().StringVar(&opts.MDReport, "md-report", "", "write a Markdown report to this path")
	cmd.Flags().Float64Var(&opts.FaultRate, "fault-rate", 0, "inject backend faults with this probability (live mode)")
	cmd.Flags().DurationVar(&opts.FaultJitter, "fault-jitter", 0, "inject up to this much backend latency (live mode)")

	return cmd
}

func runSuite(cmd *cobra.Command, opts *RunOptions) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	cases, err := caseset.Load(opts.Cases, opts.Max)
	if err != nil {
		var pe *types.ParseError
		if errors.As(err, &pe) {
			return WrapExitError(ExitFailure, "case file rejected", pe)
		}
		return WrapExitError(ExitFailure, "load cases", err)
	}
	logger.Debug("cases loaded", "path", opts.Cases, "count", len(cases))

	prod, cleanup, err := buildProducer(opts, logger)
	if err != nil {
		return WrapExitError(ExitFailure, "configure producer", err)
	}
	defer cleanup()

	h := harness.New(prod, logger)
	results := h.Run(cmd.Context(), cases)
	summary := report.Summarize(results, h.Mode())

	if err := report.WriteConsole(cmd.OutOrStdout(), results, summary); err != nil {
		return WrapExitError(ExitFailure, "write console report", err)
	}
	if err := writeArtifacts(opts, prod.Name(), results, summary); err != nil {
		return WrapExitError(ExitFailure, "write report artifacts", err)
	}

	if summary.ExitCode != ExitSuccess {
		// Diagnostics are already on stdout; exit silently non-zero.
		return NewExitError(summary.ExitCode, "")
	}
	return nil
}

// buildProducer selects the producer once at startup; nothing downstream
// branches on producer identity.
func buildProducer(opts *RunOptions, logger *slog.Logger) (producer.Producer, func(), error) {
	noop := func() {}
	if opts.Dummy {
		return producer.NewCannedProducer(), noop, nil
	}

	baseURL := opts.BackendURL
	if baseURL == "" {
		baseURL = os.Getenv(envBackendURL)
	}
	if baseURL == "" {
		return nil, noop, fmt.Errorf("live mode needs --backend-url or $%s (or pass --dummy)", envBackendURL)
	}

	var gen backend.Generator
	gen, err := backend.NewHTTPGenerator(backend.HTTPConfig{
		BaseURL: baseURL,
		APIKey:  os.Getenv(envBackendAPIKey),
		Timeout: opts.Timeout,
	})
	if err != nil {
		return nil, noop, err
	}

	if opts.FaultRate > 0 || opts.FaultJitter > 0 {
		gen = backend.NewFaultInjector(gen, backend.FaultConfig{
			ErrorRate:     opts.FaultRate,
			LatencyJitter: opts.FaultJitter,
		})
	}
	if opts.RPM > 0 {
		gen, err = backend.NewRateLimitedGenerator(gen, backend.RateLimiterConfig{
			RequestsPerMinute: opts.RPM,
			Burst:             1,
		})
		if err != nil {
			return nil, noop, err
		}
	}

	liveOpts := []producer.LiveOption{producer.WithTimeout(opts.Timeout)}
	cleanup := noop
	if opts.CachePath != "" {
		c, err := cache.NewResponseCache(opts.CachePath, 1024)
		if err != nil {
			return nil, noop, err
		}
		liveOpts = append(liveOpts, producer.WithCache(c))
		cleanup = func() {
			if err := c.Close(); err != nil {
				logger.Warn("close response cache", "error", err)
			}
		}
	}

	return producer.NewLiveProducer(gen, logger, liveOpts...), cleanup, nil
}

func writeArtifacts(opts *RunOptions, producerName string, results []types.EvaluationResult, summary types.RunSummary) error {
	if opts.JSONReport != "" {
		raw, err := report.GenerateJSONReport(producerName, results, summary)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.JSONReport, raw, 0o644); err != nil {
			return fmt.Errorf("write JSON report: %w", err)
		}
	}
	if opts.MDReport != "" {
		f, err := os.Create(opts.MDReport)
		if err != nil {
			return fmt.Errorf("create Markdown report: %w", err)
		}
		defer f.Close()
		if err := report.GenerateMarkdown(f, &report.MarkdownReport{
			RunAt:   time.Now(),
			Results: results,
			Summary: summary,
		}); err != nil {
			return fmt.Errorf("write Markdown report: %w", err)
		}
	}
	return nil
}
