package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/labelwise-ai/labelwise/harness/internal/caseset"
	"github.com/labelwise-ai/labelwise/harness/pkg/types"
)

// LintOptions holds flags for the lint command.
type LintOptions struct {
	*RootOptions
	Cases string
}

// NewLintCommand creates the lint command: load-validate a case file
// without running any producer.
func NewLintCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LintOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Validate a golden case file without executing it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cases, err := caseset.Load(opts.Cases, 0)
			if err != nil {
				var pe *types.ParseError
				if errors.As(err, &pe) {
					return WrapExitError(ExitFailure, "case file rejected", pe)
				}
				return WrapExitError(ExitFailure, "load cases", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d cases OK\n", opts.Cases, len(cases))
			for _, c := range cases {
				if c.Expect.Empty() {
					fmt.Fprintf(cmd.OutOrStdout(), "warning: case %q has no criteria beyond the schema check\n", c.ID)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Cases, "cases", defaultCasesPath, "path to golden case file (JSONL)")

	return cmd
}
