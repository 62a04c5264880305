// Package cli wires the harness into a cobra command tree.
package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

const version = "0.2.0"

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the harness CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "labelwise-harness",
		Short:         "Golden-set evaluation harness for labelwise safety explanations",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewLintCommand(opts))

	return cmd
}

// Execute runs the CLI and returns the resulting error, if any.
func Execute() error {
	return NewRootCommand().Execute()
}

// newLogger builds the slog logger for a command, honoring --verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
