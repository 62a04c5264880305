package main

import (
	"fmt"
	"os"

	"github.com/labelwise-ai/labelwise/harness/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		// Threshold failures already printed their diagnostics to stdout.
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, "Error:", msg)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
