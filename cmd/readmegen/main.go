// Package main is the entry point for the readmegen CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/readmegen/cli/internal/cmd"
	"github.com/readmegen/cli/internal/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		code := cmd.ExitCodeFromError(err)
		var exitErr *cmd.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.Code
		}

		// Only print if the command layer hasn't already printed it
		if exitErr == nil || !exitErr.Printed {
			fmt.Fprintln(os.Stderr, err)
		}
		output.Debug("exiting", "code", code, "reason", cmd.ExitCodeName(code))
		stop()
		os.Exit(code)
	}
}
