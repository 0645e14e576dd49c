package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

// Version information, set via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := setupSignalHandler()

	rootCmd := NewRootCommand(version, commit, date)

	executedCmd, err := executeCommand(ctx, rootCmd)
	if err != nil {
		var reported reportedError
		if errors.As(err, &reported) {
			return reported.ExitCode()
		}

		if executedCmd != nil && isArgValidationError(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
			_ = executedCmd.Usage()
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return exitCodeFor(err)
	}

	return ExitSuccess
}

// setupSignalHandler creates a context canceled on SIGINT/SIGTERM, the way
// the teacher's cmd/dot/main.go does for long-running operations. vsl's
// pipeline has no suspension points (SPEC_FULL.md's concurrency model is
// single-threaded and synchronous), and none of its stages consults the
// context: a signal cancels ctx, but a run already under way is not
// interrupted.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}

// executeCommand executes the root command with the given context and
// returns the executed command alongside any error, the way the teacher's
// executeCommand captures the command for usage-on-error handling.
func executeCommand(ctx context.Context, rootCmd *cobra.Command) (*cobra.Command, error) {
	var executedCmd *cobra.Command

	rootCmd.SetContext(ctx)

	originalPreRun := rootCmd.PersistentPreRunE
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		executedCmd = cmd
		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	err := rootCmd.Execute()
	return executedCmd, err
}

// isArgValidationError determines if an error came from Cobra's argument
// validation rather than the command body.
func isArgValidationError(err error) bool {
	if err == nil {
		return false
	}

	errMsg := err.Error()
	patterns := []string{"accepts", "requires", "too many arguments", "unknown command"}
	for _, pattern := range patterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
