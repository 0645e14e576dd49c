package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/vsl/internal/config"
)

// reportedError has already had its diagnostic printed to stderr by the
// command that produced it; run() in main.go must not print it again, only
// translate it to an exit code.
type reportedError struct {
	err error
}

func (r reportedError) Error() string { return r.err.Error() }
func (r reportedError) Unwrap() error { return r.err }
func (r reportedError) ExitCode() int { return exitCodeFor(r.err) }

// reportPipelineError renders a full diagnostic (message, source
// coordinates, highlighted offending line) to the command's stderr and
// wraps the error so main.go's run() skips its own generic error line.
func reportPipelineError(cmd *cobra.Command, source string, err error, cfg *config.ExtendedConfig) error {
	colorize := shouldColorize(globalCfg.noColor, cfg.Output.Color)
	st := newStyles(colorize)
	fmt.Fprint(cmd.ErrOrStderr(), renderDiagnostic(source, err, st, colorize))
	return reportedError{err: err}
}
