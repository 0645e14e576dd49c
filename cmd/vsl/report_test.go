package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/vsl/internal/config"
	"github.com/yaklabco/vsl/internal/langerr"
)

func TestReportedError_UnwrapAndExitCode(t *testing.T) {
	underlying := langerr.EvalError{Message: "unknown symbol"}
	r := reportedError{err: underlying}

	assert.Equal(t, underlying.Error(), r.Error())
	assert.Equal(t, underlying, r.Unwrap())
	assert.Equal(t, ExitEvalError, r.ExitCode())
}

func TestReportPipelineError_PrintsDiagnosticAndWraps(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	var errBuf bytes.Buffer
	cmd.SetErr(&errBuf)

	cfg := config.DefaultExtended()
	underlying := langerr.EvalError{Message: "unknown symbol"}

	err := reportPipelineError(cmd, "a.b", underlying, cfg)
	require.Error(t, err)

	var reported reportedError
	require.ErrorAs(t, err, &reported)
	assert.Equal(t, ExitEvalError, reported.ExitCode())
	assert.Contains(t, errBuf.String(), "unknown symbol")
}
