package main

import (
	"errors"

	"github.com/yaklabco/vsl/internal/langerr"
)

// Exit codes, adapted from the teacher's internal/cli/output.GetExitCode:
// one code per fatal error kind so scripts driving vsl can branch on why
// a run failed without scraping stderr text.
const (
	ExitSuccess       = 0
	ExitGeneralError  = 1
	ExitLexError      = 10
	ExitParseError    = 11
	ExitEvalError     = 12
	ExitBuiltinType   = 13
	ExitUnimplemented = 14
	ExitConvertError  = 15
)

// exitCodeFor returns the process exit code for a pipeline error, walking
// the langerr taxonomy the same way GetExitCode walks the teacher's
// domain.Err* taxonomy with errors.As.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var lexErr langerr.LexError
	if errors.As(err, &lexErr) {
		return ExitLexError
	}

	var parseErr langerr.ParseError
	if errors.As(err, &parseErr) {
		return ExitParseError
	}

	var evalErr langerr.EvalError
	if errors.As(err, &evalErr) {
		return ExitEvalError
	}

	var typeErr langerr.BuiltinTypeError
	if errors.As(err, &typeErr) {
		return ExitBuiltinType
	}

	var unimplErr langerr.UnimplementedError
	if errors.As(err, &unimplErr) {
		return ExitUnimplemented
	}

	var convErr langerr.ConvertError
	if errors.As(err, &convErr) {
		return ExitConvertError
	}

	return ExitGeneralError
}
