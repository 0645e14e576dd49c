// Package domain holds the typed description of a target machine state
// (System, Service, PackageRepository, Source, User, Package) that the
// converter stage produces, plus the Action taxonomy scheduled but not
// executed by this module (SPEC_FULL.md §1: the system-mutation engine
// that applies an Action to a real host is an external collaborator).
package domain

import "context"

// Logger is the logging abstraction the converter and cmd/vsl accept,
// adapted from the teacher's internal/domain.Logger: the pipeline itself
// never logs a recoverable diagnostic (every pipeline failure is fatal),
// but the converter traces shape decisions at Debug level and the CLI
// host logs each pipeline-stage failure at Error level.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...any)
	Info(ctx context.Context, msg string, fields ...any)
	Warn(ctx context.Context, msg string, fields ...any)
	Error(ctx context.Context, msg string, fields ...any)
	With(fields ...any) Logger
}
