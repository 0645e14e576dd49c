// Package vlog wraps log/slog behind the domain.Logger interface, the way
// the teacher's internal/adapters.SlogLogger wraps it: a constructor per
// output format, a thin passthrough to the *Context methods, and a With()
// that returns another domain.Logger rather than a concrete type. Unlike
// the teacher's adapter, it also knows how to turn a langerr pipeline
// failure into structured fields, since vsl's errors carry source
// coordinates the symlink manager's errors never had.
package vlog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	console "github.com/phsym/console-slog"

	"github.com/yaklabco/vsl/internal/domain"
	"github.com/yaklabco/vsl/internal/langerr"
)

// SlogLogger implements domain.Logger using log/slog.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps an already-configured *slog.Logger.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: logger}
}

// NewConsole builds a human-readable logger via console-slog, used by
// cmd/vsl's default (non-JSON) output mode.
func NewConsole(w io.Writer, level string) *SlogLogger {
	handler := console.NewHandler(w, &console.HandlerOptions{Level: ParseLogLevel(level)})
	return &SlogLogger{logger: slog.New(handler)}
}

// NewJSON builds a machine-readable logger via slog's stock JSON handler,
// used when cmd/vsl's logging format is json (for example via --log-json).
func NewJSON(w io.Writer, level string) *SlogLogger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLogLevel(level)})
	return &SlogLogger{logger: slog.New(handler)}
}

func (l *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

func (l *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

func (l *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

func (l *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

// With returns a logger with additional context fields, satisfying
// domain.Logger rather than *SlogLogger so callers never depend on the
// slog-backed concrete type.
func (l *SlogLogger) With(args ...any) domain.Logger {
	return &SlogLogger{logger: l.logger.With(args...)}
}

// PipelineErrorFields flattens a pipeline-stage error into slog key-value
// args, so a failed lex/parse/eval carries its "line N, column (c1, c2)"
// coordinates as structured fields instead of only living inside the
// formatted error string. Returns ("stage", "<kind>", "message", ...) plus
// "row"/"col_start"/"col_end" when the error carries a token.Span, or
// "row"/"col" for a LexError's bare token.Position.
func PipelineErrorFields(err error) []any {
	var lexErr langerr.LexError
	if errors.As(err, &lexErr) {
		return []any{"stage", "lex", "message", lexErr.Message, "row", lexErr.Pos.Row, "col", lexErr.Pos.Col}
	}

	var parseErr langerr.ParseError
	if errors.As(err, &parseErr) {
		fields := []any{"stage", "parse", "message", parseErr.Message}
		if parseErr.Span.Row != 0 {
			fields = append(fields, "row", parseErr.Span.Row, "col_start", parseErr.Span.ColStart, "col_end", parseErr.Span.ColEnd)
		}
		return fields
	}

	var evalErr langerr.EvalError
	if errors.As(err, &evalErr) {
		fields := []any{"stage", "eval", "message", evalErr.Message}
		if evalErr.Span.Row != 0 {
			fields = append(fields, "row", evalErr.Span.Row, "col_start", evalErr.Span.ColStart, "col_end", evalErr.Span.ColEnd)
		}
		return fields
	}

	var typeErr langerr.BuiltinTypeError
	if errors.As(err, &typeErr) {
		return []any{"stage", "eval", "builtin", typeErr.Builtin, "message", typeErr.Message}
	}

	var unimplErr langerr.UnimplementedError
	if errors.As(err, &unimplErr) {
		return []any{"stage", "eval", "feature", unimplErr.Feature}
	}

	var convErr langerr.ConvertError
	if errors.As(err, &convErr) {
		return []any{"stage", "convert", "field", convErr.Field, "message", convErr.Message}
	}

	return []any{"stage", "unknown", "message", err.Error()}
}

// ParseLogLevel converts a case-insensitive level name to a slog.Level,
// defaulting to Info for anything unrecognized.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
