package vlog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/vsl/internal/langerr"
	"github.com/yaklabco/vsl/internal/token"
	"github.com/yaklabco/vsl/internal/vlog"
)

func TestSlogLogger_Debug(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := vlog.NewSlogLogger(slog.New(handler))

	logger.Debug(context.Background(), "debug message", "key", "value")

	assert.Contains(t, buf.String(), "debug message")
	assert.Contains(t, buf.String(), "key")
}

func TestSlogLogger_InfoWarnError(t *testing.T) {
	var buf bytes.Buffer
	logger := vlog.NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))
	ctx := context.Background()

	logger.Info(ctx, "info message")
	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message")

	out := buf.String()
	assert.Contains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestSlogLogger_With(t *testing.T) {
	var buf bytes.Buffer
	base := vlog.NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	logger := base.With("component", "evaluator")
	logger.Info(context.Background(), "test message")

	out := buf.String()
	assert.Contains(t, out, "component")
	assert.Contains(t, out, "evaluator")
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := vlog.NewConsole(&buf, "DEBUG")
	require.NotNil(t, logger)

	logger.Info(context.Background(), "test message", "key", "value")
	assert.NotEmpty(t, buf.String())
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := vlog.NewJSON(&buf, "DEBUG")
	require.NotNil(t, logger)

	logger.Debug(context.Background(), "json message", "key", "value")
	out := buf.String()
	assert.Contains(t, out, `"msg":"json message"`)
	assert.Contains(t, out, `"key":"value"`)
}

func TestPipelineErrorFields_LexError(t *testing.T) {
	err := langerr.LexError{Message: "bad character", Pos: token.Position{Row: 2, Col: 5}}
	fields := vlog.PipelineErrorFields(err)
	assert.Equal(t, []any{"stage", "lex", "message", "bad character", "row", 2, "col", 5}, fields)
}

func TestPipelineErrorFields_ParseErrorWithSpan(t *testing.T) {
	err := langerr.ParseError{Message: "unexpected token", Span: token.Span{Row: 3, ColStart: 1, ColEnd: 4}}
	fields := vlog.PipelineErrorFields(err)
	assert.Equal(t, []any{"stage", "parse", "message", "unexpected token", "row", 3, "col_start", 1, "col_end", 4}, fields)
}

func TestPipelineErrorFields_ParseErrorWithoutSpan(t *testing.T) {
	err := langerr.ParseError{Message: "unexpected token"}
	fields := vlog.PipelineErrorFields(err)
	assert.Equal(t, []any{"stage", "parse", "message", "unexpected token"}, fields)
}

func TestPipelineErrorFields_ConvertError(t *testing.T) {
	err := langerr.ConvertError{Field: "services", Message: "must be a list"}
	fields := vlog.PipelineErrorFields(err)
	assert.Equal(t, []any{"stage", "convert", "field", "services", "message", "must be a list"}, fields)
}

func TestPipelineErrorFields_UnknownError(t *testing.T) {
	fields := vlog.PipelineErrorFields(assertAnError{})
	assert.Equal(t, []any{"stage", "unknown", "message", "boom"}, fields)
}

type assertAnError struct{}

func (assertAnError) Error() string { return "boom" }

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"debug", slog.LevelDebug},
		{"invalid", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, vlog.ParseLogLevel(tt.input))
		})
	}
}
