package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/yaklabco/vsl/internal/builtins"
	"github.com/yaklabco/vsl/internal/converter"
	"github.com/yaklabco/vsl/internal/domain"
	"github.com/yaklabco/vsl/internal/evaluator"
	"github.com/yaklabco/vsl/internal/langerr"
	"github.com/yaklabco/vsl/internal/langvalue"
	"github.com/yaklabco/vsl/internal/lexer"
	"github.com/yaklabco/vsl/internal/parser"
	"github.com/yaklabco/vsl/internal/token"
	"github.com/yaklabco/vsl/internal/vlog"
)

// pipeline runs the lex -> parse -> evaluate -> convert stages described in
// SPEC_FULL.md's frontend section, the way cmd/vsl is the only collaborator
// that ever sees all four stages strung together end to end.
type pipeline struct {
	disableLazy bool
	out         io.Writer
	logger      domain.Logger
}

func newPipeline(disableLazy bool, out io.Writer, logger domain.Logger) *pipeline {
	return &pipeline{disableLazy: disableLazy, out: out, logger: logger}
}

// readSource loads VSL source from path, or from stdin when path is "-".
func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// lexAndParse tokenizes with smart (span-carrying) tokens enabled, so
// diagnostics can always quote "line N, column (c1, c2)" per SPEC_FULL.md's
// external-interfaces contract.
func (p *pipeline) lexAndParse(source string) ([]langvalue.Expr, error) {
	tokens, err := lexer.Tokenize(source, lexer.Options{Smart: true})
	if err != nil {
		var lexErr *lexer.Error
		if errors.As(err, &lexErr) {
			err = langerr.LexError{Message: lexErr.Message, Pos: lexErr.Pos}
		}
		p.logError("lex failed", err)
		return nil, err
	}
	forms, err := parser.Parse(tokens)
	if err != nil {
		p.logError("parse failed", err)
		return nil, err
	}
	return forms, nil
}

// eval evaluates every top-level form against a fresh root environment with
// `system` pre-bound to an empty Map, per SPEC_FULL.md scenario 1. It
// returns the environment so callers can resolve `system.config` afterward.
func (p *pipeline) eval(forms []langvalue.Expr) (*evaluator.Environment, error) {
	env := builtins.CreateStandardEnv(p.out)
	env.Set("system", langvalue.NewMap())

	interp := evaluator.New(p.disableLazy)
	for _, form := range forms {
		if _, err := interp.Eval(form, env); err != nil {
			p.logError("eval failed", err)
			return nil, err
		}
	}
	return env, nil
}

// logError reports a pipeline-stage failure through p.logger, when one is
// set, flattened into structured fields via vlog.PipelineErrorFields so the
// source coordinates a langerr carries survive into the log record rather
// than being trapped inside the formatted error string.
func (p *pipeline) logError(msg string, err error) {
	if p.logger == nil {
		return
	}
	p.logger.Error(context.Background(), msg, vlog.PipelineErrorFields(err)...)
}

// systemConfig resolves the `system` binding and extracts its `config` key,
// the value the converter consumes.
func systemConfig(env *evaluator.Environment) (langvalue.Expr, error) {
	system, ok := env.Get("system")
	if !ok {
		return langvalue.Expr{}, fmt.Errorf("system is not bound")
	}
	resolved, err := evaluator.Resolve(system, env)
	if err != nil {
		return langvalue.Expr{}, err
	}
	cfg, ok := resolved.MapGet(langvalue.Sym("config"))
	if !ok {
		return langvalue.Expr{}, fmt.Errorf("system.config is not set")
	}
	return evaluator.Resolve(cfg, env)
}

// convert runs the converter stage against system.config, producing the
// typed domain.System the downstream mutation engine (out of scope here)
// would consume.
func (p *pipeline) convert(env *evaluator.Environment) (domain.System, error) {
	cfg, err := systemConfig(env)
	if err != nil {
		p.logError("convert failed", err)
		return domain.System{}, err
	}
	system, err := converter.Convert(cfg, env, p.logger)
	if err != nil {
		p.logError("convert failed", err)
		return domain.System{}, err
	}
	return system, nil
}

// spanOf returns the token.Span attached to a pipeline error, if any, so
// diagnostics can underline the offending source. Lex errors carry a
// Position instead of a Span; they're widened to a one-column span.
func spanOf(err error) (token.Span, bool) {
	var lexErr langerr.LexError
	if errors.As(err, &lexErr) {
		return token.Span{Row: lexErr.Pos.Row, ColStart: lexErr.Pos.Col, ColEnd: lexErr.Pos.Col + 1}, true
	}

	var parseErr langerr.ParseError
	if errors.As(err, &parseErr) && parseErr.Span.Row != 0 {
		return parseErr.Span, true
	}

	var evalErr langerr.EvalError
	if errors.As(err, &evalErr) && evalErr.Span.Row != 0 {
		return evalErr.Span, true
	}

	return token.Span{}, false
}
