// Package langerr defines the typed, fatal errors produced across the VSL
// pipeline, grounded on the per-kind-struct convention of the teacher's
// internal/domain errors (ErrInvalidPath, ErrConflict, ...): one struct per
// error kind, each implementing error. ParseError and EvalError carry an
// optional token.Span and LexError a token.Position for diagnostics; the
// other kinds carry no source location.
package langerr

import (
	"fmt"

	"github.com/yaklabco/vsl/internal/token"
)

// LexError is a fatal lexical error (unterminated string, malformed
// number, unknown character).
type LexError struct {
	Message string
	Pos     token.Position
}

func (e LexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// ParseError is a fatal syntactic error: unexpected token at a map-key
// position, duplicate map key, malformed listref/mapref, non-integer list
// index, indexing a map with a number, a Discard token reaching the
// parser, and so on.
type ParseError struct {
	Message string
	Span    token.Span // zero Span when the token stream isn't smart
}

func (e ParseError) Error() string {
	if e.Span.Row == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Span, e.Message)
}

// EvalError is a fatal evaluation error: unknown symbol, index out of
// range, key not found, calling a non-callable, attempting to call a
// FnResult, binding to a non-symbol/non-mapref target.
type EvalError struct {
	Message string
	Span    token.Span
}

func (e EvalError) Error() string {
	if e.Span.Row == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Span, e.Message)
}

// BuiltinTypeError is a fatal type error raised by a built-in when an
// argument has the wrong kind (e.g. the first argument to join is not a
// string).
type BuiltinTypeError struct {
	Builtin string
	Message string
}

func (e BuiltinTypeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Builtin, e.Message)
}

// UnimplementedError marks a reserved but not-yet-implemented feature:
// home, use_file, macros, and the scheduled file/system-action builtins.
type UnimplementedError struct {
	Feature string
}

func (e UnimplementedError) Error() string {
	return fmt.Sprintf("unimplemented: %s", e.Feature)
}

// ConvertError is a fatal error raised by the converter when an evaluated
// Map has the wrong shape for the domain model, naming the offending
// field.
type ConvertError struct {
	Field   string
	Message string
}

func (e ConvertError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
