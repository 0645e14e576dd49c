package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/vsl/internal/langerr"
	"github.com/yaklabco/vsl/internal/token"
)

func TestExitCodeFor_Nil(t *testing.T) {
	assert.Equal(t, ExitSuccess, exitCodeFor(nil))
}

func TestExitCodeFor_EachKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"lex", langerr.LexError{Message: "bad char", Pos: token.Position{Row: 1, Col: 1}}, ExitLexError},
		{"parse", langerr.ParseError{Message: "unexpected token"}, ExitParseError},
		{"eval", langerr.EvalError{Message: "unknown symbol"}, ExitEvalError},
		{"builtin type", langerr.BuiltinTypeError{Builtin: "join", Message: "not a string"}, ExitBuiltinType},
		{"unimplemented", langerr.UnimplementedError{Feature: "home"}, ExitUnimplemented},
		{"convert", langerr.ConvertError{Field: "services", Message: "must be a list"}, ExitConvertError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCodeFor(tt.err))
		})
	}
}

func TestExitCodeFor_GenericError(t *testing.T) {
	assert.Equal(t, ExitGeneralError, exitCodeFor(assert.AnError))
}
