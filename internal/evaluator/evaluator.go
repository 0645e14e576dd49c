// Package evaluator tree-walks an Expr against an Environment, producing
// another Expr (SPEC_FULL.md §4.3). Function calls are lazy by default,
// producing an unevaluated FnResult thunk; every other form is eager.
package evaluator

import (
	"fmt"

	"github.com/yaklabco/vsl/internal/langerr"
	"github.com/yaklabco/vsl/internal/langvalue"
)

// Interpreter carries the one evaluation-wide switch the spec names:
// disable_lazy forces every FnCall to reduce immediately instead of
// producing a thunk.
type Interpreter struct {
	DisableLazy bool
}

// New creates an Interpreter.
func New(disableLazy bool) *Interpreter {
	return &Interpreter{DisableLazy: disableLazy}
}

func ref(e langvalue.Expr) *langvalue.Expr { return &e }

// Eval evaluates expr against env per the per-constructor rules in §4.3.
func (in *Interpreter) Eval(expr langvalue.Expr, env *Environment) (langvalue.Expr, error) {
	switch expr.Kind {
	case langvalue.KString, langvalue.KNumber, langvalue.KBoolean, langvalue.KPath,
		langvalue.KGitHubRemote, langvalue.KMap, langvalue.KList,
		langvalue.KBuiltin, langvalue.KMacro, langvalue.KAction:
		// Self-evaluating: Map/List are data carriers and are not
		// recursively eager-evaluated.
		return expr, nil
	case langvalue.KSymbol:
		v, ok := env.Get(expr.Str)
		if !ok {
			return langvalue.Expr{}, langerr.EvalError{
				Message: fmt.Sprintf("unknown symbol %s", expr.Str),
				Span:    expr.Span,
			}
		}
		return v, nil
	case langvalue.KListRef:
		return in.evalListRef(expr, env)
	case langvalue.KMapRef:
		return in.evalMapRef(expr, env)
	case langvalue.KVarDecl:
		return in.evalVarDecl(expr, env)
	case langvalue.KFnCall:
		return in.evalFnCall(expr, env)
	case langvalue.KFnResult:
		return Force(expr)
	default:
		return langvalue.Expr{}, langerr.EvalError{
			Message: "cannot evaluate " + expr.Kind.String(),
			Span:    expr.Span,
		}
	}
}

func (in *Interpreter) evalListRef(expr langvalue.Expr, env *Environment) (langvalue.Expr, error) {
	container, err := in.Eval(*expr.Container, env)
	if err != nil {
		return langvalue.Expr{}, err
	}
	if container.Kind != langvalue.KList {
		return langvalue.Expr{}, langerr.EvalError{
			Message: "cannot index a non-list value",
			Span:    expr.Span,
		}
	}
	i := int64(expr.Index.Num)
	if i < 0 {
		return langvalue.Expr{}, langerr.EvalError{
			Message: "list index must be non-negative",
			Span:    expr.Span,
		}
	}
	if i >= int64(len(container.Items)) {
		return langvalue.Expr{}, langerr.EvalError{
			Message: fmt.Sprintf("list index %d out of range (len %d)", i, len(container.Items)),
			Span:    expr.Span,
		}
	}
	return container.Items[i], nil
}

func (in *Interpreter) evalMapRef(expr langvalue.Expr, env *Environment) (langvalue.Expr, error) {
	container, err := in.Eval(*expr.Container, env)
	if err != nil {
		return langvalue.Expr{}, err
	}
	if container.Kind != langvalue.KMap {
		return langvalue.Expr{}, langerr.EvalError{
			Message: "cannot index a non-map value",
			Span:    expr.Span,
		}
	}
	v, ok := container.MapGet(*expr.Index)
	if !ok {
		return langvalue.Expr{}, langerr.EvalError{
			Message: fmt.Sprintf("key %q not found", expr.Index.Str),
			Span:    expr.Span,
		}
	}
	return v, nil
}

// evalVarDecl binds the unevaluated value into env at target. A Symbol
// target overwrites that name directly; a MapRef target rebinds the whole
// map it chains from (§4.3).
func (in *Interpreter) evalVarDecl(expr langvalue.Expr, env *Environment) (langvalue.Expr, error) {
	target := *expr.Target
	value := *expr.Value
	switch target.Kind {
	case langvalue.KSymbol:
		env.Set(target.Str, value)
		return value, nil
	case langvalue.KMapRef:
		if _, err := in.bindMapRef(target, value, env); err != nil {
			return langvalue.Expr{}, err
		}
		return value, nil
	default:
		return langvalue.Expr{}, langerr.EvalError{
			Message: "VarDecl target must be a symbol or map reference",
			Span:    target.Span,
		}
	}
}

// bindMapRef inserts key → value into the map that target's container
// resolves to, and rebinds the result at container's own location. When
// container is itself a MapRef (chained access, e.g. a.b.c = 1), the
// update recurses outward one level at a time.
func (in *Interpreter) bindMapRef(target, value langvalue.Expr, env *Environment) (langvalue.Expr, error) {
	container := *target.Container
	key := *target.Index

	switch container.Kind {
	case langvalue.KSymbol:
		m, ok := env.Get(container.Str)
		if !ok {
			return langvalue.Expr{}, langerr.EvalError{
				Message: fmt.Sprintf("unknown symbol %s", container.Str),
				Span:    container.Span,
			}
		}
		if m.Kind != langvalue.KMap {
			return langvalue.Expr{}, langerr.EvalError{
				Message: fmt.Sprintf("%s is not a map", container.Str),
				Span:    container.Span,
			}
		}
		updated := m.MapSet(key, value)
		env.Set(container.Str, updated)
		return updated, nil
	case langvalue.KMapRef:
		cur, err := in.Eval(container, env)
		if err != nil {
			return langvalue.Expr{}, err
		}
		if cur.Kind != langvalue.KMap {
			return langvalue.Expr{}, langerr.EvalError{
				Message: "cannot assign into a non-map reference",
				Span:    container.Span,
			}
		}
		updated := cur.MapSet(key, value)
		return in.bindMapRef(container, updated, env)
	default:
		return langvalue.Expr{}, langerr.EvalError{
			Message: "invalid assignment target",
			Span:    container.Span,
		}
	}
}

// evalFnCall looks up name, then either produces a thunk (default, lazy)
// or reduces it immediately when the interpreter runs in disable_lazy mode.
func (in *Interpreter) evalFnCall(expr langvalue.Expr, env *Environment) (langvalue.Expr, error) {
	callee, ok := env.Get(expr.Name)
	if !ok {
		return langvalue.Expr{}, langerr.EvalError{
			Message: fmt.Sprintf("unknown function %s", expr.Name),
			Span:    expr.Span,
		}
	}
	switch callee.Kind {
	case langvalue.KBuiltin:
		thunk := langvalue.Expr{
			Kind:        langvalue.KFnResult,
			Callable:    ref(callee),
			Args:        expr.Args,
			CapturedEnv: env.Snapshot(),
			Span:        expr.Span,
		}
		if in.DisableLazy {
			return Force(thunk)
		}
		return thunk, nil
	case langvalue.KMacro:
		return langvalue.Expr{}, langerr.UnimplementedError{Feature: "macros"}
	default:
		return langvalue.Expr{}, langerr.EvalError{
			Message: fmt.Sprintf("%s is not callable", expr.Name),
			Span:    expr.Span,
		}
	}
}

// Force invokes a FnResult thunk's captured builtin against its captured
// environment snapshot, exactly once. Thunks are not memoized: forcing the
// same Expr value twice runs the builtin body twice (§4.3).
func Force(thunk langvalue.Expr) (langvalue.Expr, error) {
	if thunk.Kind != langvalue.KFnResult {
		return langvalue.Expr{}, langerr.EvalError{
			Message: "Force called on a non-FnResult value",
			Span:    thunk.Span,
		}
	}
	capturedEnv, ok := thunk.CapturedEnv.(*Environment)
	if !ok || capturedEnv == nil {
		return langvalue.Expr{}, langerr.EvalError{
			Message: "corrupt captured environment",
			Span:    thunk.Span,
		}
	}
	callable := thunk.Callable
	if callable == nil || callable.Fn == nil {
		return langvalue.Expr{}, langerr.EvalError{
			Message: "attempted to call a FnResult whose callable is not a builtin",
			Span:    thunk.Span,
		}
	}
	return callable.Fn(thunk.Args, capturedEnv)
}

// Resolve fully reduces expr to a concrete, self-evaluating value: it
// follows Symbol lookups, resolves List/Map references, and forces
// FnResult thunks, recursing until none of those remain. Used by the
// print built-in and the converter, both of which must observe a thunk's
// produced value rather than the thunk itself.
func Resolve(expr langvalue.Expr, env *Environment) (langvalue.Expr, error) {
	switch expr.Kind {
	case langvalue.KSymbol:
		v, ok := env.Get(expr.Str)
		if !ok {
			return langvalue.Expr{}, langerr.EvalError{
				Message: fmt.Sprintf("unknown symbol %s", expr.Str),
				Span:    expr.Span,
			}
		}
		return Resolve(v, env)
	case langvalue.KListRef, langvalue.KMapRef, langvalue.KFnCall:
		in := &Interpreter{}
		v, err := in.Eval(expr, env)
		if err != nil {
			return langvalue.Expr{}, err
		}
		return Resolve(v, env)
	case langvalue.KFnResult:
		v, err := Force(expr)
		if err != nil {
			return langvalue.Expr{}, err
		}
		return Resolve(v, env)
	default:
		return expr, nil
	}
}
