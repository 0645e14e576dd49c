package evaluator

import "github.com/yaklabco/vsl/internal/langvalue"

// Environment is a frame in the lexically-scoped chain described in
// SPEC_FULL.md §3: variables bound in the current frame, lookups walking
// through parents. It implements langvalue.Env so a FnResult thunk can
// carry a captured snapshot without an import cycle back into this package.
type Environment struct {
	vars   map[string]langvalue.Expr
	parent *Environment
}

// NewEnvironment creates an empty root frame.
func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]langvalue.Expr)}
}

// NewChild creates a frame whose lookups fall through to parent.
func NewChild(parent *Environment) *Environment {
	return &Environment{vars: make(map[string]langvalue.Expr), parent: parent}
}

// Get walks the frame chain for name.
func (e *Environment) Get(name string) (langvalue.Expr, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return langvalue.Expr{}, false
}

// Set binds name in the current frame only, overwriting any existing value.
func (e *Environment) Set(name string, val langvalue.Expr) {
	e.vars[name] = val
}

// Snapshot returns a value-semantics copy of the full frame chain: later
// mutation of e (or any of its ancestors) is never visible through the
// result, satisfying the "captured environment" contract a FnResult thunk
// depends on (SPEC_FULL.md §5).
func (e *Environment) Snapshot() langvalue.Env {
	if e == nil {
		return (*Environment)(nil)
	}
	cp := &Environment{vars: make(map[string]langvalue.Expr, len(e.vars))}
	for k, v := range e.vars {
		cp.vars[k] = v
	}
	if e.parent != nil {
		cp.parent = e.parent.Snapshot().(*Environment)
	}
	return cp
}
