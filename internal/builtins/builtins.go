// Package builtins installs the fixed table of host-provided functions
// (SPEC_FULL.md §4.4) into a fresh Environment, mirroring the teacher's
// internal/cli command-table pattern: one map literal, one named handler
// per entry, no reflection.
package builtins

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/vsl/internal/evaluator"
	"github.com/yaklabco/vsl/internal/langerr"
	"github.com/yaklabco/vsl/internal/langvalue"
)

const voidPackagesRepoNameVar = "VOID_PACKAGES_REPO_NAME"

// CreateStandardEnv builds a root Environment with every built-in bound.
// out is where print writes; a nil out defaults to os.Stdout.
func CreateStandardEnv(out io.Writer) *evaluator.Environment {
	if out == nil {
		out = os.Stdout
	}
	env := evaluator.NewEnvironment()
	for name, fn := range table(out) {
		env.Set(name, langvalue.Expr{Kind: langvalue.KBuiltin, Fn: fn})
	}
	return env
}

func table(out io.Writer) map[string]langvalue.BuiltinFunc {
	return map[string]langvalue.BuiltinFunc{
		"print":             printBuiltin(out),
		"gh-r":              githubRepo,
		"github-repo":       githubRepo,
		"voidpackages-repo": voidPackagesRepo,
		"vp-r":              voidPackagesRepo,
		"join":              joinBuiltin,
		"replace":           replaceBuiltin,
		"home":              unimplemented("home"),
		"use_file":          unimplemented("use_file"),
		"move-file":         unimplemented("move-file"),
		"copy-file":         unimplemented("copy-file"),
		"rename-file":       unimplemented("rename-file"),
		"add-to-file":       unimplemented("add-to-file"),
		"remove-file":       unimplemented("remove-file"),
		"create-file":       unimplemented("create-file"),
		"add-package":       unimplemented("add-package"),
		"remove-package":    unimplemented("remove-package"),
		"add-repository":    unimplemented("add-repository"),
		"remove-repository": unimplemented("remove-repository"),
		"configure-package": unimplemented("configure-package"),
	}
}

func unimplemented(feature string) langvalue.BuiltinFunc {
	return func(args []langvalue.Expr, env langvalue.Env) (langvalue.Expr, error) {
		return langvalue.Expr{}, langerr.UnimplementedError{Feature: feature}
	}
}

func asEnvironment(env langvalue.Env) (*evaluator.Environment, error) {
	e, ok := env.(*evaluator.Environment)
	if !ok || e == nil {
		return nil, langerr.EvalError{Message: "builtin invoked outside an Environment"}
	}
	return e, nil
}

// resolveStringish implements the spec's resolve_expr helper narrowed to
// string-ish arguments: a Symbol is looked up and resolved recursively, a
// String is returned as-is, anything else is a type error.
func resolveStringish(builtin string, arg langvalue.Expr, env *evaluator.Environment) (string, error) {
	resolved, err := evaluator.Resolve(arg, env)
	if err != nil {
		return "", err
	}
	if resolved.Kind != langvalue.KString {
		return "", langerr.BuiltinTypeError{
			Builtin: builtin,
			Message: fmt.Sprintf("expected a string-ish argument, got %s", resolved.Kind),
		}
	}
	return resolved.Str, nil
}

// stringify renders a resolved value the way join/print display list
// items and arguments: strings verbatim, numbers without a trailing ".0",
// booleans as "true"/"false".
func stringify(e langvalue.Expr) string {
	switch e.Kind {
	case langvalue.KString, langvalue.KSymbol, langvalue.KPath:
		return e.Str
	case langvalue.KNumber:
		return strconv.FormatFloat(e.Num, 'f', -1, 64)
	case langvalue.KBoolean:
		if e.Bool() {
			return "true"
		}
		return "false"
	default:
		return e.String()
	}
}

func printBuiltin(out io.Writer) langvalue.BuiltinFunc {
	return func(args []langvalue.Expr, env langvalue.Env) (langvalue.Expr, error) {
		if len(args) == 0 {
			return langvalue.Expr{}, langerr.BuiltinTypeError{Builtin: "print", Message: "expects at least one argument"}
		}
		e, err := asEnvironment(env)
		if err != nil {
			return langvalue.Expr{}, err
		}
		parts := make([]string, len(args))
		for i, a := range args {
			resolved, err := evaluator.Resolve(a, e)
			if err != nil {
				return langvalue.Expr{}, err
			}
			parts[i] = stringify(resolved)
		}
		fmt.Fprintln(out, strings.Join(parts, " "))
		if f, ok := out.(interface{ Flush() error }); ok {
			_ = f.Flush()
		}
		return langvalue.Expr{}, nil
	}
}

// githubRepo implements gh-r / github-repo: 2 or 3 string-ish arguments
// (user, repo[, branch]) → GitHubRemote.
func githubRepo(args []langvalue.Expr, env langvalue.Env) (langvalue.Expr, error) {
	e, err := asEnvironment(env)
	if err != nil {
		return langvalue.Expr{}, err
	}
	if len(args) != 2 && len(args) != 3 {
		return langvalue.Expr{}, langerr.BuiltinTypeError{Builtin: "gh-r", Message: "expects 2 or 3 arguments"}
	}
	user, err := resolveStringish("gh-r", args[0], e)
	if err != nil {
		return langvalue.Expr{}, err
	}
	repo, err := resolveStringish("gh-r", args[1], e)
	if err != nil {
		return langvalue.Expr{}, err
	}
	result := langvalue.Expr{Kind: langvalue.KGitHubRemote, User: user, Repo: repo}
	if len(args) == 3 {
		branch, err := resolveStringish("gh-r", args[2], e)
		if err != nil {
			return langvalue.Expr{}, err
		}
		result.Branch = &branch
	}
	return result, nil
}

// voidPackagesRepo implements voidpackages-repo / vp-r: gh-r(user,
// "void-packages"), plus inserting VOID_PACKAGES_REPO_NAME into env if
// it isn't already bound.
func voidPackagesRepo(args []langvalue.Expr, env langvalue.Env) (langvalue.Expr, error) {
	e, err := asEnvironment(env)
	if err != nil {
		return langvalue.Expr{}, err
	}
	if len(args) != 1 {
		return langvalue.Expr{}, langerr.BuiltinTypeError{Builtin: "vp-r", Message: "expects 1 argument"}
	}
	if _, ok := e.Get(voidPackagesRepoNameVar); !ok {
		e.Set(voidPackagesRepoNameVar, langvalue.Str("void-packages"))
	}
	return githubRepo([]langvalue.Expr{args[0], langvalue.Str("void-packages")}, env)
}

// joinBuiltin implements join: (separator, list) → String.
func joinBuiltin(args []langvalue.Expr, env langvalue.Env) (langvalue.Expr, error) {
	e, err := asEnvironment(env)
	if err != nil {
		return langvalue.Expr{}, err
	}
	if len(args) != 2 {
		return langvalue.Expr{}, langerr.BuiltinTypeError{Builtin: "join", Message: "expects 2 arguments"}
	}
	sep, err := resolveStringish("join", args[0], e)
	if err != nil {
		return langvalue.Expr{}, err
	}
	list, err := evaluator.Resolve(args[1], e)
	if err != nil {
		return langvalue.Expr{}, err
	}
	if list.Kind != langvalue.KList {
		return langvalue.Expr{}, langerr.BuiltinTypeError{Builtin: "join", Message: "second argument must be a list"}
	}
	parts := make([]string, len(list.Items))
	for i, item := range list.Items {
		resolved, err := evaluator.Resolve(item, e)
		if err != nil {
			return langvalue.Expr{}, err
		}
		parts[i] = stringify(resolved)
	}
	return langvalue.Str(strings.Join(parts, sep)), nil
}

// replaceBuiltin implements replace: (needle, with, haystack) → String,
// returning haystack with every occurrence of needle replaced by with.
func replaceBuiltin(args []langvalue.Expr, env langvalue.Env) (langvalue.Expr, error) {
	e, err := asEnvironment(env)
	if err != nil {
		return langvalue.Expr{}, err
	}
	if len(args) != 3 {
		return langvalue.Expr{}, langerr.BuiltinTypeError{Builtin: "replace", Message: "expects 3 arguments"}
	}
	needle, err := resolveStringish("replace", args[0], e)
	if err != nil {
		return langvalue.Expr{}, err
	}
	with, err := resolveStringish("replace", args[1], e)
	if err != nil {
		return langvalue.Expr{}, err
	}
	haystack, err := resolveStringish("replace", args[2], e)
	if err != nil {
		return langvalue.Expr{}, err
	}
	return langvalue.Str(strings.ReplaceAll(haystack, needle, with)), nil
}
