package evaluator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/vsl/internal/builtins"
	"github.com/yaklabco/vsl/internal/evaluator"
	"github.com/yaklabco/vsl/internal/langvalue"
	"github.com/yaklabco/vsl/internal/lexer"
	"github.com/yaklabco/vsl/internal/parser"
)

func evalSource(t *testing.T, env *evaluator.Environment, disableLazy bool, src string) (langvalue.Expr, error) {
	t.Helper()
	toks, err := lexer.Tokenize(src, lexer.Options{Smart: true})
	require.NoError(t, err)
	exprs, err := parser.Parse(toks)
	require.NoError(t, err)
	in := evaluator.New(disableLazy)
	var last langvalue.Expr
	for _, e := range exprs {
		last, err = in.Eval(e, env)
		if err != nil {
			return langvalue.Expr{}, err
		}
	}
	return last, nil
}

// Scenario 1 (§8): system.config = { aaa = 123 } with system pre-bound to
// Map{} rebinds system to Map{config: Map{aaa: 123}}.
func TestEval_Scenario1_NestedMapRefAssignment(t *testing.T) {
	env := evaluator.NewEnvironment()
	env.Set("system", langvalue.NewMap())

	_, err := evalSource(t, env, false, `system.config = { aaa = 123 }`)
	require.NoError(t, err)

	system, ok := env.Get("system")
	require.True(t, ok)
	require.Equal(t, langvalue.KMap, system.Kind)

	config, ok := system.MapGet(langvalue.Sym("config"))
	require.True(t, ok)
	require.Equal(t, langvalue.KMap, config.Kind)

	aaa, ok := config.MapGet(langvalue.Sym("aaa"))
	require.True(t, ok)
	assert.Equal(t, float64(123), aaa.Num)
}

// Scenario 2 (§8): a.b alone parses to MapRef(Symbol a, Symbol b);
// evaluating it without a bound is fatal.
func TestEval_Scenario2_UnboundMapRefIsFatal(t *testing.T) {
	env := evaluator.NewEnvironment()
	_, err := evalSource(t, env, false, `a.b`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown symbol a")
}

// Scenario 3 (§8): c[1] parses to ListRef(Symbol c, 1); with
// c = [true, 10] it evaluates to 10.
func TestEval_Scenario3_ListRef(t *testing.T) {
	env := evaluator.NewEnvironment()
	env.Set("c", langvalue.NewList([]langvalue.Expr{langvalue.Bool(true), langvalue.Num(10)}))

	v, err := evalSource(t, env, false, `c[1]`)
	require.NoError(t, err)
	assert.Equal(t, langvalue.KNumber, v.Kind)
	assert.Equal(t, float64(10), v.Num)
}

func TestEval_ListRefOutOfRangeIsFatal(t *testing.T) {
	env := evaluator.NewEnvironment()
	env.Set("c", langvalue.NewList([]langvalue.Expr{langvalue.Num(1)}))
	_, err := evalSource(t, env, false, `c[5]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

// Scenario 5 (§8): gh-r 'sapein' 'void-packages' in eager mode evaluates
// to GitHubRemote{user=sapein, repo=void-packages, branch=nil}.
func TestEval_Scenario5_GithubRemoteEager(t *testing.T) {
	env := builtins.CreateStandardEnv(nil)
	v, err := evalSource(t, env, true, `gh-r 'sapein' 'void-packages'`)
	require.NoError(t, err)
	require.Equal(t, langvalue.KGitHubRemote, v.Kind)
	assert.Equal(t, "sapein", v.User)
	assert.Equal(t, "void-packages", v.Repo)
	assert.Nil(t, v.Branch)
}

// Scenario 6 (§8): replace and join in eager mode.
func TestEval_Scenario6_ReplaceAndJoin(t *testing.T) {
	env := builtins.CreateStandardEnv(nil)

	v, err := evalSource(t, env, true, `replace '.' ',' 'a.b'`)
	require.NoError(t, err)
	assert.Equal(t, "a,b", v.Str)

	v, err = evalSource(t, env, true, `join ',' ['a','b',1]`)
	require.NoError(t, err)
	assert.Equal(t, "a,b,1", v.Str)
}

func TestEval_LazyModeDoesNotRunBuiltinBody(t *testing.T) {
	env := evaluator.NewEnvironment()
	ran := false
	env.Set("count", langvalue.Expr{
		Kind: langvalue.KBuiltin,
		Fn: func(args []langvalue.Expr, e langvalue.Env) (langvalue.Expr, error) {
			ran = true
			return langvalue.Num(1), nil
		},
	})

	_, err := evalSource(t, env, false, `count 1`)
	require.NoError(t, err)
	assert.False(t, ran, "lazy mode must not run the builtin body until the thunk is forced")
}

func TestEval_EagerModeRunsBuiltinBodyOnce(t *testing.T) {
	env := evaluator.NewEnvironment()
	calls := 0
	env.Set("count", langvalue.Expr{
		Kind: langvalue.KBuiltin,
		Fn: func(args []langvalue.Expr, e langvalue.Env) (langvalue.Expr, error) {
			calls++
			return langvalue.Num(1), nil
		},
	})

	_, err := evalSource(t, env, true, `count 1`)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestEval_ForcingAThunkTwiceRunsBodyTwice(t *testing.T) {
	env := evaluator.NewEnvironment()
	calls := 0
	env.Set("count", langvalue.Expr{
		Kind: langvalue.KBuiltin,
		Fn: func(args []langvalue.Expr, e langvalue.Env) (langvalue.Expr, error) {
			calls++
			return langvalue.Num(float64(calls)), nil
		},
	})

	thunk, err := evalSource(t, env, false, `count 1`)
	require.NoError(t, err)
	require.Equal(t, langvalue.KFnResult, thunk.Kind)

	v1, err := evaluator.Force(thunk)
	require.NoError(t, err)
	v2, err := evaluator.Force(thunk)
	require.NoError(t, err)

	assert.Equal(t, float64(1), v1.Num)
	assert.Equal(t, float64(2), v2.Num)
}

func TestEval_IdentityOnAtomsWithNoFnCall(t *testing.T) {
	env := evaluator.NewEnvironment()
	v, err := evalSource(t, env, false, `42`)
	require.NoError(t, err)
	assert.Equal(t, float64(42), v.Num)

	v, err = evalSource(t, env, false, `[1, 2, 3]`)
	require.NoError(t, err)
	require.Len(t, v.Items, 3)
}

func TestEval_VarDeclBindsEvenWithoutFnCall(t *testing.T) {
	env := evaluator.NewEnvironment()
	_, err := evalSource(t, env, false, `x = 5`)
	require.NoError(t, err)
	v, ok := env.Get("x")
	require.True(t, ok)
	assert.Equal(t, float64(5), v.Num)
}

func TestSnapshot_LaterMutationNotVisibleToThunk(t *testing.T) {
	env := evaluator.NewEnvironment()
	env.Set("x", langvalue.Num(1))

	snap := env.Snapshot().(*evaluator.Environment)
	env.Set("x", langvalue.Num(2))

	v, ok := snap.Get("x")
	require.True(t, ok)
	assert.Equal(t, float64(1), v.Num, "a snapshot must not observe mutations made to the live environment afterward")
}
