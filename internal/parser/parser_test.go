package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/vsl/internal/lexer"
	"github.com/yaklabco/vsl/internal/langvalue"
	"github.com/yaklabco/vsl/internal/parser"
)

func parseOne(t *testing.T, src string) langvalue.Expr {
	t.Helper()
	toks, err := lexer.Tokenize(src, lexer.Options{Smart: true})
	require.NoError(t, err)
	exprs, err := parser.Parse(toks)
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	return exprs[0]
}

func TestParse_Atoms(t *testing.T) {
	assert.Equal(t, langvalue.KString, parseOne(t, `'hi'`).Kind)
	assert.Equal(t, "hi", parseOne(t, `'hi'`).Str)
	assert.Equal(t, langvalue.KNumber, parseOne(t, `42`).Kind)
	assert.Equal(t, langvalue.KBoolean, parseOne(t, `true`).Kind)
}

func TestParse_Path(t *testing.T) {
	e := parseOne(t, `/foo/bar`)
	assert.Equal(t, langvalue.KPath, e.Kind)
	assert.Equal(t, "/foo/bar", e.Str)

	e = parseOne(t, `./a.b`)
	assert.Equal(t, "./a.b", e.Str)

	e = parseOne(t, `/root/'a path'`)
	assert.Equal(t, "/root/a path", e.Str)
}

// Scenario 2 (§8): `a.b` parses to MapRef(Symbol a, Symbol b).
func TestParse_MapRef(t *testing.T) {
	e := parseOne(t, `a.b`)
	require.Equal(t, langvalue.KMapRef, e.Kind)
	assert.Equal(t, langvalue.KSymbol, e.Container.Kind)
	assert.Equal(t, "a", e.Container.Str)
	assert.Equal(t, "b", e.Index.Str)
}

func TestParse_MapRefByNumberIsFatal(t *testing.T) {
	toks, err := lexer.Tokenize(`a.1`, lexer.Options{})
	require.NoError(t, err)
	_, err = parser.Parse(toks)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot index a map by a number")
}

func TestParse_SymbolDotSlashIsFunctionCall(t *testing.T) {
	e := parseOne(t, `foo ./bar`)
	require.Equal(t, langvalue.KFnCall, e.Kind)
	assert.Equal(t, "foo", e.Name)
	require.Len(t, e.Args, 1)
	assert.Equal(t, langvalue.KPath, e.Args[0].Kind)
	assert.Equal(t, "./bar", e.Args[0].Str)
}

// Scenario 3 (§8): `c[1]` parses to ListRef(Symbol c, 1).
func TestParse_ListRef(t *testing.T) {
	e := parseOne(t, `c[1]`)
	require.Equal(t, langvalue.KListRef, e.Kind)
	assert.Equal(t, "c", e.Container.Str)
	assert.Equal(t, float64(1), e.Index.Num)
}

func TestParse_ListRefNonAdjacentBracketIsNewList(t *testing.T) {
	e := parseOne(t, `c [1]`)
	require.Equal(t, langvalue.KFnCall, e.Kind)
	require.Len(t, e.Args, 1)
	assert.Equal(t, langvalue.KList, e.Args[0].Kind)
}

// Scenario 4 (§8): `c[1.5]` is a fatal parse error.
func TestParse_ListRefNonIntegerIndexFatal(t *testing.T) {
	toks, err := lexer.Tokenize(`c[1.5]`, lexer.Options{})
	require.NoError(t, err)
	_, err = parser.Parse(toks)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-integer")
}

func TestParse_ListRefCommaIsMalformed(t *testing.T) {
	toks, err := lexer.Tokenize(`c[1,2]`, lexer.Options{})
	require.NoError(t, err)
	_, err = parser.Parse(toks)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed")
}

func TestParse_List(t *testing.T) {
	e := parseOne(t, `[1, 2, 3,]`)
	require.Equal(t, langvalue.KList, e.Kind)
	require.Len(t, e.Items, 3)

	e = parseOne(t, `[]`)
	assert.Equal(t, langvalue.KList, e.Kind)
	assert.Len(t, e.Items, 0)
}

func TestParse_Map(t *testing.T) {
	e := parseOne(t, `{ a = 1; b = 2 }`)
	require.Equal(t, langvalue.KMap, e.Kind)
	require.Len(t, e.MapKeys, 2)
	v, ok := e.MapGet(langvalue.Sym("b"))
	require.True(t, ok)
	assert.Equal(t, float64(2), v.Num)
}

func TestParse_MapToleratesStrayCommas(t *testing.T) {
	e := parseOne(t, `{ ,a = 1, ; b = 2 , }`)
	require.Equal(t, langvalue.KMap, e.Kind)
	require.Len(t, e.MapKeys, 2)
}

func TestParse_MapDuplicateKeyIsFatal(t *testing.T) {
	toks, err := lexer.Tokenize(`{ a = 1; a = 2 }`, lexer.Options{Smart: true})
	require.NoError(t, err)
	_, err = parser.Parse(toks)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate map key")
	assert.Contains(t, err.Error(), `"a"`)
}

// Scenario 1 (§8): `system.config = { aaa = 123 }` parses to a VarDecl
// whose target is a MapRef.
func TestParse_VarDeclViaMapRef(t *testing.T) {
	e := parseOne(t, `system.config = { aaa = 123 }`)
	require.Equal(t, langvalue.KVarDecl, e.Kind)
	require.Equal(t, langvalue.KMapRef, e.Target.Kind)
	require.Equal(t, langvalue.KMap, e.Value.Kind)
}

func TestParse_VarDeclViaSymbol(t *testing.T) {
	e := parseOne(t, `x = 5`)
	require.Equal(t, langvalue.KVarDecl, e.Kind)
	require.Equal(t, langvalue.KSymbol, e.Target.Kind)
	assert.Equal(t, "x", e.Target.Str)
}

func TestParse_AssignToListRefIsFatal(t *testing.T) {
	toks, err := lexer.Tokenize(`c[0] = 5`, lexer.Options{})
	require.NoError(t, err)
	_, err = parser.Parse(toks)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot assign to a list reference")
}

// Scenario 5 (§8): `gh-r 'sapein' 'void-packages'` is a function call.
func TestParse_FunctionCall(t *testing.T) {
	e := parseOne(t, `gh-r 'sapein' 'void-packages'`)
	require.Equal(t, langvalue.KFnCall, e.Kind)
	assert.Equal(t, "gh-r", e.Name)
	require.Len(t, e.Args, 2)
	assert.Equal(t, "sapein", e.Args[0].Str)
}

func TestParse_BareSymbolIsNotACall(t *testing.T) {
	e := parseOne(t, `foo`)
	assert.Equal(t, langvalue.KSymbol, e.Kind)
}

func TestParse_QuotedEqualsInCallIsString(t *testing.T) {
	e := parseOne(t, `join '=' ['a','b']`)
	require.Equal(t, langvalue.KFnCall, e.Kind)
	require.Len(t, e.Args, 2)
	assert.Equal(t, langvalue.KString, e.Args[0].Kind)
}

func TestParse_ParensReturnsLastExpr(t *testing.T) {
	e := parseOne(t, `(1 2 3)`)
	assert.Equal(t, langvalue.KNumber, e.Kind)
	assert.Equal(t, float64(3), e.Num)
}

func TestParse_EmptyParensIsError(t *testing.T) {
	toks, err := lexer.Tokenize(`()`, lexer.Options{})
	require.NoError(t, err)
	_, err = parser.Parse(toks)
	require.Error(t, err)
}

func TestParse_ChainedMapRefThenAssignment(t *testing.T) {
	e := parseOne(t, `a.b.c = 1`)
	require.Equal(t, langvalue.KVarDecl, e.Kind)
	require.Equal(t, langvalue.KMapRef, e.Target.Kind)
	require.Equal(t, langvalue.KMapRef, e.Target.Container.Kind)
	assert.Equal(t, "a", e.Target.Container.Container.Str)
}

func TestParse_MultipleTopLevelExprs(t *testing.T) {
	toks, err := lexer.Tokenize(`a = 1
b = 2`, lexer.Options{})
	require.NoError(t, err)
	exprs, err := parser.Parse(toks)
	require.NoError(t, err)
	require.Len(t, exprs, 2)
}
