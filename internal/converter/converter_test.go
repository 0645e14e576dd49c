package converter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/vsl/internal/builtins"
	"github.com/yaklabco/vsl/internal/converter"
	"github.com/yaklabco/vsl/internal/domain"
	"github.com/yaklabco/vsl/internal/evaluator"
	"github.com/yaklabco/vsl/internal/langvalue"
	"github.com/yaklabco/vsl/internal/lexer"
	"github.com/yaklabco/vsl/internal/parser"
)

// Scenario 7 (§8): a system.config map with one service and one vp_repos
// entry built from gh-r converts into the expected System.
func TestConvert_Scenario7(t *testing.T) {
	src := `system.config = {
		services = [{name='sshd'}];
		vp_repos = { personal = { location = gh-r 'sapein' 'void-packages'; branch='personal'; allow_restricted = true } }
	}`

	toks, err := lexer.Tokenize(src, lexer.Options{Smart: true})
	require.NoError(t, err)
	exprs, err := parser.Parse(toks)
	require.NoError(t, err)
	require.Len(t, exprs, 1)

	env := builtins.CreateStandardEnv(nil)
	env.Set("system", langvalue.NewMap())

	in := evaluator.New(false) // lazy: vp_repos.location is a thunk until forced
	_, err = in.Eval(exprs[0], env)
	require.NoError(t, err)

	system, ok := env.Get("system")
	require.True(t, ok)
	configMap, ok := system.MapGet(langvalue.Sym("config"))
	require.True(t, ok)

	sys, err := converter.Convert(configMap, env, nil)
	require.NoError(t, err)

	require.Contains(t, sys.Services, "sshd")
	assert.True(t, sys.Services["sshd"].Enabled)
	assert.False(t, sys.Services["sshd"].Downed)

	require.Contains(t, sys.Repositories, "personal")
	repo := sys.Repositories["personal"]
	assert.True(t, repo.AllowRestricted)
	require.Equal(t, domain.SourceRemote, repo.Location.Kind)
	require.Equal(t, domain.RemoteGithub, repo.Location.Remote.Kind)
	assert.Equal(t, "sapein", repo.Location.Remote.User)
	assert.Equal(t, "void-packages", repo.Location.Remote.Repo)
	require.NotNil(t, repo.Location.Remote.Branch)
	assert.Equal(t, "personal", *repo.Location.Remote.Branch)
}

func TestConvert_UsersWithDefaultsAndPackages(t *testing.T) {
	src := `system.config = {
		users = { sapein = { packages = [htop, jq] } }
	}`
	toks, err := lexer.Tokenize(src, lexer.Options{Smart: true})
	require.NoError(t, err)
	exprs, err := parser.Parse(toks)
	require.NoError(t, err)

	env := builtins.CreateStandardEnv(nil)
	env.Set("system", langvalue.NewMap())
	in := evaluator.New(true)
	_, err = in.Eval(exprs[0], env)
	require.NoError(t, err)

	system, _ := env.Get("system")
	configMap, _ := system.MapGet(langvalue.Sym("config"))

	sys, err := converter.Convert(configMap, env, nil)
	require.NoError(t, err)

	require.Contains(t, sys.Users, "sapein")
	u := sys.Users["sapein"]
	assert.Equal(t, "/home/sapein", u.Homedir.Location)
	assert.Empty(t, u.Homedir.Subdirs)
	require.Contains(t, u.Packages, "htop")
	require.Contains(t, u.Packages, "jq")
	assert.Equal(t, domain.RemoteVoidRepo, u.Packages["htop"].Repository.Remote.Kind)
}

func TestConvert_WrongShapeIsFatal(t *testing.T) {
	env := builtins.CreateStandardEnv(nil)
	_, err := converter.Convert(langvalue.Num(1), env, nil)
	require.Error(t, err)
}
