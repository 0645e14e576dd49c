package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/vsl/internal/domain"
)

func TestNewActionID_IsUniqueAndNonEmpty(t *testing.T) {
	a := domain.NewActionID()
	b := domain.NewActionID()
	require.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestAction_StringByKind(t *testing.T) {
	mv := domain.Action{Kind: domain.ActionMoveFile, Source: "/a", Target: "/b"}
	assert.Equal(t, "MoveFile(/a -> /b)", mv.String())

	pkg := domain.Action{Kind: domain.ActionAddPackage, PackageName: "htop"}
	assert.Equal(t, "AddPackage(htop)", pkg.String())
}

func TestAction_EqualsIgnoresID(t *testing.T) {
	a := domain.Action{ID: domain.NewActionID(), Kind: domain.ActionRemoveFile, Target: "/tmp/x"}
	b := domain.Action{ID: domain.NewActionID(), Kind: domain.ActionRemoveFile, Target: "/tmp/x"}
	assert.True(t, a.Equals(b))

	c := domain.Action{ID: a.ID, Kind: domain.ActionRemoveFile, Target: "/tmp/y"}
	assert.False(t, a.Equals(c))
}

func TestActionKind_String(t *testing.T) {
	assert.Equal(t, "CopyFile", domain.ActionCopyFile.String())
	assert.Equal(t, "AddToFile", domain.ActionAddToFile.String())
	assert.Equal(t, "RemovePackage", domain.ActionRemovePackage.String())
	assert.Equal(t, "AddRepository", domain.ActionAddRepository.String())
	assert.Equal(t, "RemoveRepository", domain.ActionRemoveRepository.String())
	assert.Equal(t, "ConfigurePackage", domain.ActionConfigurePackage.String())
}

func TestAction_StringWithRepository(t *testing.T) {
	repo := domain.PackageRepository{Name: "personal", Location: domain.NewVoidRepoSource()}

	add := domain.Action{Kind: domain.ActionAddPackage, PackageName: "htop", Repository: &repo}
	assert.Equal(t, "AddPackage(htop from personal)", add.String())

	addRepo := domain.Action{Kind: domain.ActionAddRepository, Repository: &repo}
	assert.Equal(t, "AddRepository(personal)", addRepo.String())

	rmRepo := domain.Action{Kind: domain.ActionRemoveRepository, Repository: &repo}
	assert.Equal(t, "RemoveRepository(personal)", rmRepo.String())

	rmPkg := domain.Action{Kind: domain.ActionRemovePackage, PackageName: "htop"}
	assert.Equal(t, "RemovePackage(htop)", rmPkg.String())
}

func TestAction_StringWithConfigActions(t *testing.T) {
	cfg := domain.Action{
		Kind:        domain.ActionConfigurePackage,
		PackageName: "nginx",
		ConfigActions: []domain.Action{
			{Kind: domain.ActionCreateFile, Target: "/etc/nginx/nginx.conf"},
		},
	}
	assert.Equal(t, "ConfigurePackage(nginx, 1 actions)", cfg.String())
}

func TestAction_EqualsComparesRepositoryByValueNotPointer(t *testing.T) {
	branchA, branchB := "main", "main"
	repoA := domain.PackageRepository{
		Name:     "personal",
		Location: domain.NewGithubRemoteSource("sapein", "void-packages", &branchA),
	}
	repoB := domain.PackageRepository{
		Name:     "personal",
		Location: domain.NewGithubRemoteSource("sapein", "void-packages", &branchB),
	}

	a := domain.Action{Kind: domain.ActionAddRepository, Repository: &repoA}
	b := domain.Action{Kind: domain.ActionAddRepository, Repository: &repoB}
	assert.True(t, a.Equals(b), "repositories with equal contents but distinct Branch pointers must compare equal")

	repoC := repoB
	repoC.AllowRestricted = true
	c := domain.Action{Kind: domain.ActionAddRepository, Repository: &repoC}
	assert.False(t, a.Equals(c))
}

func TestAction_EqualsComparesConfigActionsRecursively(t *testing.T) {
	a := domain.Action{
		Kind:        domain.ActionConfigurePackage,
		PackageName: "nginx",
		ConfigActions: []domain.Action{
			{Kind: domain.ActionCreateFile, Target: "/etc/nginx/nginx.conf"},
		},
	}
	b := domain.Action{
		Kind:        domain.ActionConfigurePackage,
		PackageName: "nginx",
		ConfigActions: []domain.Action{
			{ID: domain.NewActionID(), Kind: domain.ActionCreateFile, Target: "/etc/nginx/nginx.conf"},
		},
	}
	assert.True(t, a.Equals(b))

	c := domain.Action{
		Kind:        domain.ActionConfigurePackage,
		PackageName: "nginx",
		ConfigActions: []domain.Action{
			{Kind: domain.ActionCreateFile, Target: "/etc/nginx/different.conf"},
		},
	}
	assert.False(t, a.Equals(c))
}
