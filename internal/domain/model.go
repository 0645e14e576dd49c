package domain

import "fmt"

// System is the converter's output: a target machine state described by
// services, package repositories, users, and a reserved system-wide
// package set (SPEC_FULL.md §3).
type System struct {
	Services     map[string]Service
	Repositories map[string]PackageRepository
	Users        map[string]User
	Packages     map[string]Package
}

// NewSystem returns a System with every mapping initialized empty, so the
// converter never hands back a nil map a caller would need to guard.
func NewSystem() System {
	return System{
		Services:     map[string]Service{},
		Repositories: map[string]PackageRepository{},
		Users:        map[string]User{},
		Packages:     map[string]Package{},
	}
}

// Service describes one managed service entry.
type Service struct {
	Name    string
	Enabled bool // default true
	Downed  bool // default false
}

// PackageRepository describes one package source the converter lifted
// from a vp_repos entry.
type PackageRepository struct {
	Name            string
	Location        Source
	AllowRestricted bool
}

// SourceKind tags which half of the Source union is populated.
type SourceKind int

const (
	SourceRemote SourceKind = iota
	SourceLocal
)

func (k SourceKind) String() string {
	if k == SourceLocal {
		return "Local"
	}
	return "Remote"
}

// RemoteKind tags which RemoteSource variant is populated.
type RemoteKind int

const (
	RemoteGithub RemoteKind = iota
	RemoteGit
	RemoteVoid
	RemoteVoidRepo
)

func (k RemoteKind) String() string {
	switch k {
	case RemoteGithub:
		return "GithubRemote"
	case RemoteGit:
		return "GitRemote"
	case RemoteVoid:
		return "VoidRemote"
	case RemoteVoidRepo:
		return "VoidRepo"
	default:
		return "Unknown"
	}
}

// LocalKind tags which LocalSource variant is populated.
type LocalKind int

const (
	LocalDirectory LocalKind = iota
	LocalFile
)

func (k LocalKind) String() string {
	if k == LocalFile {
		return "File"
	}
	return "Directory"
}

// RemoteSource is Source::Remote's payload: GithubRemote{user,
// repository_name, branch_name?} | GitRemote{url, branch_name?} |
// VoidRemote(name) | VoidRepo. VoidRemote and GitRemote are modeled but
// not currently producible by any built-in (SPEC_FULL.md's Domain Model
// Additions) — no git-r/void-r built-in exists yet.
type RemoteSource struct {
	Kind RemoteKind

	// GithubRemote / GitRemote.
	User   string // GithubRemote
	Repo   string // GithubRemote repository_name
	URL    string // GitRemote
	Branch *string

	// VoidRemote.
	Name string
}

func (r RemoteSource) String() string {
	switch r.Kind {
	case RemoteGithub:
		if r.Branch != nil {
			return fmt.Sprintf("GithubRemote{%s/%s@%s}", r.User, r.Repo, *r.Branch)
		}
		return fmt.Sprintf("GithubRemote{%s/%s}", r.User, r.Repo)
	case RemoteGit:
		if r.Branch != nil {
			return fmt.Sprintf("GitRemote{%s@%s}", r.URL, *r.Branch)
		}
		return fmt.Sprintf("GitRemote{%s}", r.URL)
	case RemoteVoid:
		return fmt.Sprintf("VoidRemote(%s)", r.Name)
	default:
		return "VoidRepo"
	}
}

// LocalSource is Source::Local's payload: Directory(path) | File(path).
type LocalSource struct {
	Kind LocalKind
	Path string
}

func (l LocalSource) String() string {
	return fmt.Sprintf("%s(%s)", l.Kind, l.Path)
}

// Source is the union Remote(RemoteSource) | Local(LocalSource).
type Source struct {
	Kind   SourceKind
	Remote RemoteSource
	Local  LocalSource
}

func (s Source) String() string {
	if s.Kind == SourceLocal {
		return s.Local.String()
	}
	return s.Remote.String()
}

// NewGithubRemoteSource builds a Source::Remote(GithubRemote{...}).
func NewGithubRemoteSource(user, repo string, branch *string) Source {
	return Source{Kind: SourceRemote, Remote: RemoteSource{Kind: RemoteGithub, User: user, Repo: repo, Branch: branch}}
}

// NewGitRemoteSource builds a Source::Remote(GitRemote{...}).
func NewGitRemoteSource(url string, branch *string) Source {
	return Source{Kind: SourceRemote, Remote: RemoteSource{Kind: RemoteGit, URL: url, Branch: branch}}
}

// NewVoidRemoteSource builds a Source::Remote(VoidRemote(name)).
func NewVoidRemoteSource(name string) Source {
	return Source{Kind: SourceRemote, Remote: RemoteSource{Kind: RemoteVoid, Name: name}}
}

// NewVoidRepoSource builds a Source::Remote(VoidRepo).
func NewVoidRepoSource() Source {
	return Source{Kind: SourceRemote, Remote: RemoteSource{Kind: RemoteVoidRepo}}
}

// NewLocalDirectorySource builds a Source::Local(Directory(path)).
func NewLocalDirectorySource(path string) Source {
	return Source{Kind: SourceLocal, Local: LocalSource{Kind: LocalDirectory, Path: path}}
}

// NewLocalFileSource builds a Source::Local(File(path)).
func NewLocalFileSource(path string) Source {
	return Source{Kind: SourceLocal, Local: LocalSource{Kind: LocalFile, Path: path}}
}

// HomeDirectory is Path{location, subdirs}; location defaults to
// /home/<username> and subdirs defaults empty (set by the converter).
type HomeDirectory struct {
	Location string
	Subdirs  []string
}

// DefaultHomeDirectory returns the converter's default for a username
// with no explicit homedir override.
func DefaultHomeDirectory(username string) HomeDirectory {
	return HomeDirectory{Location: fmt.Sprintf("/home/%s", username), Subdirs: []string{}}
}

// User describes one managed account.
type User struct {
	Username string
	Homedir  HomeDirectory
	Dotfiles *Source
	Packages map[string]Package
}

// Package describes one package a user or the system should have
// installed.
type Package struct {
	Config     *string
	Repository Source
}
