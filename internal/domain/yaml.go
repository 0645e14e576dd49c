package domain

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlSystem is the on-the-wire projection of System, grounded on the
// teacher's config.YAMLStrategy (internal/config/marshal_yaml.go): a
// plain, tag-annotated struct kept separate from the domain type so the
// domain type itself never carries yaml struct tags.
type yamlSystem struct {
	Services     map[string]yamlService    `yaml:"services,omitempty"`
	Repositories map[string]yamlRepository `yaml:"vp_repos,omitempty"`
	Users        map[string]yamlUser       `yaml:"users,omitempty"`
}

type yamlService struct {
	Enabled bool `yaml:"enabled"`
	Downed  bool `yaml:"downed"`
}

type yamlRepository struct {
	Location        string `yaml:"location"`
	Branch          string `yaml:"branch,omitempty"`
	AllowRestricted bool   `yaml:"allow_restricted"`
}

type yamlUser struct {
	Homedir  string              `yaml:"homedir"`
	Subdirs  []string            `yaml:"subdirs,omitempty"`
	Dotfiles string              `yaml:"dotfiles,omitempty"`
	Packages map[string]yamlPkg `yaml:"packages,omitempty"`
}

type yamlPkg struct {
	Config     string `yaml:"config,omitempty"`
	Repository string `yaml:"repository"`
}

// MarshalYAML implements yaml.Marshaler so a System can be written
// directly with yaml.Marshal, used (through DebugYAML) by the `vsl print`
// subcommand to render a converted domain value.
func (s System) MarshalYAML() (any, error) {
	out := yamlSystem{
		Services:     map[string]yamlService{},
		Repositories: map[string]yamlRepository{},
		Users:        map[string]yamlUser{},
	}
	for name, svc := range s.Services {
		out.Services[name] = yamlService{Enabled: svc.Enabled, Downed: svc.Downed}
	}
	for name, repo := range s.Repositories {
		ys := yamlRepository{Location: repo.Location.String(), AllowRestricted: repo.AllowRestricted}
		if repo.Location.Kind == SourceRemote && repo.Location.Remote.Branch != nil {
			ys.Branch = *repo.Location.Remote.Branch
		}
		out.Repositories[name] = ys
	}
	for name, u := range s.Users {
		yu := yamlUser{Homedir: u.Homedir.Location, Subdirs: u.Homedir.Subdirs, Packages: map[string]yamlPkg{}}
		if u.Dotfiles != nil {
			yu.Dotfiles = u.Dotfiles.String()
		}
		for pname, pkg := range u.Packages {
			yp := yamlPkg{Repository: pkg.Repository.String()}
			if pkg.Config != nil {
				yp.Config = *pkg.Config
			}
			yu.Packages[pname] = yp
		}
		out.Users[name] = yu
	}
	return out, nil
}

// DebugYAML renders s as a YAML document, for diagnostics and the `vsl
// print` subcommand.
func DebugYAML(s System) (string, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshal system as yaml: %w", err)
	}
	return string(data), nil
}
