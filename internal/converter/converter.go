// Package converter lowers a fully-evaluated configuration Map into the
// domain.System value (SPEC_FULL.md §4.5), grounded on the teacher's
// section-by-section decode style (internal/config/loader.go's
// loadXFromEnv family) and internal/manifest/validate.go's named-field
// validation errors.
package converter

import (
	"context"
	"strings"

	"github.com/yaklabco/vsl/internal/domain"
	"github.com/yaklabco/vsl/internal/evaluator"
	"github.com/yaklabco/vsl/internal/langerr"
	"github.com/yaklabco/vsl/internal/langvalue"
)

// Convert consumes configMap (the evaluated value of system.config) and
// produces a System. env resolves any Symbol/ref/thunk a field still
// holds (the converter is one of the forms allowed to force a FnResult,
// per §4.3's lazy-evaluation contract). logger may be nil.
func Convert(configMap langvalue.Expr, env *evaluator.Environment, logger domain.Logger) (domain.System, error) {
	if configMap.Kind != langvalue.KMap {
		return domain.System{}, langerr.ConvertError{Field: "system.config", Message: "must be a map"}
	}
	system := domain.NewSystem()

	if v, ok := configMap.MapGet(langvalue.Sym("services")); ok {
		svcs, err := convertServices(v, env)
		if err != nil {
			return domain.System{}, err
		}
		system.Services = svcs
		logDebug(logger, "converted services", "count", len(svcs))
	}

	if v, ok := configMap.MapGet(langvalue.Sym("vp_repos")); ok {
		repos, err := convertRepositories(v, env)
		if err != nil {
			return domain.System{}, err
		}
		system.Repositories = repos
		logDebug(logger, "converted repositories", "count", len(repos))
	}

	if v, ok := configMap.MapGet(langvalue.Sym("users")); ok {
		users, err := convertUsers(v, env)
		if err != nil {
			return domain.System{}, err
		}
		system.Users = users
		logDebug(logger, "converted users", "count", len(users))
	}

	return system, nil
}

func logDebug(logger domain.Logger, msg string, fields ...any) {
	if logger != nil {
		logger.Debug(context.Background(), msg, fields...)
	}
}

func resolve(e langvalue.Expr, env *evaluator.Environment) (langvalue.Expr, error) {
	v, err := evaluator.Resolve(e, env)
	if err != nil {
		return langvalue.Expr{}, err
	}
	return v, nil
}

// convertServices handles `services` → list of maps {name, enabled?,
// downed?} → mapping name → Service.
func convertServices(v langvalue.Expr, env *evaluator.Environment) (map[string]domain.Service, error) {
	list, err := resolve(v, env)
	if err != nil {
		return nil, err
	}
	if list.Kind != langvalue.KList {
		return nil, langerr.ConvertError{Field: "services", Message: "must be a list"}
	}
	out := map[string]domain.Service{}
	for _, item := range list.Items {
		m, err := resolve(item, env)
		if err != nil {
			return nil, err
		}
		if m.Kind != langvalue.KMap {
			return nil, langerr.ConvertError{Field: "services", Message: "entry is not a map"}
		}
		nameExpr, ok := m.MapGet(langvalue.Sym("name"))
		if !ok {
			return nil, langerr.ConvertError{Field: "services", Message: "entry is missing 'name'"}
		}
		name, err := resolveString("services[].name", nameExpr, env)
		if err != nil {
			return nil, err
		}
		svc := domain.Service{Name: name, Enabled: true, Downed: false}
		if enabledExpr, ok := m.MapGet(langvalue.Sym("enabled")); ok {
			b, err := resolve(enabledExpr, env)
			if err != nil {
				return nil, err
			}
			if b.Kind != langvalue.KBoolean {
				return nil, langerr.ConvertError{Field: "services[].enabled", Message: "must be a boolean"}
			}
			svc.Enabled = b.Bool()
		}
		if downedExpr, ok := m.MapGet(langvalue.Sym("downed")); ok {
			b, err := resolve(downedExpr, env)
			if err != nil {
				return nil, err
			}
			if b.Kind != langvalue.KBoolean {
				return nil, langerr.ConvertError{Field: "services[].downed", Message: "must be a boolean"}
			}
			svc.Downed = b.Bool()
		}
		out[name] = svc
	}
	return out, nil
}

// convertRepositories handles `vp_repos` → map of name → { location,
// branch?, allow_restricted? } → mapping name → PackageRepository.
func convertRepositories(v langvalue.Expr, env *evaluator.Environment) (map[string]domain.PackageRepository, error) {
	m, err := resolve(v, env)
	if err != nil {
		return nil, err
	}
	if m.Kind != langvalue.KMap {
		return nil, langerr.ConvertError{Field: "vp_repos", Message: "must be a map"}
	}
	out := map[string]domain.PackageRepository{}
	for i, keyExpr := range m.MapKeys {
		name := keyExpr.Str
		entry, err := resolve(m.MapVals[i], env)
		if err != nil {
			return nil, err
		}
		if entry.Kind != langvalue.KMap {
			return nil, langerr.ConvertError{Field: "vp_repos." + name, Message: "must be a map"}
		}
		locExpr, ok := entry.MapGet(langvalue.Sym("location"))
		if !ok {
			return nil, langerr.ConvertError{Field: "vp_repos." + name + ".location", Message: "is required"}
		}
		loc, err := resolve(locExpr, env)
		if err != nil {
			return nil, err
		}

		var branchOverride *string
		if branchExpr, ok := entry.MapGet(langvalue.Sym("branch")); ok {
			branch, err := resolveString("vp_repos."+name+".branch", branchExpr, env)
			if err != nil {
				return nil, err
			}
			branchOverride = &branch
		}

		source, err := coerceSource("vp_repos."+name+".location", loc, branchOverride)
		if err != nil {
			return nil, err
		}

		repo := domain.PackageRepository{Name: name, Location: source}
		if arExpr, ok := entry.MapGet(langvalue.Sym("allow_restricted")); ok {
			b, err := resolve(arExpr, env)
			if err != nil {
				return nil, err
			}
			if b.Kind != langvalue.KBoolean {
				return nil, langerr.ConvertError{Field: "vp_repos." + name + ".allow_restricted", Message: "must be a boolean"}
			}
			repo.AllowRestricted = b.Bool()
		}
		out[name] = repo
	}
	return out, nil
}

// convertUsers handles `users` → map of username → user-map → mapping
// username → User.
func convertUsers(v langvalue.Expr, env *evaluator.Environment) (map[string]domain.User, error) {
	m, err := resolve(v, env)
	if err != nil {
		return nil, err
	}
	if m.Kind != langvalue.KMap {
		return nil, langerr.ConvertError{Field: "users", Message: "must be a map"}
	}
	out := map[string]domain.User{}
	for i, keyExpr := range m.MapKeys {
		username := keyExpr.Str
		userMap, err := resolve(m.MapVals[i], env)
		if err != nil {
			return nil, err
		}
		if userMap.Kind != langvalue.KMap {
			return nil, langerr.ConvertError{Field: "users." + username, Message: "must be a map"}
		}

		user := domain.User{
			Username: username,
			Homedir:  domain.DefaultHomeDirectory(username),
			Packages: map[string]domain.Package{},
		}

		if hdExpr, ok := userMap.MapGet(langvalue.Sym("homedir")); ok {
			hd, err := resolve(hdExpr, env)
			if err != nil {
				return nil, err
			}
			if hd.Kind != langvalue.KMap {
				return nil, langerr.ConvertError{Field: "users." + username + ".homedir", Message: "must be a map"}
			}
			if locExpr, ok := hd.MapGet(langvalue.Sym("location")); ok {
				loc, err := resolveString("users."+username+".homedir.location", locExpr, env)
				if err != nil {
					return nil, err
				}
				user.Homedir.Location = loc
			}
			if subsExpr, ok := hd.MapGet(langvalue.Sym("subdirs")); ok {
				subs, err := resolve(subsExpr, env)
				if err != nil {
					return nil, err
				}
				if subs.Kind != langvalue.KList {
					return nil, langerr.ConvertError{Field: "users." + username + ".homedir.subdirs", Message: "must be a list"}
				}
				dirs := make([]string, len(subs.Items))
				for j, item := range subs.Items {
					s, err := resolveString("users."+username+".homedir.subdirs[]", item, env)
					if err != nil {
						return nil, err
					}
					dirs[j] = s
				}
				user.Homedir.Subdirs = dirs
			}
		}

		if dfExpr, ok := userMap.MapGet(langvalue.Sym("dotfiles")); ok {
			df, err := resolve(dfExpr, env)
			if err != nil {
				return nil, err
			}
			source, err := coerceSource("users."+username+".dotfiles", df, nil)
			if err != nil {
				return nil, err
			}
			user.Dotfiles = &source
		}

		if pkgsExpr, ok := userMap.MapGet(langvalue.Sym("packages")); ok {
			pkgs, err := resolve(pkgsExpr, env)
			if err != nil {
				return nil, err
			}
			if pkgs.Kind != langvalue.KList {
				return nil, langerr.ConvertError{Field: "users." + username + ".packages", Message: "must be a list"}
			}
			for _, item := range pkgs.Items {
				// Package list entries are plain names, not variable
				// references: a bare Symbol is read directly rather than
				// resolved against env (§4.5).
				if item.Kind != langvalue.KSymbol {
					return nil, langerr.ConvertError{Field: "users." + username + ".packages[]", Message: "entries must be plain names"}
				}
				user.Packages[item.Str] = domain.Package{Repository: domain.NewVoidRepoSource()}
			}
		}

		out[username] = user
	}
	return out, nil
}

// coerceSource lifts a resolved location/dotfiles value into a Source: a
// GitHubRemote becomes Source::Remote(GithubRemote{..}) (branchOverride,
// if non-nil, wins over the remote's own branch); a String is lifted by
// shape alone — trailing '/' is a Directory, anything else a File — since
// the converter performs no filesystem I/O (SPEC_FULL.md's Domain Model
// Additions).
func coerceSource(field string, v langvalue.Expr, branchOverride *string) (domain.Source, error) {
	switch v.Kind {
	case langvalue.KGitHubRemote:
		branch := v.Branch
		if branchOverride != nil {
			branch = branchOverride
		}
		return domain.NewGithubRemoteSource(v.User, v.Repo, branch), nil
	case langvalue.KString, langvalue.KPath:
		if strings.HasSuffix(v.Str, "/") {
			return domain.NewLocalDirectorySource(v.Str), nil
		}
		return domain.NewLocalFileSource(v.Str), nil
	default:
		return domain.Source{}, langerr.ConvertError{Field: field, Message: "must be a GitHubRemote or a string path"}
	}
}

func resolveString(field string, v langvalue.Expr, env *evaluator.Environment) (string, error) {
	r, err := resolve(v, env)
	if err != nil {
		return "", err
	}
	if r.Kind != langvalue.KString && r.Kind != langvalue.KSymbol && r.Kind != langvalue.KPath {
		return "", langerr.ConvertError{Field: field, Message: "must be a string"}
	}
	return r.Str, nil
}
