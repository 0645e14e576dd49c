package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ActionKind identifies the kind of scheduled side effect. Its shape
// (one constant per kind, a String() switch) is adapted from the
// teacher's OperationKind enum (internal/domain/operation.go); the kinds
// themselves are the union of the original implementation's two action
// enums (original_source/src/actions.rs:8-35) — Go has no sum-of-structs
// variant grouping, so FileSystemAction's six file-level kinds and
// SystemAction's five system-level kinds are flattened into one
// ActionKind rather than kept as a nested File/System split.
type ActionKind int

const (
	// File-level kinds, from FileSystemAction (actions.rs:37-70).
	ActionMoveFile ActionKind = iota
	ActionCopyFile
	ActionRenameFile
	ActionAddToFile
	ActionRemoveFile
	ActionCreateFile

	// System-level kinds, from SystemAction (actions.rs:13-35).
	ActionAddPackage
	ActionRemovePackage
	ActionAddRepository
	ActionRemoveRepository
	ActionConfigurePackage
)

// String returns the ActionKind's name.
func (k ActionKind) String() string {
	switch k {
	case ActionMoveFile:
		return "MoveFile"
	case ActionCopyFile:
		return "CopyFile"
	case ActionRenameFile:
		return "RenameFile"
	case ActionAddToFile:
		return "AddToFile"
	case ActionRemoveFile:
		return "RemoveFile"
	case ActionCreateFile:
		return "CreateFile"
	case ActionAddPackage:
		return "AddPackage"
	case ActionRemovePackage:
		return "RemovePackage"
	case ActionAddRepository:
		return "AddRepository"
	case ActionRemoveRepository:
		return "RemoveRepository"
	case ActionConfigurePackage:
		return "ConfigurePackage"
	default:
		return "Unknown"
	}
}

// ActionID uniquely identifies a scheduled Action, minted with
// uuid.NewString() rather than the teacher's caller-supplied OperationID
// since no caller exists yet that would assign one deterministically.
type ActionID string

// NewActionID mints a fresh, random ActionID.
func NewActionID() ActionID {
	return ActionID(uuid.NewString())
}

// Action is a scheduled side effect: pure data describing what a
// system-mutation engine would eventually do. Unlike the teacher's
// Operation, Action deliberately has no Execute/Rollback — applying it to
// a real host is out of scope for this module (SPEC_FULL.md §1); no
// built-in currently constructs one (each of the corresponding names in
// internal/builtins is reserved and returns UnimplementedError), but the
// shape exists so the Expr.KAction variant and a future builtin have
// somewhere to land.
type Action struct {
	ID   ActionID
	Kind ActionKind

	// Source/Target cover MoveFile, CopyFile, RenameFile (both set),
	// AddToFile/CreateFile (Target + Content), RemoveFile (Target only).
	Source  string
	Target  string
	Content string

	// PackageName covers AddPackage, RemovePackage, and ConfigurePackage
	// (actions.rs:14-17, 19-21, 31-34's package_name field).
	PackageName string

	// Repository covers AddPackage (package_repository), AddRepository,
	// and RemoveRepository (actions.rs:14-17, 22-28's package_repository
	// field) — nil when Kind doesn't carry one.
	Repository *PackageRepository

	// ConfigActions covers ConfigurePackage's configuration_actions field
	// (actions.rs:31-34): a nested batch of Actions scoped to configuring
	// one already-installed package.
	ConfigActions []Action
}

// String returns a debug representation in the teacher's
// Operation.String() style.
func (a Action) String() string {
	switch a.Kind {
	case ActionMoveFile, ActionCopyFile, ActionRenameFile:
		return fmt.Sprintf("%s(%s -> %s)", a.Kind, a.Source, a.Target)
	case ActionAddToFile, ActionCreateFile:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Target)
	case ActionRemoveFile:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Target)
	case ActionAddPackage:
		if a.Repository != nil {
			return fmt.Sprintf("%s(%s from %s)", a.Kind, a.PackageName, a.Repository.Name)
		}
		return fmt.Sprintf("%s(%s)", a.Kind, a.PackageName)
	case ActionRemovePackage:
		return fmt.Sprintf("%s(%s)", a.Kind, a.PackageName)
	case ActionAddRepository, ActionRemoveRepository:
		if a.Repository != nil {
			return fmt.Sprintf("%s(%s)", a.Kind, a.Repository.Name)
		}
		return a.Kind.String()
	case ActionConfigurePackage:
		return fmt.Sprintf("%s(%s, %d actions)", a.Kind, a.PackageName, len(a.ConfigActions))
	default:
		return a.Kind.String()
	}
}

// Equals reports whether two Actions describe the same effect, ignoring
// ID (two independently-scheduled MoveFiles of the same paths are equal
// effects even though they carry different identities).
func (a Action) Equals(other Action) bool {
	if a.Kind != other.Kind ||
		a.Source != other.Source ||
		a.Target != other.Target ||
		a.Content != other.Content ||
		a.PackageName != other.PackageName {
		return false
	}

	if (a.Repository == nil) != (other.Repository == nil) {
		return false
	}
	if a.Repository != nil && !repositoriesEqual(*a.Repository, *other.Repository) {
		return false
	}

	if len(a.ConfigActions) != len(other.ConfigActions) {
		return false
	}
	for i := range a.ConfigActions {
		if !a.ConfigActions[i].Equals(other.ConfigActions[i]) {
			return false
		}
	}
	return true
}

// repositoriesEqual compares two PackageRepository values by rendered
// content rather than Go's built-in ==, since Source's RemoteSource.Branch
// is a *string: two repositories naming the same branch by value would
// otherwise compare unequal whenever they were constructed independently.
func repositoriesEqual(a, b PackageRepository) bool {
	return a.Name == b.Name &&
		a.AllowRestricted == b.AllowRestricted &&
		a.Location.String() == b.Location.String()
}
