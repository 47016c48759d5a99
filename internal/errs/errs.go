// Package errs classifies wt failures into kinds that map to process exit codes.
//
// Every command error is either a sentinel from this package, a wrapped
// sentinel, or an *Error carrying an explicit Kind. [ExitCode] resolves any of
// them to the exit code contract:
//
//	1  generic failure (precondition, external tool, conflict)
//	2  usage error (wrong argument count or shape)
//	3  current directory is not inside a registered project
//	4  user declined a confirmation prompt
package errs

import (
	"errors"
	"fmt"
)

// Kind categorizes a failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindUsage
	KindResolution
	KindPrecondition
	KindExternal
	KindDeclined
)

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage error"
	case KindResolution:
		return "not in a project"
	case KindPrecondition:
		return "precondition failed"
	case KindExternal:
		return "external tool failed"
	case KindDeclined:
		return "declined"
	default:
		return "error"
	}
}

// ExitCode returns the process exit code for the kind.
func (k Kind) ExitCode() int {
	switch k {
	case KindUsage:
		return 2
	case KindResolution:
		return 3
	case KindDeclined:
		return 4
	default:
		return 1
	}
}

// Error attaches a Kind to an underlying error.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E wraps err with kind. A nil err yields nil.
func E(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// Usage builds a usage error from a format string.
func Usage(format string, args ...any) error {
	return &Error{Kind: KindUsage, Err: fmt.Errorf(format, args...)}
}

// Sentinel errors. Each one is classified by kindOf.
var (
	ErrNotInProject = errors.New("not in a project (run 'wt projects' to list registered projects)")
	ErrDeclined     = errors.New("cancelled")

	ErrAlreadyExists      = errors.New("worktree already exists")
	ErrProjectExists      = errors.New("project already exists")
	ErrCannotCreateMain   = errors.New("the main worktree is created by 'wt init'")
	ErrCannotRemoveMain   = errors.New("cannot remove the main worktree")
	ErrCannotRebaseMain   = errors.New("cannot rebase the main worktree")
	ErrInvalidWorktree    = errors.New("invalid worktree")
	ErrNoMainBranch       = errors.New("could not determine main branch (no remote HEAD, no local main or master)")
	ErrBaseBranchNotFound = errors.New("base branch not found locally or on the remote")
	ErrDetachedMain       = errors.New("main worktree has no branch checked out")

	ErrWorktreeCreateFailed = errors.New("failed to create worktree")
	ErrWorktreeDetachFailed = errors.New("failed to detach worktree")
	ErrCloneFailed          = errors.New("failed to clone repository")
	ErrRebaseConflict       = errors.New("rebase stopped due to conflicts")
)

var sentinelKinds = []struct {
	err  error
	kind Kind
}{
	{ErrNotInProject, KindResolution},
	{ErrDeclined, KindDeclined},
	{ErrAlreadyExists, KindPrecondition},
	{ErrProjectExists, KindPrecondition},
	{ErrCannotCreateMain, KindPrecondition},
	{ErrCannotRemoveMain, KindPrecondition},
	{ErrCannotRebaseMain, KindPrecondition},
	{ErrInvalidWorktree, KindPrecondition},
	{ErrNoMainBranch, KindPrecondition},
	{ErrBaseBranchNotFound, KindPrecondition},
	{ErrDetachedMain, KindPrecondition},
	{ErrWorktreeCreateFailed, KindExternal},
	{ErrWorktreeDetachFailed, KindExternal},
	{ErrCloneFailed, KindExternal},
	{ErrRebaseConflict, KindExternal},
}

// KindOf reports the kind of err. An explicit *Error wins over sentinels.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	for _, s := range sentinelKinds {
		if errors.Is(err, s.err) {
			return s.kind
		}
	}
	return KindUnknown
}

// Is reports whether err is of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// ExitCode maps err to the process exit code. Nil maps to 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return KindOf(err).ExitCode()
}
