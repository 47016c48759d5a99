package git

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphi011/wtproj/internal/errs"
)

// Client runs git commands on behalf of the worktree manager.
// Stdout and Stderr receive the output of long-running commands
// (clone, rebase, pull); nil means os.Stderr.
type Client struct {
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a client streaming command output to stderr.
func New() *Client {
	return &Client{}
}

// RefKind selects the namespace RefExists looks in.
type RefKind int

const (
	// RefLocal resolves name under refs/heads/.
	RefLocal RefKind = iota
	// RefRemote resolves name (e.g. "origin/feat") under refs/remotes/.
	RefRemote
)

// VerifyRef reports whether the fully qualified ref exists in the repo at dir.
func (c *Client) VerifyRef(ctx context.Context, dir, ref string) bool {
	return runGit(ctx, dir, "rev-parse", "--verify", "--quiet", ref) == nil
}

// RefExists reports whether a local branch or remote-tracking ref exists.
func (c *Client) RefExists(ctx context.Context, dir string, kind RefKind, name string) bool {
	switch kind {
	case RefRemote:
		return c.VerifyRef(ctx, dir, "refs/remotes/"+name)
	default:
		return c.VerifyRef(ctx, dir, "refs/heads/"+name)
	}
}

// DefaultBranch returns the branch the remote's HEAD points to
// (refs/remotes/<remote>/HEAD). ok is false when the symbolic ref is not set.
func (c *Client) DefaultBranch(ctx context.Context, dir, remote string) (string, bool) {
	output, err := outputGit(ctx, dir, "symbolic-ref", "--quiet", "refs/remotes/"+remote+"/HEAD")
	if err != nil {
		return "", false
	}
	// Output is like "refs/remotes/origin/main"
	ref := strings.TrimSpace(string(output))
	branch := strings.TrimPrefix(ref, "refs/remotes/"+remote+"/")
	if branch == "" || branch == ref {
		return "", false
	}
	return branch, true
}

// Fetch fetches from remote, optionally pruning deleted remote branches.
func (c *Client) Fetch(ctx context.Context, dir, remote string, prune bool) error {
	args := []string{"fetch", "--quiet"}
	if prune {
		args = append(args, "--prune")
	}
	args = append(args, remote)
	if err := runGit(ctx, dir, args...); err != nil {
		return fmt.Errorf("fetch %s: %w", remote, err)
	}
	return nil
}

// Clone clones url into dest.
func (c *Client) Clone(ctx context.Context, url, dest string) error {
	if err := c.streamGit(ctx, "", "clone", url, dest); err != nil {
		return fmt.Errorf("clone %s: %w", url, err)
	}
	return nil
}

// PullFastForward fast-forwards the checked-out branch in dir.
func (c *Client) PullFastForward(ctx context.Context, dir string) error {
	if err := c.streamGit(ctx, dir, "pull", "--ff-only"); err != nil {
		return fmt.Errorf("pull: %w", err)
	}
	return nil
}

// Rebase rebases the branch checked out in dir onto ref. When git stops
// with conflicts the rebase is left in progress and the returned error wraps
// errs.ErrRebaseConflict.
func (c *Client) Rebase(ctx context.Context, dir, onto string) error {
	err := c.streamGit(ctx, dir, "rebase", onto)
	if err == nil {
		return nil
	}
	if c.RebaseInProgress(ctx, dir) {
		return fmt.Errorf("rebase onto %s: %w", onto, errs.ErrRebaseConflict)
	}
	return fmt.Errorf("rebase onto %s: %w", onto, err)
}

// RebaseInProgress reports whether the worktree at dir has a stopped rebase.
func (c *Client) RebaseInProgress(ctx context.Context, dir string) bool {
	for _, name := range []string{"rebase-merge", "rebase-apply"} {
		output, err := outputGit(ctx, dir, "rev-parse", "--git-path", name)
		if err != nil {
			continue
		}
		path := strings.TrimSpace(string(output))
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		if _, err := os.Stat(path); err == nil {
			return true
		}
	}
	return false
}

// CurrentBranch returns the branch checked out in dir, or "" on a detached HEAD.
func (c *Client) CurrentBranch(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to get branch: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}
