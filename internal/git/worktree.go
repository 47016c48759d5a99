package git

import (
	"context"
	"fmt"
	"strings"
)

// WorktreeInfo describes one entry of `git worktree list`.
type WorktreeInfo struct {
	Path   string
	Branch string // "" when detached
	Head   string
	// Upstream is the fully qualified upstream ref configured for Branch
	// (e.g. "refs/remotes/origin/feat"), empty when none is configured.
	// The ref itself may no longer exist.
	Upstream string
	Bare     bool
}

// ListWorktrees returns all worktrees of the repository at repoPath,
// with each branch's configured upstream.
func (c *Client) ListWorktrees(ctx context.Context, repoPath string) ([]WorktreeInfo, error) {
	output, err := outputGit(ctx, repoPath, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("failed to list worktrees: %w", err)
	}
	worktrees := parseWorktreeList(string(output))

	upstreams, err := c.upstreams(ctx, repoPath)
	if err != nil {
		return nil, err
	}
	for i := range worktrees {
		worktrees[i].Upstream = upstreams[worktrees[i].Branch]
	}
	return worktrees, nil
}

// parseWorktreeList parses `git worktree list --porcelain` output.
func parseWorktreeList(output string) []WorktreeInfo {
	var worktrees []WorktreeInfo
	var current WorktreeInfo

	for _, line := range strings.Split(output, "\n") {
		switch {
		case strings.HasPrefix(line, "worktree "):
			// Start of new worktree entry
			if current.Path != "" {
				worktrees = append(worktrees, current)
			}
			current = WorktreeInfo{Path: strings.TrimPrefix(line, "worktree ")}
		case strings.HasPrefix(line, "HEAD "):
			current.Head = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch refs/heads/"):
			current.Branch = strings.TrimPrefix(line, "branch refs/heads/")
		case line == "bare":
			current.Bare = true
		}
	}

	// Don't forget the last entry
	if current.Path != "" {
		worktrees = append(worktrees, current)
	}
	return worktrees
}

// upstreams maps every local branch to its configured upstream ref.
func (c *Client) upstreams(ctx context.Context, repoPath string) (map[string]string, error) {
	output, err := outputGit(ctx, repoPath, "for-each-ref", "--format=%(refname:lstrip=2) %(upstream)", "refs/heads")
	if err != nil {
		return nil, fmt.Errorf("failed to read branch upstreams: %w", err)
	}
	return parseUpstreams(string(output)), nil
}

func parseUpstreams(output string) map[string]string {
	upstreams := make(map[string]string)
	for _, line := range strings.Split(output, "\n") {
		branch, upstream, _ := strings.Cut(strings.TrimSpace(line), " ")
		if branch == "" || upstream == "" {
			continue
		}
		upstreams[branch] = upstream
	}
	return upstreams
}

// AddOptions controls how AddWorktree checks out the branch.
type AddOptions struct {
	Branch string
	// CreateNew creates Branch (-b) from StartPoint instead of checking out
	// an existing local branch.
	CreateNew  bool
	StartPoint string
	// Track sets StartPoint as Branch's upstream (--track).
	Track bool
}

// AddWorktree creates a linked worktree at path from the repository at repoPath.
func (c *Client) AddWorktree(ctx context.Context, repoPath, path string, opts AddOptions) error {
	args := []string{"worktree", "add"}
	switch {
	case opts.CreateNew && opts.Track:
		args = append(args, "--track", "-b", opts.Branch, path, opts.StartPoint)
	case opts.CreateNew:
		args = append(args, "--no-track", "-b", opts.Branch, path)
		if opts.StartPoint != "" {
			args = append(args, opts.StartPoint)
		}
	default:
		args = append(args, path, opts.Branch)
	}

	if err := runGit(ctx, repoPath, args...); err != nil {
		return fmt.Errorf("git worktree add: %w", err)
	}
	return nil
}

// RemoveWorktree detaches the worktree at path from the repository.
func (c *Client) RemoveWorktree(ctx context.Context, repoPath, path string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)

	if err := runGit(ctx, repoPath, args...); err != nil {
		return fmt.Errorf("git worktree remove: %w", err)
	}
	return nil
}
