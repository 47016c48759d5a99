package sweep

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/raphi011/wtproj/internal/git"
	"github.com/raphi011/wtproj/internal/log"
	"github.com/raphi011/wtproj/internal/registry"
	"github.com/raphi011/wtproj/internal/resolve"
	"github.com/raphi011/wtproj/internal/worktree"
)

// VCS is the version-control capability set the scanner needs.
type VCS interface {
	Fetch(ctx context.Context, dir, remote string, prune bool) error
	ListWorktrees(ctx context.Context, repoPath string) ([]git.WorktreeInfo, error)
	VerifyRef(ctx context.Context, dir, ref string) bool
}

// Candidate is a stale worktree.
type Candidate struct {
	Worktree worktree.Worktree
	Branch   string
	Reason   Reason
	Detail   string
}

// Progress receives scan activity. *progress.Spinner implements it.
type Progress interface {
	UpdateMessage(msg string)
	Stop()
}

// Scanner classifies the worktrees of a project.
type Scanner struct {
	VCS    VCS
	Remote string
	// Now returns the current time; time.Now when nil.
	Now func() time.Time
	// Progress is optional. Scan stops it before returning.
	Progress Progress
}

func (s *Scanner) report(msg string) {
	if s.Progress != nil {
		s.Progress.UpdateMessage(msg)
	}
}

func (s *Scanner) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Scan prunes remote-tracking refs once, then classifies every worktree
// except main. Directories git does not list as worktrees are skipped.
func (s *Scanner) Scan(ctx context.Context, p registry.Project) ([]Candidate, error) {
	l := log.FromContext(ctx)
	mainSrc := worktree.For(p, worktree.Main).Src
	if s.Progress != nil {
		defer s.Progress.Stop()
	}

	remote := s.Remote
	if remote == "" {
		remote = "origin"
	}
	s.report("Fetching " + remote)
	if err := s.VCS.Fetch(ctx, mainSrc, remote, true); err != nil {
		l.Warnf("fetch failed, upstream state may be outdated: %v", err)
	}

	listed, err := s.VCS.ListWorktrees(ctx, mainSrc)
	if err != nil {
		return nil, err
	}
	byPath := make(map[string]git.WorktreeInfo, len(listed))
	for _, info := range listed {
		byPath[resolve.Canonical(info.Path)] = info
	}

	found, err := worktree.Scan(p)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var candidates []Candidate
	for _, wt := range found {
		if wt.IsMain() {
			continue
		}
		info, ok := byPath[resolve.Canonical(wt.Src)]
		if !ok {
			l.Debug("skipping unregistered worktree", "worktree", wt.String())
			continue
		}

		s.report("Checking " + wt.Name)
		status := Status{Name: wt.Name, Branch: info.Branch, Upstream: info.Upstream}
		if status.Upstream != "" {
			status.UpstreamExists = s.VCS.VerifyRef(ctx, mainSrc, status.Upstream)
		} else {
			status.Age = now.Sub(NewestModTime(wt.Dir))
		}

		reason, stale := Classify(status)
		l.Debug("classified", "worktree", wt.String(), "stale", stale, "upstream", status.Upstream, "age", status.Age)
		if !stale {
			continue
		}
		candidates = append(candidates, Candidate{
			Worktree: wt,
			Branch:   info.Branch,
			Reason:   reason,
			Detail:   Detail(reason, status),
		})
	}
	return candidates, nil
}

// NewestModTime returns the most recent modification time of dir or
// anything below it. Unreadable entries are ignored.
func NewestModTime(dir string) time.Time {
	var newest time.Time
	_ = filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
		return nil
	})
	return newest
}
