package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/raphi011/wtproj/internal/errs"
	"github.com/raphi011/wtproj/internal/log"
	"github.com/raphi011/wtproj/internal/registry"
	"github.com/raphi011/wtproj/internal/ui/prompt"
	"github.com/raphi011/wtproj/internal/ui/static"
	"github.com/raphi011/wtproj/internal/ui/styles"
	"github.com/raphi011/wtproj/internal/worktree"
)

// Remover removes a worktree without asking. *project.Manager implements it.
type Remover interface {
	Detach(ctx context.Context, wt worktree.Worktree) error
}

// Result counts the outcome of a sweep.
type Result struct {
	Removed int
	Skipped int
}

// Sweeper reports stale worktrees and removes the confirmed ones.
type Sweeper struct {
	Scanner *Scanner
	Remover Remover
	Confirm prompt.Confirmer
	Out     io.Writer
	Styles  styles.Styler
}

// Run scans p, prints the full report, then asks about each candidate.
// A failed removal is reported and counted as skipped. Aborting a prompt
// skips the remaining candidates and returns errs.ErrDeclined.
func (s *Sweeper) Run(ctx context.Context, p registry.Project) (Result, error) {
	var res Result

	candidates, err := s.Scanner.Scan(ctx, p)
	if err != nil {
		return res, err
	}
	if len(candidates) == 0 {
		fmt.Fprintf(s.Out, "No stale worktrees in %s\n", p.Name)
		return res, nil
	}

	s.report(p, candidates)

	for i, c := range candidates {
		ok, err := s.Confirm.Confirm(ctx, fmt.Sprintf("Remove %s (%s)?", c.Worktree, c.Detail))
		if errors.Is(err, errs.ErrDeclined) {
			res.Skipped += len(candidates) - i
			s.tally(res)
			return res, err
		}
		if err != nil {
			return res, err
		}
		if !ok {
			res.Skipped++
			continue
		}
		if err := s.Remover.Detach(ctx, c.Worktree); err != nil {
			log.FromContext(ctx).Warnf("failed to remove %s: %v", c.Worktree, err)
			res.Skipped++
			continue
		}
		res.Removed++
	}

	s.tally(res)
	return res, nil
}

func (s *Sweeper) report(p registry.Project, candidates []Candidate) {
	fmt.Fprintln(s.Out, s.Styles.Title(fmt.Sprintf("Stale worktrees in %s:", p.Name)))
	rows := make([][]string, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, []string{c.Worktree.Name, c.Branch, c.Reason.String(), c.Detail})
	}
	fmt.Fprint(s.Out, static.RenderTable([]string{"WORKTREE", "BRANCH", "REASON", "DETAIL"}, rows, s.Styles.Enabled()))
	fmt.Fprintln(s.Out)
}

func (s *Sweeper) tally(res Result) {
	fmt.Fprintf(s.Out, "%s, %s\n",
		s.Styles.Success(fmt.Sprintf("%d removed", res.Removed)),
		s.Styles.Muted(fmt.Sprintf("%d skipped", res.Skipped)))
}
