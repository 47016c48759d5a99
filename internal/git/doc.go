// Package git provides git operations via shell commands.
//
// All operations call the git CLI through [github.com/raphi011/wtproj/internal/cmd]
// rather than using Go git libraries. This keeps user configuration (SSH keys,
// credential helpers, aliases) working and makes verbose mode show exactly
// which commands ran.
//
// [Client] is the version-control adapter used by the worktree manager and
// the sweep scanner:
//
//   - [Client.ListWorktrees]: worktrees of a repository with branch upstreams
//   - [Client.RefExists], [Client.VerifyRef]: local/remote ref checks
//   - [Client.DefaultBranch]: the remote's symbolic HEAD
//   - [Client.AddWorktree], [Client.RemoveWorktree]: linked worktree lifecycle
//   - [Client.Fetch], [Client.Rebase], [Client.Clone], [Client.PullFastForward]
//
// A rebase that stops on conflicts is left in progress and reported as
// errs.ErrRebaseConflict.
package git
