// Package sweep finds abandoned worktrees and removes them interactively.
//
// A worktree other than main is stale for exactly one of two reasons:
//
//   - RemoteDeleted: its branch has an upstream configured but the upstream
//     ref is gone after `git fetch --prune`, which is what a merged and
//     deleted pull request branch looks like.
//   - InactiveLocal: its branch has no upstream and nothing under the
//     worktree directory was modified for more than [StaleAfter].
//
// [Sweeper.Run] prints every candidate before asking about any of them,
// then prompts once per candidate (default: skip).
package sweep
