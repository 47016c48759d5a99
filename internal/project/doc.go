// Package project implements the worktree lifecycle of a registered project.
//
// A [Manager] is bound to one resolved project and performs create, remove,
// rebase, setup, update and delete. [Init] creates and registers a new
// project. Version control, hooks and confirmation prompts are injected as
// interfaces so the state machine can be exercised without git or a terminal.
//
// # Branch Resolution
//
// [Manager.Create] picks the branch for a new worktree in strict order:
//
//  1. a local branch with the worktree's name is checked out as is
//  2. a remote branch <remote>/<name> gets a new local branch tracking it
//  3. otherwise a new untracked branch starts at the base branch, which is
//     the local base if present, else <remote>/<base>
//
// The base defaults to the main branch: the remote's HEAD, else a local
// main or master.
//
// # Failure Handling
//
// Fetches are best effort and only warn. A failed `git worktree add` removes
// the directory it was given. A failed `git worktree remove` is retried once
// with --force. Hook failures never fail the operation.
package project
