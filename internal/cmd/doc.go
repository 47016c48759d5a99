// Package cmd provides helpers for executing shell commands with proper error handling.
//
// The helpers wrap [os/exec.Cmd] to capture stderr and include it in error
// messages, making command failures more informative for users. Every
// invocation is echoed through the context logger when verbose mode is on.
//
// # Usage
//
//	if err := cmd.RunContext(ctx, repoDir, "git", "status"); err != nil {
//	    // err contains stderr output if available
//	    return fmt.Errorf("git failed: %w", err)
//	}
//
//	out, err := cmd.OutputContext(ctx, repoDir, "git", "branch")
//
// Long-running commands whose progress the user should see (clone, rebase)
// use [RunPassthrough].
//
// # Design Notes
//
// wt shells out to the git CLI rather than using Go git libraries. This keeps
// user configuration (SSH keys, credential helpers, aliases) working as-is.
package cmd
