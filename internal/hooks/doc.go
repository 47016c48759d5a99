// Package hooks runs per-project lifecycle hooks.
//
// A project's hooks live next to each other in the hooks directory
// (default ~/.wt/hooks), named after the project:
//
//	<hooks_dir>/<project>.sh   shell functions create_hook, remove_hook, ...
//	<hooks_dir>/<project>.go   Go funcs CreateHook, RemoveHook, ... (package main)
//
// Either file may define any subset of the hook kinds. A missing hook is a
// no-op. The shell script is sourced by the configured shell and the function
// is called with the worktree's src directory as working directory. The Go
// script is interpreted in-process with yaegi; the process changes into the
// src directory for the duration of the call.
//
// Example shell hooks:
//
//	create_hook() {
//	    npm ci
//	}
//
//	remove_hook() {
//	    docker compose down
//	}
//
// Hook failures never abort the command that triggered them; the
// [Dispatcher] reports them as warnings.
package hooks
