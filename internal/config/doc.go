// Package config handles loading and validation of wt configuration.
//
// Configuration is read from ~/.config/wt/config.toml, or from the file
// named by WT_CONFIG. A missing file is not an error; every key has a
// default.
//
// # Configuration Sources (highest priority first)
//
//   - WT_PROJECTS_FILE env var: registry file
//   - WT_HOOKS_DIR env var: hook script directory
//   - Config file settings
//   - Default values
//
// # Keys
//
//	projects_file  = "~/.wt/projects"  # project registry
//	hooks_dir      = "~/.wt/hooks"     # <project>.sh / <project>.go hook scripts
//	remote         = "origin"          # remote used for fetch, base branches, tracking
//	hook_shell     = "bash"            # shell that sources <project>.sh
//	default_format = "text"            # text, json, or yaml for projects/list
//	log_file       = ""                # JSON debug log (rotated), disabled when empty
//
//	[log]
//	max_size_mb = 5
//	max_backups = 3
//	max_age_days = 14
//
// Paths must be absolute or start with ~. Unknown keys are rejected so
// that typos do not silently fall back to defaults.
package config
