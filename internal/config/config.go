package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/raphi011/wtproj/internal/registry"
	"github.com/raphi011/wtproj/internal/storage"
)

// LogConfig controls rotation of the JSON log file.
type LogConfig struct {
	MaxSizeMB  int `toml:"max_size_mb"`
	MaxBackups int `toml:"max_backups"`
	MaxAgeDays int `toml:"max_age_days"`
}

// Config holds the wt configuration
type Config struct {
	ProjectsFile  string    `toml:"projects_file"`
	HooksDir      string    `toml:"hooks_dir"`
	Remote        string    `toml:"remote"`
	HookShell     string    `toml:"hook_shell"`
	DefaultFormat string    `toml:"default_format"`
	LogFile       string    `toml:"log_file"`
	Log           LogConfig `toml:"log"`
}

// defaults returns the default settings. State paths live below
// storage.WtDir; they stay in ~ form when the home directory is unknown.
func defaults() Config {
	cfg := Config{
		ProjectsFile:  "~/.wt/projects",
		HooksDir:      "~/.wt/hooks",
		Remote:        "origin",
		HookShell:     "bash",
		DefaultFormat: "text",
		Log: LogConfig{
			MaxSizeMB:  5,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
	}
	if path, err := registry.DefaultPath(); err == nil {
		cfg.ProjectsFile = path
	}
	if dir, err := storage.WtDir(); err == nil {
		cfg.HooksDir = filepath.Join(dir, "hooks")
	}
	return cfg
}

// Default returns the default configuration with ~ already expanded
// where the home directory is known.
func Default() Config {
	cfg := defaults()
	_ = cfg.expand()
	return cfg
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	// Allow ~ paths
	if path == "~" || strings.HasPrefix(path, "~/") {
		return nil
	}
	// Must be absolute
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

func (c *Config) paths() []struct {
	field string
	value *string
} {
	return []struct {
		field string
		value *string
	}{
		{"projects_file", &c.ProjectsFile},
		{"hooks_dir", &c.HooksDir},
		{"log_file", &c.LogFile},
	}
}

// expand expands ~ in every path setting.
func (c *Config) expand() error {
	for _, p := range c.paths() {
		expanded, err := expandPath(*p.value)
		if err != nil {
			return fmt.Errorf("expand %s: %w", p.field, err)
		}
		*p.value = expanded
	}
	return nil
}

// Validate checks value constraints. Paths are validated before expansion.
func (c *Config) Validate() error {
	for _, p := range c.paths() {
		if err := ValidatePath(*p.value, p.field); err != nil {
			return err
		}
	}
	if c.Remote == "" {
		return errors.New("remote must not be empty")
	}
	if c.HookShell == "" {
		return errors.New("hook_shell must not be empty")
	}
	if err := validateEnum(c.DefaultFormat, "default_format", ValidFormats); err != nil {
		return err
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return errors.New("log rotation settings must not be negative")
	}
	return nil
}

// Path returns the config file location: $WT_CONFIG or
// ~/.config/wt/config.toml.
func Path() (string, error) {
	if p := os.Getenv("WT_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wt", "config.toml"), nil
}

// Load reads the config from [Path].
// Returns Default() if the file doesn't exist (no error).
// Returns error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config file at path and applies env overrides.
func LoadFrom(path string) (Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	default:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Default(), fmt.Errorf("failed to parse config file: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Default(), fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	if err := cfg.expand(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// applyEnv overrides directory settings from the environment.
func applyEnv(cfg *Config) {
	if v := os.Getenv("WT_PROJECTS_FILE"); v != "" {
		cfg.ProjectsFile = v
	}
	if v := os.Getenv("WT_HOOKS_DIR"); v != "" {
		cfg.HooksDir = v
	}
}
