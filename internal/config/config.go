// Package config loads tool configuration from an optional .tally.yml at
// the repo root, with GIT_TALLY_* environment overrides. Command-line flags
// override both.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// TimeBoundLayout is the accepted textual format for --since/--until.
const TimeBoundLayout = "2006-01-02 15:04"

// Config is the full tool configuration.
type Config struct {
	// Estimator thresholds, in minutes.
	MaxCommitDiffMinutes       int `yaml:"max_commit_diff_minutes"`
	FirstCommitAdditionMinutes int `yaml:"first_commit_addition_minutes"`

	// CloneTool is the external clone-detection binary to invoke, if any.
	CloneTool string `yaml:"clone_tool"`

	// ExportDir overrides the default export directory.
	ExportDir string `yaml:"export_dir"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		MaxCommitDiffMinutes:       120,
		FirstCommitAdditionMinutes: 120,
		LogLevel:                   "info",
	}
}

// Load reads .tally.yml from root if present and applies env overrides.
// A missing file is not an error; a malformed one is.
func Load(root string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(root, ".tally.yml"))
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse .tally.yml: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read .tally.yml: %w", err)
	}

	applyEnv(&cfg)

	if cfg.MaxCommitDiffMinutes < 0 || cfg.FirstCommitAdditionMinutes < 0 {
		return cfg, fmt.Errorf("estimator thresholds must be non-negative")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GIT_TALLY_MAX_COMMIT_DIFF_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxCommitDiffMinutes = n
		}
	}
	if v := os.Getenv("GIT_TALLY_FIRST_COMMIT_ADDITION_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.FirstCommitAdditionMinutes = n
		}
	}
	if v := os.Getenv("GIT_TALLY_CLONE_TOOL"); v != "" {
		cfg.CloneTool = v
	}
	if v := os.Getenv("GIT_TALLY_EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}
	if v := os.Getenv("GIT_TALLY_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// ParseTimeBound parses a "yyyy-MM-dd HH:mm" bound in local time, also
// accepting a bare date.
func ParseTimeBound(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(TimeBoundLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time bound %q, want %q", s, TimeBoundLayout)
}
