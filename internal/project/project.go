package project

import (
	"os"
	"path/filepath"

	"github.com/kragh/git-tally/internal/git"
)

// Paths holds all relevant locations for a repo under analysis.
type Paths struct {
	Root      string // git repo root
	CacheDir  string // .git/tally/
	LogDir    string // .git/tally/logs/
	DB        string // .git/tally/tally.db
	ExportDir string // tally-export/ under the repo root by default
}

// FindRoot returns the git project root, preferring GIT_TALLY_ROOT if set.
func FindRoot() (string, error) {
	if dir := os.Getenv("GIT_TALLY_ROOT"); dir != "" {
		return dir, nil
	}
	return git.RevParseTopLevel()
}

// NewPaths constructs all path constants from a project root.
func NewPaths(root string) Paths {
	cache := filepath.Join(root, ".git", "tally")
	return Paths{
		Root:      root,
		CacheDir:  cache,
		LogDir:    filepath.Join(cache, "logs"),
		DB:        filepath.Join(cache, "tally.db"),
		ExportDir: filepath.Join(root, "tally-export"),
	}
}
