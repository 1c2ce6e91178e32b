package project

import (
	"path/filepath"
	"testing"
)

func TestNewPaths(t *testing.T) {
	p := NewPaths("/repo")

	if p.Root != "/repo" {
		t.Errorf("Root = %q", p.Root)
	}
	if p.CacheDir != filepath.Join("/repo", ".git", "tally") {
		t.Errorf("CacheDir = %q", p.CacheDir)
	}
	if p.DB != filepath.Join(p.CacheDir, "tally.db") {
		t.Errorf("DB = %q", p.DB)
	}
	if p.LogDir != filepath.Join(p.CacheDir, "logs") {
		t.Errorf("LogDir = %q", p.LogDir)
	}
	if p.ExportDir != filepath.Join("/repo", "tally-export") {
		t.Errorf("ExportDir = %q", p.ExportDir)
	}
}

func TestFindRoot_EnvOverride(t *testing.T) {
	t.Setenv("GIT_TALLY_ROOT", "/elsewhere")
	root, err := FindRoot()
	if err != nil {
		t.Fatalf("FindRoot: %v", err)
	}
	if root != "/elsewhere" {
		t.Errorf("root = %q, want /elsewhere", root)
	}
}
