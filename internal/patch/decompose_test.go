package patch

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func TestDecompose_DegenerateKinds(t *testing.T) {
	for _, kind := range []ChangeKind{KindAddedEmpty, KindRenamedOnly, KindDeletedEmpty} {
		hunks := Decompose(Change{
			SourcePath: "old/name.go",
			TargetPath: "new/name.go",
			Kind:       kind,
		}, Options{SourceRoot: "/src", TargetRoot: "/dst"})

		if len(hunks) != 1 {
			t.Fatalf("kind %d: got %d hunks, want exactly 1", kind, len(hunks))
		}
		h := hunks[0]
		if !h.RepresentsEmptyFile() {
			t.Errorf("kind %d: hunk is not the empty-file sentinel: %+v", kind, h)
		}
		if h.SourceFilePath != filepath.Join("/src", "old/name.go") {
			t.Errorf("kind %d: source path = %q", kind, h.SourceFilePath)
		}
		if h.TargetFilePath != filepath.Join("/dst", "new/name.go") {
			t.Errorf("kind %d: target path = %q", kind, h.TargetFilePath)
		}
	}
}

func TestDecompose_NormalMode(t *testing.T) {
	change := Change{
		SourcePath: "a.go",
		TargetPath: "a.go",
		Kind:       KindModified,
		Patch:      "@@ -1,3 +1,4 @@\nctx\n-old\n+new\n+extra\nctx2",
	}
	hunks := Decompose(change, Options{SourceRoot: "/repo", TargetRoot: "/repo"})

	if len(hunks) != 1 {
		t.Fatalf("got %d hunks, want 1", len(hunks))
	}
	h := hunks[0]
	if len(h.Blocks) != 3 {
		t.Errorf("got %d blocks, want 3", len(h.Blocks))
	}
	if len(h.LinesAdded) != 2 || len(h.LinesDeleted) != 1 {
		t.Errorf("added/deleted = %v/%v, want 2/1 entries", h.LinesAdded, h.LinesDeleted)
	}
	if h.TargetFilePath != filepath.Join("/repo", "a.go") {
		t.Errorf("target path = %q", h.TargetFilePath)
	}
}

func TestDecompose_CountingProperty(t *testing.T) {
	change := Change{
		TargetPath: "f",
		SourcePath: "f",
		Kind:       KindModified,
		Patch:      "@@ -10,6 +20,7 @@\nctx\n-d1\n-d2\n+a1\n+a2\n+a3\nctx",
	}
	h := Decompose(change, Options{})[0]

	var added, deleted int
	for _, l := range h.Lines {
		switch l.Kind {
		case LineAdded:
			added++
		case LineDeleted:
			deleted++
		}
	}
	if len(h.LinesAdded) != added || len(h.LinesDeleted) != deleted {
		t.Errorf("list lengths %d/%d, counted %d/%d",
			len(h.LinesAdded), len(h.LinesDeleted), added, deleted)
	}
	if h.LinesAdded[0] != 21 {
		t.Errorf("first added = %d, want 21 (newStart 20 + 1 context)", h.LinesAdded[0])
	}
	if h.LinesDeleted[0] != 11 {
		t.Errorf("first deleted = %d, want 11 (oldStart 10 + 1 context)", h.LinesDeleted[0])
	}
}

func TestDecompose_NoHeadersYieldsNothing(t *testing.T) {
	hunks := Decompose(Change{Kind: KindModified, Patch: "not a diff"}, Options{})
	if hunks != nil {
		t.Errorf("got %d hunks, want none", len(hunks))
	}
}

func TestDecompose_PathFallbackWarns(t *testing.T) {
	log := &recordingLogger{}
	hunks := Decompose(Change{
		SourcePath: "bad\x00name",
		TargetPath: "bad\x00name",
		Kind:       KindAddedEmpty,
	}, Options{SourceRoot: "/src/", TargetRoot: "/dst/", Log: log})

	if len(log.warnings) != 2 {
		t.Fatalf("got %d warnings, want 2: %v", len(log.warnings), log.warnings)
	}
	h := hunks[0]
	if !strings.HasPrefix(h.SourceFilePath, "/src") || strings.Contains(h.SourceFilePath, "//") {
		t.Errorf("fallback source path = %q", h.SourceFilePath)
	}
}

func TestDecompose_NoRootsKeepsRelativePaths(t *testing.T) {
	h := Decompose(Change{SourcePath: "x", TargetPath: "y", Kind: KindRenamedOnly}, Options{})[0]
	if h.SourceFilePath != "x" || h.TargetFilePath != "y" {
		t.Errorf("paths = %q/%q, want x/y", h.SourceFilePath, h.TargetFilePath)
	}
}
