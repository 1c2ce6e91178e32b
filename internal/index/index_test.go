package index

import (
	"path/filepath"
	"testing"

	"github.com/kragh/git-tally/internal/lineset"
	"github.com/kragh/git-tally/internal/project"
	"github.com/kragh/git-tally/internal/record"
)

func TestOpenAndInsert(t *testing.T) {
	paths := project.NewPaths(t.TempDir())
	db, err := Open(paths)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	runID, err := NewRun(db, "analyze", "HEAD~3..HEAD")
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	if runID == "" {
		t.Fatal("empty run id")
	}

	hunks := []record.HunkRow{{
		CommitSHA:          "abc",
		HunkIdx:            0,
		OldLineStart:       1,
		OldNumberOfLines:   2,
		NewLineStart:       1,
		NewNumberOfLines:   3,
		TargetFilePath:     "/repo/a.go",
		Patch:              "-x\n+y\n+z",
		LineNumbersAdded:   lineset.New(1, 2),
		LineNumbersDeleted: lineset.New(1),
	}}
	if err := InsertHunks(db, runID, hunks); err != nil {
		t.Fatalf("InsertHunks: %v", err)
	}

	blocks := []record.BlockRow{{
		CommitSHA:          "abc",
		TargetFilePath:     "/repo/a.go",
		BlockNature:        "Replaced",
		LineNumbersAdded:   lineset.New(1, 2),
		LineNumbersDeleted: lineset.New(1),
	}}
	if err := InsertBlocks(db, runID, blocks); err != nil {
		t.Fatalf("InsertBlocks: %v", err)
	}

	spans := []record.SpanRow{{
		AuthorEmail:          "ada@example.com",
		InitialCommitId:      "abc",
		UntilCommitId:        "abc",
		IsInitialSpan:        true,
		IsSessionInitialSpan: true,
	}}
	if err := InsertSpans(db, runID, spans); err != nil {
		t.Fatalf("InsertSpans: %v", err)
	}

	if err := InsertEstimates(db, runID, []record.EstimateRow{
		{AuthorEmail: "ada@example.com", Commits: 5, Hours: 3.25},
	}); err != nil {
		t.Fatalf("InsertEstimates: %v", err)
	}

	var hunkCount, blockCount, spanCount int
	db.QueryRow("SELECT COUNT(*) FROM hunks WHERE run_id = ?", runID).Scan(&hunkCount)
	db.QueryRow("SELECT COUNT(*) FROM blocks WHERE run_id = ?", runID).Scan(&blockCount)
	db.QueryRow("SELECT COUNT(*) FROM spans WHERE run_id = ?", runID).Scan(&spanCount)
	if hunkCount != 1 || blockCount != 1 || spanCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1", hunkCount, blockCount, spanCount)
	}

	var added string
	db.QueryRow("SELECT line_numbers_added FROM hunks WHERE run_id = ?", runID).Scan(&added)
	if added != "1-2" {
		t.Errorf("stored added lines = %q, want compact notation 1-2", added)
	}

	var isInitial int
	db.QueryRow("SELECT is_initial_span FROM spans WHERE run_id = ?", runID).Scan(&isInitial)
	if isInitial != 1 {
		t.Errorf("is_initial_span = %d, want 1", isInitial)
	}
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	paths := project.NewPaths(t.TempDir())

	db, err := Open(paths)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	runID, err := NewRun(db, "effort", "")
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	db.Close()

	db2, err := Open(paths)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db2.Close()

	var kind string
	if err := db2.QueryRow("SELECT kind FROM runs WHERE id = ?", runID).Scan(&kind); err != nil {
		t.Fatalf("query run: %v", err)
	}
	if kind != "effort" {
		t.Errorf("kind = %q, want effort", kind)
	}
	if filepath.Dir(paths.DB) != paths.CacheDir {
		t.Errorf("db not under cache dir: %q", paths.DB)
	}
}
