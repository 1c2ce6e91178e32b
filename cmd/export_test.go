package cmd

import (
	"testing"

	"github.com/kragh/git-tally/internal/record"
)

func TestLineRowsFor(t *testing.T) {
	hunks := []record.HunkRow{
		{
			CommitSHA:        "abc123",
			HunkIdx:          0,
			OldLineStart:     3,
			OldNumberOfLines: 2,
			NewLineStart:     3,
			NewNumberOfLines: 2,
			TargetFilePath:   "main.go",
			Patch:            " keep\n-old\n+new\n",
		},
		{
			// Sentinel for an empty-file add: no body, no lines.
			CommitSHA:      "abc123",
			HunkIdx:        0,
			TargetFilePath: "empty.go",
		},
	}

	rows := lineRowsFor(hunks)
	if len(rows) != 3 {
		t.Fatalf("expected 3 line rows, got %d: %v", len(rows), rows)
	}

	want := []struct {
		lineType string
		number   int
	}{
		{"Context", 3},
		{"Deleted", 4},
		{"Added", 4},
	}
	for i, w := range want {
		if rows[i].LineType != w.lineType || rows[i].LineNumber != w.number {
			t.Errorf("row %d: got %s/%d, want %s/%d",
				i, rows[i].LineType, rows[i].LineNumber, w.lineType, w.number)
		}
		if rows[i].TargetFilePath != "main.go" {
			t.Errorf("row %d: file %q", i, rows[i].TargetFilePath)
		}
	}
}
