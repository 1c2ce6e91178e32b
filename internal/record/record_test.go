package record

import (
	"testing"

	"github.com/kragh/git-tally/internal/effort"
	"github.com/kragh/git-tally/internal/patch"
)

func decomposeOne(t *testing.T, patchText string) *patch.Hunk {
	t.Helper()
	hunks := patch.Decompose(patch.Change{
		SourcePath: "f.go",
		TargetPath: "f.go",
		Kind:       patch.KindModified,
		Patch:      patchText,
	}, patch.Options{})
	if len(hunks) != 1 {
		t.Fatalf("got %d hunks, want 1", len(hunks))
	}
	return hunks[0]
}

func TestNewHunkRow(t *testing.T) {
	h := decomposeOne(t, "@@ -3,4 +3,5 @@\nctx\n-a\n+b\n+c\nctx2")
	row := NewHunkRow("abc", 0, h)

	if row.CommitSHA != "abc" || row.OldLineStart != 3 || row.NewNumberOfLines != 5 {
		t.Errorf("row = %+v", row)
	}
	if row.LineNumbersAdded.String() != "4-5" {
		t.Errorf("added = %q, want 4-5", row.LineNumbersAdded.String())
	}
	if row.LineNumbersDeleted.String() != "4" {
		t.Errorf("deleted = %q, want 4", row.LineNumbersDeleted.String())
	}
}

func TestNewBlockRows(t *testing.T) {
	h := decomposeOne(t, "@@ -1,3 +1,3 @@\nctx\n-a\n+b\nctx2")
	rows := NewBlockRows("abc", 0, h)

	if len(rows) != 3 {
		t.Fatalf("got %d block rows, want 3", len(rows))
	}
	mid := rows[1]
	if mid.BlockNature != "Replaced" || mid.BlockIdx != 1 {
		t.Errorf("middle block = %+v", mid)
	}
	if mid.LineNumbersDeleted.String() != "2" || mid.LineNumbersAdded.String() != "2" {
		t.Errorf("middle block lines = del %q add %q",
			mid.LineNumbersDeleted.String(), mid.LineNumbersAdded.String())
	}
	if rows[0].BlockNature != "Untouched" || rows[0].LineNumbersUntouched.Len() != 1 {
		t.Errorf("first block = %+v", rows[0])
	}
}

func TestNewLineRows(t *testing.T) {
	h := decomposeOne(t, "@@ -10,2 +20,2 @@\n-gone\nkept\n+extra")
	rows := NewLineRows("abc", 2, h)

	if len(rows) != 3 {
		t.Fatalf("got %d line rows, want 3", len(rows))
	}
	if rows[0].LineType != "Deleted" || rows[0].LineNumber != 10 {
		t.Errorf("deleted row = %+v, want old number 10", rows[0])
	}
	if rows[1].LineType != "Context" || rows[1].LineNumber != 20 {
		t.Errorf("context row = %+v, want new number 20", rows[1])
	}
	if rows[2].LineType != "Added" || rows[2].LineNumber != 21 {
		t.Errorf("added row = %+v, want new number 21", rows[2])
	}
	if rows[0].HunkIdx != 2 {
		t.Errorf("hunk idx = %d, want 2", rows[0].HunkIdx)
	}
}

func TestNewSpanRow(t *testing.T) {
	row := NewSpanRow("Ada", "ada@example.com", effort.Span{
		InitialID:        "a",
		SinceID:          "b",
		UntilID:          "c",
		Hours:            1.5,
		IsSessionInitial: true,
	})
	if row.AuthorEmail != "ada@example.com" || row.Hours != 1.5 {
		t.Errorf("row = %+v", row)
	}
	if row.IsInitialSpan || !row.IsSessionInitialSpan {
		t.Errorf("flags = %+v", row)
	}
}
