package index

import (
	"reflect"
	"testing"

	"github.com/kragh/git-tally/internal/lineset"
	"github.com/kragh/git-tally/internal/project"
	"github.com/kragh/git-tally/internal/record"
)

func TestQueryRoundTrip(t *testing.T) {
	paths := project.NewPaths(t.TempDir())
	db, err := Open(paths)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	runID, err := NewRun(db, "analyze", "")
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}

	wantHunks := []record.HunkRow{{
		CommitSHA:          "abc",
		HunkIdx:            1,
		OldLineStart:       3,
		OldNumberOfLines:   2,
		NewLineStart:       3,
		NewNumberOfLines:   4,
		SourceFilePath:     "/repo/a.go",
		TargetFilePath:     "/repo/a.go",
		Patch:              " ctx\n+one\n+two\n-gone\n",
		LineNumbersAdded:   lineset.New(4, 5),
		LineNumbersDeleted: lineset.New(4),
	}}
	if err := InsertHunks(db, runID, wantHunks); err != nil {
		t.Fatalf("InsertHunks: %v", err)
	}
	gotHunks, err := Hunks(db, runID)
	if err != nil {
		t.Fatalf("Hunks: %v", err)
	}
	if !reflect.DeepEqual(gotHunks, wantHunks) {
		t.Errorf("Hunks round trip:\n got %+v\nwant %+v", gotHunks, wantHunks)
	}

	wantSpans := []record.SpanRow{
		{
			AuthorName:           "Ada",
			AuthorEmail:          "ada@example.com",
			InitialCommitId:      "abc",
			UntilCommitId:        "abc",
			IsInitialSpan:        true,
			IsSessionInitialSpan: true,
		},
		{
			AuthorName:      "Ada",
			AuthorEmail:     "ada@example.com",
			InitialCommitId: "abc",
			SinceCommitId:   "abc",
			UntilCommitId:   "def",
			Hours:           0.5,
		},
	}
	if err := InsertSpans(db, runID, wantSpans); err != nil {
		t.Fatalf("InsertSpans: %v", err)
	}
	gotSpans, err := Spans(db, runID)
	if err != nil {
		t.Fatalf("Spans: %v", err)
	}
	if !reflect.DeepEqual(gotSpans, wantSpans) {
		t.Errorf("Spans round trip:\n got %+v\nwant %+v", gotSpans, wantSpans)
	}
}

func TestLatestRun(t *testing.T) {
	paths := project.NewPaths(t.TempDir())
	db, err := Open(paths)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	id, err := LatestRun(db, "analyze")
	if err != nil {
		t.Fatalf("LatestRun on empty db: %v", err)
	}
	if id != "" {
		t.Errorf("expected no run, got %q", id)
	}

	if _, err := NewRun(db, "analyze", ""); err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	second, err := NewRun(db, "analyze", "HEAD~5..HEAD")
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	other, err := NewRun(db, "effort", "")
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}

	got, err := LatestRun(db, "analyze")
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if got != second {
		t.Errorf("latest analyze run = %q, want %q", got, second)
	}
	gotEffort, err := LatestRun(db, "effort")
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if gotEffort != other {
		t.Errorf("latest effort run = %q, want %q", gotEffort, other)
	}
}
