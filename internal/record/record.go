// Package record defines the flat, serializable rows the exporter and the
// database share. Field names follow the established export schema, so CSV
// headers and JSON keys must not drift.
package record

import (
	"github.com/kragh/git-tally/internal/effort"
	"github.com/kragh/git-tally/internal/lineset"
	"github.com/kragh/git-tally/internal/patch"
)

// HunkRow is one hunk of one file in one commit.
type HunkRow struct {
	CommitSHA        string          `json:"CommitSha"`
	HunkIdx          int             `json:"HunkIdx"`
	OldLineStart     int             `json:"OldLineStart"`
	OldNumberOfLines int             `json:"OldNumberOfLines"`
	NewLineStart     int             `json:"NewLineStart"`
	NewNumberOfLines int             `json:"NewNumberOfLines"`
	SourceFilePath   string          `json:"SourceFilePath"`
	TargetFilePath   string          `json:"TargetFilePath"`
	Patch            string          `json:"Patch"`
	LineNumbersAdded lineset.LineSet `json:"LineNumbersAdded"`
	LineNumbersDeleted lineset.LineSet `json:"LineNumbersDeleted"`
}

// BlockRow is one block within a hunk. HunkIdx ties it back to its hunk
// within (commit, target file).
type BlockRow struct {
	CommitSHA            string          `json:"CommitSha"`
	TargetFilePath       string          `json:"TargetFilePath"`
	HunkIdx              int             `json:"HunkIdx"`
	BlockNature          string          `json:"BlockNature"`
	BlockIdx             int             `json:"BlockIdx"`
	LineNumbersDeleted   lineset.LineSet `json:"LineNumbersDeleted"`
	LineNumbersAdded     lineset.LineSet `json:"LineNumbersAdded"`
	LineNumbersUntouched lineset.LineSet `json:"LineNumbersUntouched"`
}

// LineRow is one classified line. LineNumber is the new-file number for
// added and context lines and the old-file number for deleted lines.
type LineRow struct {
	CommitSHA      string `json:"CommitSha"`
	TargetFilePath string `json:"TargetFilePath"`
	HunkIdx        int    `json:"HunkIdx"`
	LineType       string `json:"LineType"`
	LineNumber     int    `json:"LineNumber"`
}

// SpanRow is one annotated author span.
type SpanRow struct {
	AuthorName           string  `json:"AuthorName"`
	AuthorEmail          string  `json:"AuthorEmail"`
	InitialCommitId      string  `json:"InitialCommitId"`
	SinceCommitId        string  `json:"SinceCommitId"`
	UntilCommitId        string  `json:"UntilCommitId"`
	Hours                float64 `json:"Hours"`
	IsInitialSpan        bool    `json:"IsInitialSpan"`
	IsSessionInitialSpan bool    `json:"IsSessionInitialSpan"`
}

// EstimateRow is one author's rounded total.
type EstimateRow struct {
	AuthorName  string  `json:"AuthorName"`
	AuthorEmail string  `json:"AuthorEmail"`
	Commits     int     `json:"Commits"`
	Hours       float64 `json:"Hours"`
}

// NewHunkRow flattens a decomposed hunk.
func NewHunkRow(sha string, hunkIdx int, h *patch.Hunk) HunkRow {
	return HunkRow{
		CommitSHA:          sha,
		HunkIdx:            hunkIdx,
		OldLineStart:       h.OldLineStart,
		OldNumberOfLines:   h.OldNumberOfLines,
		NewLineStart:       h.NewLineStart,
		NewNumberOfLines:   h.NewNumberOfLines,
		SourceFilePath:     h.SourceFilePath,
		TargetFilePath:     h.TargetFilePath,
		Patch:              h.Patch,
		LineNumbersAdded:   lineset.New(h.LinesAdded...),
		LineNumbersDeleted: lineset.New(h.LinesDeleted...),
	}
}

// NewBlockRows flattens every block of a decomposed hunk.
func NewBlockRows(sha string, hunkIdx int, h *patch.Hunk) []BlockRow {
	rows := make([]BlockRow, 0, len(h.Blocks))
	for _, b := range h.Blocks {
		var added, deleted, untouched []int
		for _, l := range b.Lines {
			switch l.Kind {
			case patch.LineAdded:
				added = append(added, l.NewNumber)
			case patch.LineDeleted:
				deleted = append(deleted, l.OldNumber)
			case patch.LineContext:
				untouched = append(untouched, l.NewNumber)
			}
		}
		rows = append(rows, BlockRow{
			CommitSHA:            sha,
			TargetFilePath:       h.TargetFilePath,
			HunkIdx:              hunkIdx,
			BlockNature:          b.Nature.String(),
			BlockIdx:             b.Index,
			LineNumbersDeleted:   lineset.New(deleted...),
			LineNumbersAdded:     lineset.New(added...),
			LineNumbersUntouched: lineset.New(untouched...),
		})
	}
	return rows
}

// NewLineRows flattens a hunk's classified lines.
func NewLineRows(sha string, hunkIdx int, h *patch.Hunk) []LineRow {
	rows := make([]LineRow, 0, len(h.Lines))
	for _, l := range h.Lines {
		num := l.NewNumber
		if l.Kind == patch.LineDeleted {
			num = l.OldNumber
		}
		rows = append(rows, LineRow{
			CommitSHA:      sha,
			TargetFilePath: h.TargetFilePath,
			HunkIdx:        hunkIdx,
			LineType:       l.Kind.String(),
			LineNumber:     num,
		})
	}
	return rows
}

// NewSpanRow flattens one author span.
func NewSpanRow(name, email string, s effort.Span) SpanRow {
	return SpanRow{
		AuthorName:           name,
		AuthorEmail:          email,
		InitialCommitId:      s.InitialID,
		SinceCommitId:        s.SinceID,
		UntilCommitId:        s.UntilID,
		Hours:                s.Hours,
		IsInitialSpan:        s.IsInitial,
		IsSessionInitialSpan: s.IsSessionInitial,
	}
}
