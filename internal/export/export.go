// Package export serializes analysis rows to CSV and JSON. Column order and
// field names are part of the export schema and must stay stable.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/kragh/git-tally/internal/record"
)

// HunksCSV writes hunk rows with a header line.
func HunksCSV(w io.Writer, rows []record.HunkRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"CommitSha", "HunkIdx", "OldLineStart", "OldNumberOfLines",
		"NewLineStart", "NewNumberOfLines", "SourceFilePath",
		"TargetFilePath", "Patch", "LineNumbersAdded", "LineNumbersDeleted",
	}); err != nil {
		return err
	}
	for _, r := range rows {
		err := cw.Write([]string{
			r.CommitSHA, itoa(r.HunkIdx), itoa(r.OldLineStart), itoa(r.OldNumberOfLines),
			itoa(r.NewLineStart), itoa(r.NewNumberOfLines), r.SourceFilePath,
			r.TargetFilePath, r.Patch,
			r.LineNumbersAdded.String(), r.LineNumbersDeleted.String(),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// BlocksCSV writes block rows with a header line.
func BlocksCSV(w io.Writer, rows []record.BlockRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"CommitSha", "TargetFilePath", "HunkIdx", "BlockNature", "BlockIdx",
		"LineNumbersDeleted", "LineNumbersAdded", "LineNumbersUntouched",
	}); err != nil {
		return err
	}
	for _, r := range rows {
		err := cw.Write([]string{
			r.CommitSHA, r.TargetFilePath, itoa(r.HunkIdx), r.BlockNature,
			itoa(r.BlockIdx), r.LineNumbersDeleted.String(),
			r.LineNumbersAdded.String(), r.LineNumbersUntouched.String(),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// LinesCSV writes line rows with a header line.
func LinesCSV(w io.Writer, rows []record.LineRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"CommitSha", "TargetFilePath", "HunkIdx", "LineType", "LineNumber",
	}); err != nil {
		return err
	}
	for _, r := range rows {
		err := cw.Write([]string{
			r.CommitSHA, r.TargetFilePath, itoa(r.HunkIdx), r.LineType, itoa(r.LineNumber),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SpansCSV writes span rows with a header line.
func SpansCSV(w io.Writer, rows []record.SpanRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"AuthorName", "AuthorEmail", "InitialCommitId", "SinceCommitId",
		"UntilCommitId", "Hours", "IsInitialSpan", "IsSessionInitialSpan",
	}); err != nil {
		return err
	}
	for _, r := range rows {
		err := cw.Write([]string{
			r.AuthorName, r.AuthorEmail, r.InitialCommitId, r.SinceCommitId,
			r.UntilCommitId, formatHours(r.Hours),
			strconv.FormatBool(r.IsInitialSpan), strconv.FormatBool(r.IsSessionInitialSpan),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// EstimatesCSV writes per-author totals with a header line.
func EstimatesCSV(w io.Writer, rows []record.EstimateRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"AuthorName", "AuthorEmail", "Commits", "Hours"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.AuthorName, r.AuthorEmail, itoa(r.Commits), formatHours(r.Hours)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSON writes any row slice as an indented JSON array.
func JSON(w io.Writer, rows any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}
