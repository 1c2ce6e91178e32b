package index

import (
	"database/sql"
	"fmt"

	"github.com/kragh/git-tally/internal/lineset"
	"github.com/kragh/git-tally/internal/record"
)

// LatestRun returns the most recent run id of the given kind, or "" when no
// such run exists.
func LatestRun(db *sql.DB, kind string) (string, error) {
	var id string
	err := db.QueryRow(
		"SELECT id FROM runs WHERE kind = ? ORDER BY created_ts DESC, rowid DESC LIMIT 1", kind,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("latest %s run: %w", kind, err)
	}
	return id, nil
}

// Hunks loads a run's hunk rows in insertion order.
func Hunks(db *sql.DB, runID string) ([]record.HunkRow, error) {
	rows, err := db.Query(`
		SELECT commit_sha, hunk_idx, old_line_start, old_number_of_lines,
		       new_line_start, new_number_of_lines, source_file_path,
		       target_file_path, patch, line_numbers_added, line_numbers_deleted
		FROM hunks WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []record.HunkRow
	for rows.Next() {
		var r record.HunkRow
		var added, deleted string
		err := rows.Scan(
			&r.CommitSHA, &r.HunkIdx, &r.OldLineStart, &r.OldNumberOfLines,
			&r.NewLineStart, &r.NewNumberOfLines, &r.SourceFilePath,
			&r.TargetFilePath, &r.Patch, &added, &deleted,
		)
		if err != nil {
			return nil, err
		}
		if r.LineNumbersAdded, err = lineset.FromString(added); err != nil {
			return nil, fmt.Errorf("hunk %s/%d: %w", r.CommitSHA, r.HunkIdx, err)
		}
		if r.LineNumbersDeleted, err = lineset.FromString(deleted); err != nil {
			return nil, fmt.Errorf("hunk %s/%d: %w", r.CommitSHA, r.HunkIdx, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Blocks loads a run's block rows in insertion order.
func Blocks(db *sql.DB, runID string) ([]record.BlockRow, error) {
	rows, err := db.Query(`
		SELECT commit_sha, target_file_path, hunk_idx, block_nature, block_idx,
		       line_numbers_deleted, line_numbers_added, line_numbers_untouched
		FROM blocks WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []record.BlockRow
	for rows.Next() {
		var r record.BlockRow
		var deleted, added, untouched string
		err := rows.Scan(
			&r.CommitSHA, &r.TargetFilePath, &r.HunkIdx, &r.BlockNature,
			&r.BlockIdx, &deleted, &added, &untouched,
		)
		if err != nil {
			return nil, err
		}
		if r.LineNumbersDeleted, err = lineset.FromString(deleted); err != nil {
			return nil, err
		}
		if r.LineNumbersAdded, err = lineset.FromString(added); err != nil {
			return nil, err
		}
		if r.LineNumbersUntouched, err = lineset.FromString(untouched); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Spans loads a run's span rows in insertion order.
func Spans(db *sql.DB, runID string) ([]record.SpanRow, error) {
	rows, err := db.Query(`
		SELECT author_name, author_email, initial_commit_id, since_commit_id,
		       until_commit_id, hours, is_initial_span, is_session_initial_span
		FROM spans WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []record.SpanRow
	for rows.Next() {
		var r record.SpanRow
		var since sql.NullString
		var isInitial, isSessionInitial int
		err := rows.Scan(
			&r.AuthorName, &r.AuthorEmail, &r.InitialCommitId, &since,
			&r.UntilCommitId, &r.Hours, &isInitial, &isSessionInitial,
		)
		if err != nil {
			return nil, err
		}
		r.SinceCommitId = since.String
		r.IsInitialSpan = isInitial == 1
		r.IsSessionInitialSpan = isSessionInitial == 1
		out = append(out, r)
	}
	return out, rows.Err()
}

// Estimates loads a run's per-author totals, highest hours first.
func Estimates(db *sql.DB, runID string) ([]record.EstimateRow, error) {
	rows, err := db.Query(`
		SELECT author_name, author_email, commits, hours
		FROM estimates WHERE run_id = ? ORDER BY hours DESC, author_email`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []record.EstimateRow
	for rows.Next() {
		var r record.EstimateRow
		if err := rows.Scan(&r.AuthorName, &r.AuthorEmail, &r.Commits, &r.Hours); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
