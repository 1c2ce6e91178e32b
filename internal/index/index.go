// Package index persists analysis results to a SQLite database under
// .git/tally/. Each analyze or effort invocation is a run; hunks, blocks
// and spans hang off their run id.
package index

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/kragh/git-tally/internal/project"
	"github.com/kragh/git-tally/internal/record"
)

const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_ts TEXT NOT NULL,
		kind TEXT NOT NULL,
		rev TEXT
	);
	CREATE TABLE IF NOT EXISTS hunks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		commit_sha TEXT NOT NULL,
		hunk_idx INTEGER NOT NULL,
		old_line_start INTEGER NOT NULL,
		old_number_of_lines INTEGER NOT NULL,
		new_line_start INTEGER NOT NULL,
		new_number_of_lines INTEGER NOT NULL,
		source_file_path TEXT,
		target_file_path TEXT,
		patch TEXT,
		line_numbers_added TEXT,
		line_numbers_deleted TEXT
	);
	CREATE TABLE IF NOT EXISTS blocks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		commit_sha TEXT NOT NULL,
		target_file_path TEXT,
		hunk_idx INTEGER NOT NULL,
		block_nature TEXT NOT NULL,
		block_idx INTEGER NOT NULL,
		line_numbers_deleted TEXT,
		line_numbers_added TEXT,
		line_numbers_untouched TEXT
	);
	CREATE TABLE IF NOT EXISTS spans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		author_name TEXT,
		author_email TEXT,
		initial_commit_id TEXT NOT NULL,
		since_commit_id TEXT,
		until_commit_id TEXT NOT NULL,
		hours REAL NOT NULL,
		is_initial_span INTEGER NOT NULL,
		is_session_initial_span INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS estimates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		author_name TEXT,
		author_email TEXT,
		commits INTEGER NOT NULL,
		hours REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_hunks_commit ON hunks(commit_sha);
	CREATE INDEX IF NOT EXISTS idx_hunks_file ON hunks(target_file_path);
	CREATE INDEX IF NOT EXISTS idx_blocks_commit ON blocks(commit_sha);
	CREATE INDEX IF NOT EXISTS idx_spans_author ON spans(author_email);
`

// Open opens (creating if needed) the tally database and ensures the schema.
func Open(paths project.Paths) (*sql.DB, error) {
	if err := os.MkdirAll(paths.CacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", paths.DB)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return db, nil
}

// NewRun records a new run of the given kind ("analyze" or "effort") and
// returns its id.
func NewRun(db *sql.DB, kind, rev string) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(
		"INSERT INTO runs (id, created_ts, kind, rev) VALUES (?, ?, ?, ?)",
		id, time.Now().UTC().Format(time.RFC3339), kind, rev,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// InsertHunks writes hunk rows in one transaction.
func InsertHunks(db *sql.DB, runID string, rows []record.HunkRow) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO hunks
		(run_id, commit_sha, hunk_idx, old_line_start, old_number_of_lines,
		 new_line_start, new_number_of_lines, source_file_path,
		 target_file_path, patch, line_numbers_added, line_numbers_deleted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i, r := range rows {
		_, err := stmt.Exec(
			runID, r.CommitSHA, r.HunkIdx,
			r.OldLineStart, r.OldNumberOfLines, r.NewLineStart, r.NewNumberOfLines,
			r.SourceFilePath, r.TargetFilePath, r.Patch,
			r.LineNumbersAdded.String(), r.LineNumbersDeleted.String(),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert hunk %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// InsertBlocks writes block rows in one transaction.
func InsertBlocks(db *sql.DB, runID string, rows []record.BlockRow) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO blocks
		(run_id, commit_sha, target_file_path, hunk_idx, block_nature,
		 block_idx, line_numbers_deleted, line_numbers_added, line_numbers_untouched)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i, r := range rows {
		_, err := stmt.Exec(
			runID, r.CommitSHA, r.TargetFilePath, r.HunkIdx,
			r.BlockNature, r.BlockIdx,
			r.LineNumbersDeleted.String(), r.LineNumbersAdded.String(),
			r.LineNumbersUntouched.String(),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert block %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// InsertSpans writes span rows in one transaction.
func InsertSpans(db *sql.DB, runID string, rows []record.SpanRow) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO spans
		(run_id, author_name, author_email, initial_commit_id,
		 since_commit_id, until_commit_id, hours, is_initial_span,
		 is_session_initial_span)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i, r := range rows {
		_, err := stmt.Exec(
			runID, r.AuthorName, r.AuthorEmail, r.InitialCommitId,
			r.SinceCommitId, r.UntilCommitId, r.Hours,
			boolInt(r.IsInitialSpan), boolInt(r.IsSessionInitialSpan),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert span %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// InsertEstimates writes per-author totals in one transaction.
func InsertEstimates(db *sql.DB, runID string, rows []record.EstimateRow) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO estimates (run_id, author_name, author_email, commits, hours)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i, r := range rows {
		if _, err := stmt.Exec(runID, r.AuthorName, r.AuthorEmail, r.Commits, r.Hours); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert estimate %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
