package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/kragh/git-tally/internal/debug"
	"github.com/kragh/git-tally/internal/export"
	"github.com/kragh/git-tally/internal/format"
	"github.com/kragh/git-tally/internal/git"
	"github.com/kragh/git-tally/internal/index"
	"github.com/kragh/git-tally/internal/patch"
	"github.com/kragh/git-tally/internal/record"
)

// RunAnalyze mines the commit range, decomposes every file change into hunks
// and blocks, and stores the rows as a new analyze run.
func RunAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	rev := fs.String("rev", "", "Revision or range to mine (default HEAD)")
	since := fs.String("since", "", "Only commits after this time (YYYY-MM-DD [HH:MM])")
	until := fs.String("until", "", "Only commits up to this time (YYYY-MM-DD [HH:MM])")
	author := fs.String("author", "", "Only commits by this author")
	max := fs.Int("max", 0, "Stop after this many commits (0 = all)")
	noStore := fs.Bool("no-store", false, "Skip writing results to the database")
	jsonOut := fs.Bool("json", false, "Print the hunk rows as JSON instead of a summary")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: git-tally analyze [--rev <range>] [--since <t>] [--until <t>]
                         [--author <name>] [--max <n>] [--no-store] [--json]

Walks the selected commits oldest-first, splits each file's diff into hunks,
classifies the lines and segments them into blocks, and records everything
as a new run in .git/tally/tally.db.
`)
	}
	fs.Parse(reorderArgs(args))

	e := mustSetup()
	log, closeLog := debug.Open(e.Paths.LogDir, "analyze.log", e.Cfg.LogLevel)
	defer closeLog()

	commits, err := git.Commits(e.Root, logOptions(*rev, *since, *until, *author, *max))
	if err != nil {
		fatal("%v", err)
	}
	if len(commits) == 0 {
		fmt.Println("No commits in the selected range.")
		return
	}

	dopts := patch.Options{
		SourceRoot: e.Root,
		TargetRoot: e.Root,
		Log:        debug.Warnf{Log: log},
	}

	var hunkRows []record.HunkRow
	var blockRows []record.BlockRow
	files := map[string]struct{}{}
	skipped := 0

	for _, c := range commits {
		changes, err := git.CommitChanges(e.Root, c.SHA)
		if err != nil {
			log.Warn().Str("commit", c.SHA).Err(err).Msg("listing changes failed, skipping commit")
			skipped++
			continue
		}
		for _, fc := range changes {
			text, err := git.FilePatch(e.Root, c.SHA, fc.NewPath)
			if err != nil {
				log.Warn().Str("commit", c.SHA).Str("file", fc.NewPath).Err(err).Msg("patch unavailable, skipping file")
				skipped++
				continue
			}
			ch := git.ChangeFor(fc, text)
			hunks := patch.Decompose(ch, dopts)
			if len(hunks) == 0 {
				// Content changed but nothing matched the hunk grammar
				// (binary files mostly). Nothing to report for this file.
				log.Warn().Str("commit", c.SHA).Str("file", fc.NewPath).Msg("no recognizable hunks")
				skipped++
				continue
			}
			files[ch.TargetPath] = struct{}{}
			for i, h := range hunks {
				hunkRows = append(hunkRows, record.NewHunkRow(c.SHA, i, h))
				blockRows = append(blockRows, record.NewBlockRows(c.SHA, i, h)...)
			}
		}
	}

	runID := ""
	if !*noStore {
		db, err := index.Open(e.Paths)
		if err != nil {
			fatal("%v", err)
		}
		defer db.Close()

		runID, err = index.NewRun(db, "analyze", *rev)
		if err != nil {
			fatal("%v", err)
		}
		if err := index.InsertHunks(db, runID, hunkRows); err != nil {
			fatal("storing hunks: %v", err)
		}
		if err := index.InsertBlocks(db, runID, blockRows); err != nil {
			fatal("storing blocks: %v", err)
		}
	}

	if *jsonOut {
		if err := export.JSON(os.Stdout, hunkRows); err != nil {
			fatal("%v", err)
		}
		return
	}

	fmt.Printf("%sAnalyzed %d commits%s: %d files, %d hunks, %d blocks\n",
		format.Bold, len(commits), format.Reset, len(files), len(hunkRows), len(blockRows))
	if skipped > 0 {
		fmt.Printf("%sSkipped %d entries (see %s)%s\n", format.Dim, skipped, e.Paths.LogDir, format.Reset)
	}
	if runID != "" {
		fmt.Printf("%sRun %s stored in %s%s\n", format.Dim, runID, e.Paths.DB, format.Reset)
	}
}
