package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kragh/git-tally/internal/export"
	"github.com/kragh/git-tally/internal/index"
	"github.com/kragh/git-tally/internal/patch"
	"github.com/kragh/git-tally/internal/record"
)

// RunExport writes the latest runs out as CSV or JSON files, one file per
// row kind. Line rows are not stored; they are rebuilt from the hunk
// patches on the way out.
func RunExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	formatFlag := fs.String("format", "csv", "Output format: csv or json")
	out := fs.String("out", "", "Output directory (default <repo>/tally-export)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: git-tally export [--format csv|json] [--out <dir>]

Exports the most recent analyze run (hunks, blocks, lines) and the most
recent effort run (spans, estimates).
`)
	}
	fs.Parse(reorderArgs(args))

	if *formatFlag != "csv" && *formatFlag != "json" {
		fatal("unknown format %q (want csv or json)", *formatFlag)
	}

	e := mustSetup()
	db, err := index.Open(e.Paths)
	if err != nil {
		fatal("%v", err)
	}
	defer db.Close()

	analyzeRun, err := index.LatestRun(db, "analyze")
	if err != nil {
		fatal("%v", err)
	}
	effortRun, err := index.LatestRun(db, "effort")
	if err != nil {
		fatal("%v", err)
	}
	if analyzeRun == "" && effortRun == "" {
		fatal("nothing to export; run 'git-tally analyze' or 'git-tally effort' first")
	}

	dir := exportDir(e, *out)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fatal("create export dir: %v", err)
	}

	var written []string
	emit := func(name string, csvFn func(io.Writer) error, rows any) {
		path := filepath.Join(dir, name+"."+*formatFlag)
		f, err := os.Create(path)
		if err != nil {
			fatal("create %s: %v", path, err)
		}
		defer f.Close()
		if *formatFlag == "csv" {
			err = csvFn(f)
		} else {
			err = export.JSON(f, rows)
		}
		if err != nil {
			fatal("write %s: %v", path, err)
		}
		written = append(written, path)
	}

	if analyzeRun != "" {
		hunks, err := index.Hunks(db, analyzeRun)
		if err != nil {
			fatal("%v", err)
		}
		blocks, err := index.Blocks(db, analyzeRun)
		if err != nil {
			fatal("%v", err)
		}
		lines := lineRowsFor(hunks)
		emit("hunks", func(w io.Writer) error { return export.HunksCSV(w, hunks) }, hunks)
		emit("blocks", func(w io.Writer) error { return export.BlocksCSV(w, blocks) }, blocks)
		emit("lines", func(w io.Writer) error { return export.LinesCSV(w, lines) }, lines)
	}
	if effortRun != "" {
		spans, err := index.Spans(db, effortRun)
		if err != nil {
			fatal("%v", err)
		}
		estimates, err := index.Estimates(db, effortRun)
		if err != nil {
			fatal("%v", err)
		}
		emit("spans", func(w io.Writer) error { return export.SpansCSV(w, spans) }, spans)
		emit("estimates", func(w io.Writer) error { return export.EstimatesCSV(w, estimates) }, estimates)
	}

	for _, p := range written {
		fmt.Println("Wrote", p)
	}
}

// lineRowsFor re-derives the per-line rows from stored hunks. The sentinel
// hunks for empty-file changes have no body and so contribute no lines.
func lineRowsFor(hunks []record.HunkRow) []record.LineRow {
	var out []record.LineRow
	for _, r := range hunks {
		h := &patch.Hunk{
			OldLineStart:     r.OldLineStart,
			OldNumberOfLines: r.OldNumberOfLines,
			NewLineStart:     r.NewLineStart,
			NewNumberOfLines: r.NewNumberOfLines,
			SourceFilePath:   r.SourceFilePath,
			TargetFilePath:   r.TargetFilePath,
			Patch:            r.Patch,
		}
		h.ComputeLineNumbers()
		out = append(out, record.NewLineRows(r.CommitSHA, r.HunkIdx, h)...)
	}
	return out
}
