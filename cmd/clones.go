package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kragh/git-tally/internal/export"
	"github.com/kragh/git-tally/internal/format"
	"github.com/kragh/git-tally/internal/git"
	"github.com/kragh/git-tally/internal/tools"
)

// RunClones feeds a commit's changed files to the configured external
// clone-detection tool and prints its matches.
func RunClones(args []string) {
	fs := flag.NewFlagSet("clones", flag.ExitOnError)
	tool := fs.String("tool", "", "Clone detector binary (overrides config)")
	commit := fs.String("commit", "HEAD", "Commit whose changed files to scan")
	timeout := fs.Duration("timeout", time.Minute, "Detector timeout")
	jsonOut := fs.Bool("json", false, "Output matches as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: git-tally clones [--tool <bin>] [--commit <sha>] [--timeout <d>] [--json]

Runs an external clone detector over the files a commit changed. The tool
receives a JSON file list on stdin and prints matches on stdout; configure
it via the clone_tool key in .tally.yml or --tool.
`)
	}
	fs.Parse(reorderArgs(args))

	e := mustSetup()
	bin := *tool
	if bin == "" {
		bin = e.Cfg.CloneTool
	}
	if bin == "" {
		fatal("no clone tool configured (set clone_tool in .tally.yml or pass --tool)")
	}

	changes, err := git.CommitChanges(e.Root, *commit)
	if err != nil {
		fatal("%v", err)
	}
	var files []string
	for _, fc := range changes {
		if fc.Status == 'D' {
			continue
		}
		files = append(files, filepath.Join(e.Root, fc.NewPath))
	}
	if len(files) == 0 {
		fmt.Println("No files to scan.")
		return
	}

	det := tools.ExecDetector{Bin: bin, Timeout: *timeout}
	matches, err := det.Detect(context.Background(), files)
	if err != nil {
		fatal("%v", err)
	}

	if *jsonOut {
		if err := export.JSON(os.Stdout, matches); err != nil {
			fatal("%v", err)
		}
		return
	}
	if len(matches) == 0 {
		fmt.Println("No clones detected.")
		return
	}
	for _, m := range matches {
		fmt.Printf("%5.1f%%  %s%s%s  %s\n",
			m.Similarity*100, format.Cyan, m.FileA, format.Reset, m.FileB)
	}
}
