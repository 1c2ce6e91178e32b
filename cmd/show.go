package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/kragh/git-tally/internal/format"
	"github.com/kragh/git-tally/internal/git"
	"github.com/kragh/git-tally/internal/patch"
)

// RunShow renders a commit's decomposed hunks block by block, with
// intra-line highlighting on replaced blocks.
func RunShow(args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	commit := fs.String("commit", "HEAD", "Commit to show")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: git-tally show [--commit <sha>] [<file>]

Renders the commit's changes the way the analyzer sees them: one section per
hunk, segmented into untouched, added, deleted and replaced blocks.
`)
	}
	fs.Parse(reorderArgs(args))
	file := fs.Arg(0)

	e := mustSetup()
	changes, err := git.CommitChanges(e.Root, *commit)
	if err != nil {
		fatal("%v", err)
	}

	dopts := patch.Options{SourceRoot: e.Root, TargetRoot: e.Root}
	shown := 0
	for _, fc := range changes {
		if file != "" && fc.NewPath != file && fc.OldPath != file {
			continue
		}
		text, err := git.FilePatch(e.Root, *commit, fc.NewPath)
		if err != nil {
			fatal("%v", err)
		}
		ch := git.ChangeFor(fc, text)
		hunks := patch.Decompose(ch, dopts)

		fmt.Printf("%s%s%s", format.Bold, fc.NewPath, format.Reset)
		if fc.OldPath != fc.NewPath {
			fmt.Printf("  %s(from %s)%s", format.Dim, fc.OldPath, format.Reset)
		}
		fmt.Println()

		if len(hunks) == 0 {
			fmt.Printf("  %s(no recognizable hunks)%s\n\n", format.Dim, format.Reset)
			continue
		}
		for _, h := range hunks {
			if h.RepresentsEmptyFile() {
				fmt.Printf("  %s(no content changes)%s\n", format.Dim, format.Reset)
				continue
			}
			fmt.Print(format.RenderHunk(h))
		}
		fmt.Println()
		shown++
	}

	if file != "" && shown == 0 {
		fatal("%s: not changed in %s", file, *commit)
	}
}
