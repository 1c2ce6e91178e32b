package main

import (
	"fmt"
	"os"

	"github.com/kragh/git-tally/cmd"
)

var version = "dev"

func usage() {
	fmt.Fprintf(os.Stderr, `git-tally: mine commit history into hunks, blocks and effort estimates.

Usage:
    git-tally analyze [flags]     # decompose commits into hunks and blocks
    git-tally effort [flags]      # estimate hours worked per author
    git-tally stats [--json]      # summarize the latest runs
    git-tally export [flags]      # write runs out as CSV or JSON
    git-tally show [flags] [file] # render a commit's decomposed changes
    git-tally clones [flags]      # run an external clone detector
    git-tally --version

Run 'git-tally <command> -h' for command flags.
`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "analyze":
		cmd.RunAnalyze(os.Args[2:])
	case "effort":
		cmd.RunEffort(os.Args[2:])
	case "stats":
		cmd.RunStats(os.Args[2:])
	case "export":
		cmd.RunExport(os.Args[2:])
	case "show":
		cmd.RunShow(os.Args[2:])
	case "clones":
		cmd.RunClones(os.Args[2:])
	case "--version":
		fmt.Println("git-tally", version)
	default:
		fmt.Fprintf(os.Stderr, "git-tally: unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}
