// Package cmd implements the git-tally subcommands. Each Run* function owns
// its own flag set; main.go only dispatches.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kragh/git-tally/internal/config"
	"github.com/kragh/git-tally/internal/git"
	"github.com/kragh/git-tally/internal/project"
)

// env bundles the per-invocation context every subcommand needs.
type env struct {
	Root  string
	Paths project.Paths
	Cfg   config.Config
}

func mustSetup() env {
	root, err := project.FindRoot()
	if err != nil {
		fatal("%v", err)
	}
	cfg, err := config.Load(root)
	if err != nil {
		fatal("%v", err)
	}
	return env{Root: root, Paths: project.NewPaths(root), Cfg: cfg}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// logOptions builds the commit-listing filter from the shared flag values.
// Empty time bounds stay zero; bad ones abort.
func logOptions(rev, since, until, author string, max int) git.LogOptions {
	opts := git.LogOptions{Rev: rev, Author: author, MaxCount: max}
	var err error
	if since != "" {
		if opts.Since, err = config.ParseTimeBound(since); err != nil {
			fatal("bad --since: %v", err)
		}
	}
	if until != "" {
		if opts.Until, err = config.ParseTimeBound(until); err != nil {
			fatal("bad --until: %v", err)
		}
	}
	return opts
}

// exportDir picks the output directory: flag beats config beats default.
func exportDir(e env, flagValue string) string {
	switch {
	case flagValue != "":
		return flagValue
	case e.Cfg.ExportDir != "":
		return filepath.Join(e.Root, e.Cfg.ExportDir)
	default:
		return e.Paths.ExportDir
	}
}

// reorderArgs moves flags before positional args so flag.Parse works
// regardless of argument order (e.g. "show file --commit abc" works like
// "show --commit abc file").
func reorderArgs(args []string) []string {
	var flags, positional []string
	i := 0
	for i < len(args) {
		a := args[i]
		if len(a) > 0 && a[0] == '-' {
			flags = append(flags, a)
			// Check if this flag takes a value (next arg is not a flag)
			if i+1 < len(args) && (len(args[i+1]) == 0 || args[i+1][0] != '-') {
				// Known boolean flags that don't take a value
				switch a {
				case "--json", "--spans", "--no-store", "-v":
					// no value
				default:
					i++
					flags = append(flags, args[i])
				}
			}
		} else {
			positional = append(positional, a)
		}
		i++
	}
	return append(flags, positional...)
}
