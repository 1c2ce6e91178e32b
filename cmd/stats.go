package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/kragh/git-tally/internal/format"
	"github.com/kragh/git-tally/internal/index"
)

// RunStats summarizes the latest analyze and effort runs straight from the
// database.
func RunStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	jsonOut := fs.Bool("json", false, "Output as JSON")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: git-tally stats [--json]\n\nSummarizes the most recent analyze and effort runs.\n")
	}
	fs.Parse(reorderArgs(args))

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
		fmt.Println("No runs recorded yet. Run 'git-tally analyze' first.")
		return
	}

	var hunks, blocks, commits, files int
	db.QueryRow("SELECT COUNT(*) FROM hunks WHERE run_id = ?", analyzeRun).Scan(&hunks)
	db.QueryRow("SELECT COUNT(*) FROM blocks WHERE run_id = ?", analyzeRun).Scan(&blocks)
	db.QueryRow("SELECT COUNT(DISTINCT commit_sha) FROM hunks WHERE run_id = ?", analyzeRun).Scan(&commits)
	db.QueryRow("SELECT COUNT(DISTINCT target_file_path) FROM hunks WHERE run_id = ?", analyzeRun).Scan(&files)

	type natureCount struct {
		Nature string
		Count  int
	}
	var natures []natureCount
	rows, _ := db.Query(
		"SELECT block_nature, COUNT(*) as cnt FROM blocks WHERE run_id = ? GROUP BY block_nature ORDER BY cnt DESC",
		analyzeRun)
	if rows != nil {
		defer rows.Close()
		for rows.Next() {
			var nc natureCount
			rows.Scan(&nc.Nature, &nc.Count)
			natures = append(natures, nc)
		}
	}

	type fileCount struct {
		File  string
		Count int
	}
	var topFiles []fileCount
	rows2, _ := db.Query(
		"SELECT target_file_path, COUNT(*) as cnt FROM hunks WHERE run_id = ? GROUP BY target_file_path ORDER BY cnt DESC LIMIT 5",
		analyzeRun)
	if rows2 != nil {
		defer rows2.Close()
		for rows2.Next() {
			var fc fileCount
			rows2.Scan(&fc.File, &fc.Count)
			topFiles = append(topFiles, fc)
		}
	}

	var authors int
	var totalHours float64
	db.QueryRow("SELECT COUNT(*) FROM estimates WHERE run_id = ?", effortRun).Scan(&authors)
	db.QueryRow("SELECT COALESCE(SUM(hours), 0) FROM estimates WHERE run_id = ?", effortRun).Scan(&totalHours)

	if *jsonOut {
		naturesJSON := make([]map[string]any, len(natures))
		for i, n := range natures {
			naturesJSON[i] = map[string]any{"nature": n.Nature, "count": n.Count}
		}
		topFilesJSON := make([]map[string]any, len(topFiles))
		for i, f := range topFiles {
			topFilesJSON[i] = map[string]any{"file": f.File, "hunks": f.Count}
		}
		b, _ := json.MarshalIndent(map[string]any{
			"commits":       commits,
			"files":         files,
			"hunks":         hunks,
			"blocks":        blocks,
			"block_natures": naturesJSON,
			"top_files":     topFilesJSON,
			"authors":       authors,
			"total_hours":   totalHours,
		}, "", "  ")
		fmt.Println(string(b))
		return
	}

	fmt.Printf("%sgit-tally statistics%s\n\n", format.Bold, format.Reset)
	if analyzeRun != "" {
		fmt.Printf("  Commits:  %d\n", commits)
		fmt.Printf("  Files:    %d\n", files)
		fmt.Printf("  Hunks:    %d\n", hunks)
		fmt.Printf("  Blocks:   %d\n", blocks)
		for _, n := range natures {
			fmt.Printf("    %-12s %d\n", n.Nature, n.Count)
		}
		if len(topFiles) > 0 {
			fmt.Printf("\n  %sMost-changed files%s\n", format.Bold, format.Reset)
			for _, f := range topFiles {
				fmt.Printf("    %4d  %s\n", f.Count, f.File)
			}
		}
	}
	if effortRun != "" {
		fmt.Printf("\n  Authors:      %d\n", authors)
		fmt.Printf("  Total hours:  %.2f\n", totalHours)
	}
}
