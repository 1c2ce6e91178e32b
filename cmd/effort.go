package cmd

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/kragh/git-tally/internal/effort"
	"github.com/kragh/git-tally/internal/export"
	"github.com/kragh/git-tally/internal/format"
	"github.com/kragh/git-tally/internal/git"
	"github.com/kragh/git-tally/internal/index"
	"github.com/kragh/git-tally/internal/record"
)

// authorGroup collects one author's commits, keyed by email (name when the
// email is missing).
type authorGroup struct {
	Name    string
	Email   string
	Commits []git.CommitMeta
}

// RunEffort estimates hours per author over the selected commits and stores
// spans and totals as a new effort run.
func RunEffort(args []string) {
	fs := flag.NewFlagSet("effort", flag.ExitOnError)
	rev := fs.String("rev", "", "Revision or range to mine (default HEAD)")
	since := fs.String("since", "", "Only commits after this time (YYYY-MM-DD [HH:MM])")
	until := fs.String("until", "", "Only commits up to this time (YYYY-MM-DD [HH:MM])")
	author := fs.String("author", "", "Only this author")
	gap := fs.Int("gap", 0, "Session break threshold in minutes (overrides config)")
	credit := fs.Int("session-credit", 0, "Minutes credited to a session's first commit (overrides config)")
	spans := fs.Bool("spans", false, "Also print every span per author")
	noStore := fs.Bool("no-store", false, "Skip writing results to the database")
	jsonOut := fs.Bool("json", false, "Print the estimates as JSON instead of a table")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: git-tally effort [--rev <range>] [--since <t>] [--until <t>]
                        [--author <name>] [--gap <min>] [--session-credit <min>]
                        [--spans] [--no-store] [--json]

Groups commits by author and estimates hours worked: gaps shorter than the
threshold count in full, longer gaps start a new session and earn a fixed
credit instead.
`)
	}
	fs.Parse(reorderArgs(args))

	e := mustSetup()

	cfg := effort.Config{
		MaxCommitDiffMinutes:       e.Cfg.MaxCommitDiffMinutes,
		FirstCommitAdditionMinutes: e.Cfg.FirstCommitAdditionMinutes,
	}
	if *gap > 0 {
		cfg.MaxCommitDiffMinutes = *gap
	}
	if *credit > 0 {
		cfg.FirstCommitAdditionMinutes = *credit
	}

	commits, err := git.Commits(e.Root, logOptions(*rev, *since, *until, *author, 0))
	if err != nil {
		fatal("%v", err)
	}
	if len(commits) == 0 {
		fmt.Println("No commits in the selected range.")
		return
	}

	// Group by author, keeping first-seen order for stable output.
	byKey := map[string]*authorGroup{}
	var order []string
	for _, c := range commits {
		key := c.AuthorKey()
		g, ok := byKey[key]
		if !ok {
			g = &authorGroup{Name: c.AuthorName, Email: c.AuthorEmail}
			byKey[key] = g
			order = append(order, key)
		}
		g.Commits = append(g.Commits, c)
	}

	var estRows []record.EstimateRow
	spanRowsByKey := map[string][]record.SpanRow{}
	var spanRows []record.SpanRow
	for _, key := range order {
		g := byKey[key]
		ec := make([]effort.Commit, len(g.Commits))
		times := make([]time.Time, len(g.Commits))
		for i, c := range g.Commits {
			ec[i] = effort.Commit{ID: c.SHA, When: c.AuthorTime}
			times[i] = c.AuthorTime
		}
		for _, s := range effort.BuildSpans(ec, cfg) {
			row := record.NewSpanRow(g.Name, g.Email, s)
			spanRowsByKey[key] = append(spanRowsByKey[key], row)
			spanRows = append(spanRows, row)
		}
		estRows = append(estRows, record.EstimateRow{
			AuthorName:  g.Name,
			AuthorEmail: g.Email,
			Commits:     len(g.Commits),
			Hours:       effort.EstimateHours(times, cfg).Hours,
		})
	}

	sort.SliceStable(estRows, func(i, j int) bool {
		if estRows[i].Hours != estRows[j].Hours {
			return estRows[i].Hours > estRows[j].Hours
		}
		return estRows[i].AuthorEmail < estRows[j].AuthorEmail
	})

	if !*noStore {
		db, err := index.Open(e.Paths)
		if err != nil {
			fatal("%v", err)
		}
		defer db.Close()

		runID, err := index.NewRun(db, "effort", *rev)
		if err != nil {
			fatal("%v", err)
		}
		if err := index.InsertSpans(db, runID, spanRows); err != nil {
			fatal("storing spans: %v", err)
		}
		if err := index.InsertEstimates(db, runID, estRows); err != nil {
			fatal("storing estimates: %v", err)
		}
	}

	if *jsonOut {
		payload := struct {
			Estimates []record.EstimateRow `json:"Estimates"`
			Spans     []record.SpanRow     `json:"Spans,omitempty"`
		}{Estimates: estRows}
		if *spans {
			payload.Spans = spanRows
		}
		if err := export.JSON(os.Stdout, payload); err != nil {
			fatal("%v", err)
		}
		return
	}

	fmt.Print(format.EstimateTable(estRows))
	if *spans {
		for _, key := range order {
			g := byKey[key]
			fmt.Printf("\n%s%s%s\n", format.Bold, authorHeading(g.Name, g.Email), format.Reset)
			fmt.Print(format.SpanTable(spanRowsByKey[key]))
		}
	}
}

func authorHeading(name, email string) string {
	if name == "" {
		return email
	}
	if email == "" {
		return name
	}
	return fmt.Sprintf("%s <%s>", name, email)
}
