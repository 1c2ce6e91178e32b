package format

import (
	"fmt"
	"strings"

	"github.com/kragh/git-tally/internal/record"
)

// EstimateTable renders per-author hour totals, widest contributor first.
func EstimateTable(rows []record.EstimateRow) string {
	if len(rows) == 0 {
		return Dim + "no commits to estimate" + Reset
	}

	nameW := len("Author")
	for _, r := range rows {
		if w := runeLen(authorLabel(r.AuthorName, r.AuthorEmail)); w > nameW {
			nameW = w
		}
	}

	var out []string
	out = append(out, fmt.Sprintf("  %s%s  %8s  %7s%s",
		Bold, padOrTrunc("Author", nameW), "Commits", "Hours", Reset))
	var totalHours float64
	var totalCommits int
	for _, r := range rows {
		out = append(out, fmt.Sprintf("  %s  %8d  %7.2f",
			padOrTrunc(authorLabel(r.AuthorName, r.AuthorEmail), nameW), r.Commits, r.Hours))
		totalHours += r.Hours
		totalCommits += r.Commits
	}
	out = append(out, fmt.Sprintf("  %s%s  %8d  %7.2f%s",
		Bold, padOrTrunc("total", nameW), totalCommits, totalHours, Reset))
	return strings.Join(out, "\n")
}

// SpanTable renders one author's spans in commit order.
func SpanTable(rows []record.SpanRow) string {
	var out []string
	out = append(out, fmt.Sprintf("  %s%-10s  %-10s  %7s  %s%s",
		Bold, "since", "until", "hours", "session", Reset))

	for _, r := range rows {
		since := shortSHA(r.SinceCommitId)
		if r.IsInitialSpan {
			since = Dim + padOrTrunc("(initial)", 10) + Reset
		} else {
			since = padOrTrunc(since, 10)
		}
		marker := ""
		if r.IsSessionInitialSpan {
			marker = Yellow + "new session" + Reset
		}
		out = append(out, fmt.Sprintf("  %s  %-10s  %7.2f  %s",
			since, shortSHA(r.UntilCommitId), r.Hours, marker))
	}
	return strings.Join(out, "\n")
}

func authorLabel(name, email string) string {
	if name == "" {
		return email
	}
	if email == "" {
		return name
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}

func padOrTrunc(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		return string(r[:w])
	}
	return s + strings.Repeat(" ", w-len(r))
}

func runeLen(s string) int {
	return len([]rune(s))
}
