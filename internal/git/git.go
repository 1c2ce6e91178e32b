package git

import (
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// CommitMeta is one mined commit: identity plus author attribution.
type CommitMeta struct {
	SHA         string
	AuthorName  string
	AuthorEmail string
	AuthorTime  time.Time // carries the original offset, compared as an instant
}

// AuthorKey groups commits by author: the email when present, else the name.
func (c CommitMeta) AuthorKey() string {
	if c.AuthorEmail != "" {
		return c.AuthorEmail
	}
	return c.AuthorName
}

// LogOptions narrows the commit listing.
type LogOptions struct {
	Rev      string // revision or range, e.g. "main" or "v1..v2"; empty = HEAD
	Since    time.Time
	Until    time.Time
	Author   string
	MaxCount int
}

// RevParseTopLevel returns the git repo root.
func RevParseTopLevel() (string, error) {
	out, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", fmt.Errorf("not inside a git repository")
	}
	return strings.TrimSpace(string(out)), nil
}

// Unit separator keeps author names containing tabs parseable.
const fieldSep = "\x1f"

// Commits lists non-merge commits via git log, oldest first.
func Commits(root string, opts LogOptions) ([]CommitMeta, error) {
	args := []string{
		"log", "--no-merges", "--reverse",
		"--pretty=format:%H" + fieldSep + "%an" + fieldSep + "%ae" + fieldSep + "%aI",
	}
	if !opts.Since.IsZero() {
		args = append(args, "--since="+opts.Since.Format(time.RFC3339))
	}
	if !opts.Until.IsZero() {
		args = append(args, "--until="+opts.Until.Format(time.RFC3339))
	}
	if opts.Author != "" {
		args = append(args, "--author="+opts.Author)
	}
	if opts.MaxCount > 0 {
		args = append(args, fmt.Sprintf("-n%d", opts.MaxCount))
	}
	if opts.Rev != "" {
		args = append(args, opts.Rev)
	}

	cmd := exec.Command("git", args...)
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git log: %w", err)
	}
	return parseCommits(string(out))
}

// parseCommits parses one %H<US>%an<US>%ae<US>%aI record per line.
func parseCommits(out string) ([]CommitMeta, error) {
	var commits []CommitMeta
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, fieldSep)
		if len(fields) != 4 {
			return nil, fmt.Errorf("malformed log record: %q", line)
		}
		when, err := time.Parse(time.RFC3339, fields[3])
		if err != nil {
			return nil, fmt.Errorf("commit %s: bad author date %q: %w", fields[0], fields[3], err)
		}
		commits = append(commits, CommitMeta{
			SHA:         fields[0],
			AuthorName:  fields[1],
			AuthorEmail: fields[2],
			AuthorTime:  when,
		})
	}
	return commits, nil
}
