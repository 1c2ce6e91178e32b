package git

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/kragh/git-tally/internal/patch"
)

// FileChange is one entry of a commit's name-status listing.
type FileChange struct {
	Status  byte   // A, M, D, R, C, T
	OldPath string // differs from NewPath only for renames and copies
	NewPath string
}

// CommitChanges lists the files a commit touched, with rename detection.
func CommitChanges(root, sha string) ([]FileChange, error) {
	cmd := exec.Command("git", "show", "--name-status", "--format=", "--find-renames", sha)
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git show --name-status %s: %w", sha, err)
	}
	return parseNameStatus(string(out))
}

// parseNameStatus parses tab-separated name-status lines:
//
//	M<TAB>path
//	R100<TAB>old<TAB>new
func parseNameStatus(out string) ([]FileChange, error) {
	var changes []FileChange
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		status := fields[0]
		if status == "" {
			return nil, fmt.Errorf("malformed name-status line: %q", line)
		}

		fc := FileChange{Status: status[0]}
		switch fc.Status {
		case 'R', 'C':
			if len(fields) != 3 {
				return nil, fmt.Errorf("malformed rename line: %q", line)
			}
			fc.OldPath = fields[1]
			fc.NewPath = fields[2]
		default:
			if len(fields) != 2 {
				return nil, fmt.Errorf("malformed name-status line: %q", line)
			}
			fc.OldPath = fields[1]
			fc.NewPath = fields[1]
		}
		changes = append(changes, fc)
	}
	return changes, nil
}

// FilePatch returns the raw unified diff a commit applies to one file.
// The returned text starts at the first @@ header; the diff/index/---/+++
// preamble is stripped so the splitter sees only hunk material.
func FilePatch(root, sha, path string) (string, error) {
	cmd := exec.Command("git", "show", "--format=", "--patch", "--find-renames", sha, "--", path)
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git show --patch %s -- %s: %w", sha, path, err)
	}
	return stripPreamble(string(out)), nil
}

// stripPreamble drops everything before the first hunk header line.
func stripPreamble(diff string) string {
	idx := strings.Index(diff, "\n@@ -")
	if idx >= 0 {
		return diff[idx+1:]
	}
	if strings.HasPrefix(diff, "@@ -") {
		return diff
	}
	return ""
}

// ChangeFor maps one name-status entry plus its patch text onto the
// decomposer's change descriptor. Adds, deletes and renames without any
// hunk material are the degenerate no-content-diff cases.
func ChangeFor(fc FileChange, patchText string) patch.Change {
	kind := patch.KindModified
	if patchText == "" {
		switch fc.Status {
		case 'A':
			kind = patch.KindAddedEmpty
		case 'D':
			kind = patch.KindDeletedEmpty
		case 'R':
			kind = patch.KindRenamedOnly
		}
	}
	return patch.Change{
		SourcePath: fc.OldPath,
		TargetPath: fc.NewPath,
		Kind:       kind,
		Patch:      patchText,
	}
}
