package patch

import (
	"regexp"
	"strconv"
	"strings"
)

// Hunk is one contiguous change region of a unified diff, anchored by an
// "@@ -a,b +c,d @@" header. Split fills the header fields and body;
// Decompose attaches paths, classified lines and blocks.
type Hunk struct {
	OldLineStart     int
	OldNumberOfLines int
	NewLineStart     int
	NewNumberOfLines int

	SourceFilePath string
	TargetFilePath string

	// Patch is the hunk body: the text strictly between this hunk's header
	// and the next header (or end of input), without the header line itself.
	Patch string

	// LinesAdded holds new-file line numbers of added lines, ascending.
	// LinesDeleted holds old-file line numbers of deleted lines, ascending.
	// Both are filled by ComputeLineNumbers.
	LinesAdded   []int
	LinesDeleted []int

	Lines  []Line
	Blocks []Block
}

// RepresentsEmptyFile reports whether this is the sentinel hunk emitted for
// changes with no content diff (empty-file add, pure rename, empty-file
// delete): all four range fields zero and an empty body.
func (h *Hunk) RepresentsEmptyFile() bool {
	return h.OldLineStart == 0 && h.OldNumberOfLines == 0 &&
		h.NewLineStart == 0 && h.NewNumberOfLines == 0 &&
		h.Patch == ""
}

// ComputeLineNumbers classifies the hunk body and records the added and
// deleted line-number lists. Must run after the header fields are final;
// running it on a half-built hunk produces numbers off by the start values.
func (h *Hunk) ComputeLineNumbers() {
	h.Lines = Classify(h.Patch, h.OldLineStart, h.NewLineStart)
	h.LinesAdded = nil
	h.LinesDeleted = nil
	for _, l := range h.Lines {
		switch l.Kind {
		case LineAdded:
			h.LinesAdded = append(h.LinesAdded, l.NewNumber)
		case LineDeleted:
			h.LinesDeleted = append(h.LinesDeleted, l.OldNumber)
		}
	}
}

// hunkHeaderRe matches a unified-diff hunk header line. The "<start>,"
// prefixes are optional; the counts are not. Trailing section text after the
// closing @@ is consumed but ignored.
var hunkHeaderRe = regexp.MustCompile(`(?m)^@@ -(?:(\d+),)?(\d+) \+(?:(\d+),)?(\d+) @@.*$`)

// Split parses the raw multi-hunk patch text for one file into hunks.
// Lines that do not match the header grammar are never hunk boundaries;
// a patch with no recognizable headers yields zero hunks, which the caller
// decides how to treat.
func Split(patchText string) []*Hunk {
	matches := hunkHeaderRe.FindAllStringSubmatchIndex(patchText, -1)
	if len(matches) == 0 {
		return nil
	}

	hunks := make([]*Hunk, 0, len(matches))
	for i, m := range matches {
		h := &Hunk{
			OldLineStart:     groupInt(patchText, m, 1),
			OldNumberOfLines: groupInt(patchText, m, 2),
			NewLineStart:     groupInt(patchText, m, 3),
			NewNumberOfLines: groupInt(patchText, m, 4),
		}

		bodyStart := m[1]
		bodyEnd := len(patchText)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}
		body := patchText[bodyStart:bodyEnd]
		h.Patch = strings.TrimPrefix(body, "\n")

		hunks = append(hunks, h)
	}
	return hunks
}

// groupInt returns capture group n as an int, or 0 when the group is absent
// (the optional start prefixes default to 0).
func groupInt(s string, m []int, n int) int {
	lo, hi := m[2*n], m[2*n+1]
	if lo < 0 {
		return 0
	}
	v, err := strconv.Atoi(s[lo:hi])
	if err != nil {
		return 0
	}
	return v
}
