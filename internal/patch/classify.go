package patch

import "strings"

// LineKind distinguishes the three unified-diff line classifications.
type LineKind int

const (
	LineContext LineKind = iota
	LineAdded
	LineDeleted
)

// String returns the export name for the kind.
func (k LineKind) String() string {
	switch k {
	case LineAdded:
		return "Added"
	case LineDeleted:
		return "Deleted"
	default:
		return "Context"
	}
}

// Line is one physical line of a hunk body with its classification.
// Context lines carry both numbers; Added carries only NewNumber and
// Deleted only OldNumber — the other field is meaningless for those kinds.
type Line struct {
	Text      string
	OldNumber int
	NewNumber int
	Kind      LineKind
}

// Classify walks a hunk body one physical line at a time, maintaining two
// running counters initialized to the hunk's start values. A "-" prefix
// classifies the line as deleted at the current old counter and bumps only
// the old counter; "+" classifies it as added at the current new counter and
// bumps only the new counter. Everything else, empty lines included, is
// context: it carries both current values and bumps both counters.
func Classify(body string, oldStart, newStart int) []Line {
	if body == "" {
		return nil
	}

	oldNum := oldStart
	newNum := newStart

	raw := strings.Split(body, "\n")
	// A trailing newline produces one empty trailing element, not a line.
	if raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}

	lines := make([]Line, 0, len(raw))
	for _, text := range raw {
		switch {
		case strings.HasPrefix(text, "-"):
			lines = append(lines, Line{Text: text, OldNumber: oldNum, Kind: LineDeleted})
			oldNum++
		case strings.HasPrefix(text, "+"):
			lines = append(lines, Line{Text: text, NewNumber: newNum, Kind: LineAdded})
			newNum++
		default:
			lines = append(lines, Line{Text: text, OldNumber: oldNum, NewNumber: newNum, Kind: LineContext})
			oldNum++
			newNum++
		}
	}
	return lines
}
