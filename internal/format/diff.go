package format

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/kragh/git-tally/internal/patch"
)

// RenderHunk renders a decomposed hunk block by block: untouched blocks dim,
// added/deleted blocks colored, replaced blocks side by side with intra-line
// highlighting.
func RenderHunk(h *patch.Hunk) string {
	var out []string
	out = append(out, fmt.Sprintf("%s@@ -%d,%d +%d,%d @@%s",
		Cyan, h.OldLineStart, h.OldNumberOfLines, h.NewLineStart, h.NewNumberOfLines, Reset))

	for _, b := range h.Blocks {
		out = append(out, renderBlock(b))
	}
	return strings.Join(out, "\n")
}

func renderBlock(b patch.Block) string {
	var out []string
	switch b.Nature {
	case patch.NatureUntouched:
		for _, l := range b.Lines {
			out = append(out, fmt.Sprintf("  %s%4d  %s%s", Dim, l.NewNumber, body(l), Reset))
		}
	case patch.NatureAddedOnly:
		for _, l := range b.Lines {
			out = append(out, fmt.Sprintf("+ %s%4d  %s%s", Green, l.NewNumber, body(l), Reset))
		}
	case patch.NatureDeletedOnly:
		for _, l := range b.Lines {
			out = append(out, fmt.Sprintf("- %s%4d  %s%s", Red, l.OldNumber, body(l), Reset))
		}
	case patch.NatureReplaced:
		out = append(out, renderReplaced(b)...)
	}
	return strings.Join(out, "\n")
}

// renderReplaced pairs the i-th deleted line with the i-th added line and
// highlights the fragments that actually changed.
func renderReplaced(b patch.Block) []string {
	var deleted, added []patch.Line
	for _, l := range b.Lines {
		if l.Kind == patch.LineDeleted {
			deleted = append(deleted, l)
		} else {
			added = append(added, l)
		}
	}

	dmp := diffmatchpatch.New()
	var out []string

	n := len(deleted)
	if len(added) > n {
		n = len(added)
	}
	for i := 0; i < n; i++ {
		switch {
		case i >= len(added):
			out = append(out, fmt.Sprintf("- %s%4d  %s%s", Red, deleted[i].OldNumber, body(deleted[i]), Reset))
		case i >= len(deleted):
			out = append(out, fmt.Sprintf("+ %s%4d  %s%s", Green, added[i].NewNumber, body(added[i]), Reset))
		default:
			diffs := dmp.DiffMain(body(deleted[i]), body(added[i]), false)
			diffs = dmp.DiffCleanupSemantic(diffs)
			out = append(out,
				fmt.Sprintf("- %s%4d%s  %s", Red, deleted[i].OldNumber, Reset, highlight(diffs, diffmatchpatch.DiffDelete, Red)),
				fmt.Sprintf("+ %s%4d%s  %s", Green, added[i].NewNumber, Reset, highlight(diffs, diffmatchpatch.DiffInsert, Green)))
		}
	}
	return out
}

// highlight renders one side of a character diff, coloring only the
// fragments belonging to that side.
func highlight(diffs []diffmatchpatch.Diff, side diffmatchpatch.Operation, color string) string {
	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			sb.WriteString(d.Text)
		case side:
			sb.WriteString(color)
			sb.WriteString(d.Text)
			sb.WriteString(Reset)
		}
	}
	return sb.String()
}

// body strips the +/- marker a diff line carries in the raw patch text.
func body(l patch.Line) string {
	if l.Kind == patch.LineContext {
		return l.Text
	}
	return strings.TrimPrefix(strings.TrimPrefix(l.Text, "+"), "-")
}
