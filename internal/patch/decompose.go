package patch

import (
	"path/filepath"
	"strings"
)

// ChangeKind classifies one file's change for decomposition purposes.
// The three *Empty/RenamedOnly kinds are the closed set of "no content diff"
// cases that produce a single sentinel hunk instead of running the splitter.
type ChangeKind int

const (
	KindModified ChangeKind = iota
	KindAddedEmpty
	KindRenamedOnly
	KindDeletedEmpty
)

// Change describes one changed file as handed over by the repository layer.
type Change struct {
	SourcePath string // old path, relative to the source root
	TargetPath string // new path, relative to the target root
	Kind       ChangeKind
	Patch      string // raw unified-diff text, possibly empty
}

// Logger is the capability the decomposer uses for non-fatal warnings.
type Logger interface {
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Warnf(string, ...any) {}

// Options configures path resolution and warning output for Decompose.
type Options struct {
	SourceRoot string
	TargetRoot string
	Log        Logger
}

// Decompose turns one file's change into fully resolved hunks. Degenerate
// changes (empty-file add, pure rename, empty-file delete) yield exactly one
// sentinel hunk with zeroed ranges and an empty body, so every downstream
// consumer can rely on at least one hunk per file. Normal changes are split
// into hunks, each classified and segmented into blocks.
//
// A modified change whose patch has no recognizable hunk headers yields nil;
// that is the caller's signal that there is nothing to report for the file,
// not an error.
func Decompose(change Change, opts Options) []*Hunk {
	log := opts.Log
	if log == nil {
		log = nopLogger{}
	}

	src := resolvePath(opts.SourceRoot, change.SourcePath, log)
	dst := resolvePath(opts.TargetRoot, change.TargetPath, log)

	switch change.Kind {
	case KindAddedEmpty, KindRenamedOnly, KindDeletedEmpty:
		return []*Hunk{{SourceFilePath: src, TargetFilePath: dst}}
	}

	hunks := Split(change.Patch)
	for _, h := range hunks {
		h.SourceFilePath = src
		h.TargetFilePath = dst
		h.ComputeLineNumbers()
		h.Blocks = Segment(h.Lines)
	}
	return hunks
}

// resolvePath joins a root directory with a per-file relative path. Paths
// carrying a NUL byte cannot go through filepath.Join; those fall back to
// manual concatenation with separator trimming, with a warning.
func resolvePath(root, rel string, log Logger) string {
	if rel == "" {
		return ""
	}
	if root == "" {
		return rel
	}
	if strings.ContainsRune(root, 0) || strings.ContainsRune(rel, 0) {
		log.Warnf("invalid path characters, concatenating %q and %q manually", root, rel)
		return strings.TrimRight(root, "/\\") + string(filepath.Separator) + strings.TrimLeft(rel, "/\\")
	}
	return filepath.Join(root, rel)
}
