package patch

// BlockNature describes the single kind of change a block holds.
type BlockNature int

const (
	NatureUntouched BlockNature = iota
	NatureAddedOnly
	NatureDeletedOnly
	NatureReplaced
)

// String returns the export name for the nature.
func (n BlockNature) String() string {
	switch n {
	case NatureAddedOnly:
		return "AddedOnly"
	case NatureDeletedOnly:
		return "DeletedOnly"
	case NatureReplaced:
		return "Replaced"
	default:
		return "Untouched"
	}
}

// Block is a maximal contiguous run of classified lines sharing one nature
// within a hunk. Index is 0-based within the hunk.
type Block struct {
	Nature BlockNature
	Index  int
	Lines  []Line
}

// Segment groups a hunk's classified lines into blocks. A new block starts
// at every transition between context and non-context lines. A non-context
// run holding only deletions is DeletedOnly, only additions AddedOnly, and
// both Replaced; standard diff tools emit the deleted lines of a replace
// before the added ones, so one run covers the whole operation. Blocks
// partition the input exactly: concatenating their lines in order yields
// the input sequence.
func Segment(lines []Line) []Block {
	if len(lines) == 0 {
		return nil
	}

	var blocks []Block
	runStart := 0
	runContext := lines[0].Kind == LineContext

	flush := func(end int) {
		run := lines[runStart:end]
		blocks = append(blocks, Block{
			Nature: natureOf(run),
			Index:  len(blocks),
			Lines:  run,
		})
	}

	for i := 1; i < len(lines); i++ {
		isContext := lines[i].Kind == LineContext
		if isContext != runContext {
			flush(i)
			runStart = i
			runContext = isContext
		}
	}
	flush(len(lines))

	return blocks
}

func natureOf(run []Line) BlockNature {
	var added, deleted bool
	for _, l := range run {
		switch l.Kind {
		case LineAdded:
			added = true
		case LineDeleted:
			deleted = true
		case LineContext:
			return NatureUntouched
		}
	}
	switch {
	case added && deleted:
		return NatureReplaced
	case added:
		return NatureAddedOnly
	default:
		return NatureDeletedOnly
	}
}
