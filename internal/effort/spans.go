package effort

import (
	"sort"
	"time"
)

// Commit is the minimal commit identity the span builder needs.
type Commit struct {
	ID   string
	When time.Time // author timestamp, compared as an absolute instant
}

// Span is the interval between two consecutive commits by one author,
// annotated with the estimated hours and session/initial flags. Exactly one
// span per author is the synthetic initial span: it has no SinceID, zero
// hours, and both flags set.
type Span struct {
	InitialID        string // the author's first commit, same on every span
	SinceID          string // empty only on the initial span
	UntilID          string
	Hours            float64
	IsInitial        bool
	IsSessionInitial bool
}

// BuildSpans sorts an author's commits by timestamp and yields the synthetic
// initial span followed by one span per consecutive commit pair. The
// estimator runs exactly once over all timestamps, so the per-span flags and
// hours are consistent with the aggregate total.
func BuildSpans(commits []Commit, cfg Config) []Span {
	if len(commits) == 0 {
		return nil
	}

	sorted := make([]Commit, len(commits))
	copy(sorted, commits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].When.Before(sorted[j].When) })

	first := sorted[0].ID
	spans := make([]Span, 0, len(sorted))
	spans = append(spans, Span{
		InitialID:        first,
		UntilID:          first,
		IsInitial:        true,
		IsSessionInitial: true,
	})

	times := make([]time.Time, len(sorted))
	for i, c := range sorted {
		times[i] = c.When
	}
	est := EstimateHours(times, cfg)

	for i, g := range est.Gaps {
		spans = append(spans, Span{
			InitialID:        first,
			SinceID:          sorted[i].ID,
			UntilID:          sorted[i+1].ID,
			Hours:            g.HoursContributed,
			IsSessionInitial: g.SessionInitial,
		})
	}
	return spans
}
