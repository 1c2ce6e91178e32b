// Package effort estimates developer hours from commit timestamps using a
// session-gap heuristic: consecutive commits closer together than a
// threshold count their real elapsed time, while a larger gap starts a new
// session and counts a fixed credit instead.
package effort

import (
	"math"
	"sort"
	"time"
)

// Config holds the two estimator thresholds, both in minutes.
type Config struct {
	// MaxCommitDiffMinutes is the session-break threshold: a gap of at
	// least this many minutes starts a new session.
	MaxCommitDiffMinutes int

	// FirstCommitAdditionMinutes is the fixed credit granted for a
	// session's first commit, standing in for unknown off-repository work.
	FirstCommitAdditionMinutes int
}

// DefaultConfig returns the standard 120/120 minute thresholds.
func DefaultConfig() Config {
	return Config{MaxCommitDiffMinutes: 120, FirstCommitAdditionMinutes: 120}
}

// Gap is the estimate detail for one consecutive commit pair.
type Gap struct {
	MinutesSincePrevious float64
	SessionInitial       bool
	HoursContributed     float64
}

// Estimate is one author's total with per-gap detail. Hours equals the sum
// of all HoursContributed, rounded once at the end.
type Estimate struct {
	Hours float64
	Gaps  []Gap
}

// EstimateHours folds an author's commit timestamps into an hours estimate.
// The input need not be sorted; duplicates are valid and contribute
// zero-length gaps. Fewer than two timestamps is a defined zero result,
// not an error.
func EstimateHours(times []time.Time, cfg Config) Estimate {
	if len(times) < 2 {
		return Estimate{}
	}

	sorted := make([]time.Time, len(times))
	copy(sorted, times)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	est := Estimate{Gaps: make([]Gap, 0, len(sorted)-1)}
	var sum float64

	for i := 1; i < len(sorted); i++ {
		minutes := sorted[i].Sub(sorted[i-1]).Minutes()
		g := Gap{MinutesSincePrevious: minutes}
		if minutes < float64(cfg.MaxCommitDiffMinutes) {
			g.HoursContributed = minutes / 60
		} else {
			g.SessionInitial = true
			g.HoursContributed = float64(cfg.FirstCommitAdditionMinutes) / 60
		}
		sum += g.HoursContributed
		est.Gaps = append(est.Gaps, g)
	}

	est.Hours = math.Round(sum*100) / 100
	return est
}
