package effort

import (
	"reflect"
	"testing"
	"time"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func at(minutes float64) time.Time {
	return t0.Add(time.Duration(minutes * float64(time.Minute)))
}

func TestEstimateHours_FewerThanTwo(t *testing.T) {
	if got := EstimateHours(nil, DefaultConfig()); got.Hours != 0 || len(got.Gaps) != 0 {
		t.Errorf("no timestamps = %+v, want zero", got)
	}
	if got := EstimateHours([]time.Time{t0}, DefaultConfig()); got.Hours != 0 || len(got.Gaps) != 0 {
		t.Errorf("one timestamp = %+v, want zero", got)
	}
}

func TestEstimateHours_ShortGap(t *testing.T) {
	est := EstimateHours([]time.Time{t0, at(30)}, DefaultConfig())
	if est.Hours != 0.50 {
		t.Errorf("hours = %v, want 0.50", est.Hours)
	}
	if len(est.Gaps) != 1 || est.Gaps[0].SessionInitial {
		t.Errorf("gap = %+v, want one non-session-initial gap", est.Gaps)
	}
	if est.Gaps[0].MinutesSincePrevious != 30 {
		t.Errorf("minutes = %v, want 30", est.Gaps[0].MinutesSincePrevious)
	}
}

func TestEstimateHours_SessionBreak(t *testing.T) {
	est := EstimateHours([]time.Time{t0, at(200)}, DefaultConfig())
	if est.Hours != 2.00 {
		t.Errorf("hours = %v, want 2.00", est.Hours)
	}
	if !est.Gaps[0].SessionInitial {
		t.Error("a 200-minute gap with threshold 120 must be session-initial")
	}
}

func TestEstimateHours_ThresholdBoundary(t *testing.T) {
	// A gap of exactly the threshold is a session break.
	est := EstimateHours([]time.Time{t0, at(120)}, DefaultConfig())
	if !est.Gaps[0].SessionInitial {
		t.Error("gap equal to the threshold must be session-initial")
	}
}

func TestEstimateHours_UnsortedInput(t *testing.T) {
	a := EstimateHours([]time.Time{at(90), t0, at(30)}, DefaultConfig())
	b := EstimateHours([]time.Time{t0, at(30), at(90)}, DefaultConfig())
	if !reflect.DeepEqual(a, b) {
		t.Errorf("unsorted input changes the result:\n%+v\n%+v", a, b)
	}
}

func TestEstimateHours_DuplicateTimestamps(t *testing.T) {
	est := EstimateHours([]time.Time{t0, t0, at(60)}, DefaultConfig())
	if len(est.Gaps) != 2 {
		t.Fatalf("got %d gaps, want 2", len(est.Gaps))
	}
	if est.Gaps[0].MinutesSincePrevious != 0 || est.Gaps[0].HoursContributed != 0 {
		t.Errorf("duplicate gap = %+v, want zero-length contribution", est.Gaps[0])
	}
	if est.Hours != 1.00 {
		t.Errorf("hours = %v, want 1.00", est.Hours)
	}
}

func TestEstimateHours_RoundsOnceAtTheEnd(t *testing.T) {
	// Two 7.5-minute gaps contribute 0.125 h each. Rounding per term would
	// give 0.13+0.13 = 0.26; a single final rounding gives 0.25.
	est := EstimateHours([]time.Time{t0, at(7.5), at(15)}, DefaultConfig())
	if est.Hours != 0.25 {
		t.Errorf("hours = %v, want 0.25 (single final rounding)", est.Hours)
	}
	sum := 0.0
	for _, g := range est.Gaps {
		sum += g.HoursContributed
	}
	if est.Hours != 0.25 || sum != 0.25 {
		t.Errorf("gap sum = %v, hours = %v", sum, est.Hours)
	}
}

func TestEstimateHours_TimezonesCompareAsInstants(t *testing.T) {
	east := time.FixedZone("east", 2*3600)
	// Same instant expressed in two zones, then 30 minutes later.
	a := time.Date(2024, 3, 1, 11, 0, 0, 0, east) // == t0
	est := EstimateHours([]time.Time{a, at(30)}, DefaultConfig())
	if est.Hours != 0.50 {
		t.Errorf("hours = %v, want 0.50", est.Hours)
	}
}
