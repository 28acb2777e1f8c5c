package schedule

import (
	"math"
	"testing"
	"time"

	"github.com/laximgqozaZZZYT/vow-sub001/internal/model"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		raw     string
		minutes int
		ok      bool
	}{
		{"09:30", 570, true},
		{"00:00", 0, true},
		{"23:59", 1439, true},
		{"", 0, false},
		{"24:00", 0, false},
		{"nine", 0, false},
		{"09:30:00", 0, false},
	}
	for _, tc := range cases {
		minutes, ok := ParseClock(tc.raw)
		if ok != tc.ok || minutes != tc.minutes {
			t.Errorf("ParseClock(%q) = (%d, %v), want (%d, %v)", tc.raw, minutes, ok, tc.minutes, tc.ok)
		}
	}
}

func TestDurationMinutes(t *testing.T) {
	cases := []struct {
		name   string
		timing model.Timing
		want   int
	}{
		{"morning hour", model.Timing{Start: "09:00", End: "10:30"}, 90},
		{"end before start", model.Timing{Start: "10:00", End: "09:00"}, 0},
		{"equal clocks", model.Timing{Start: "09:00", End: "09:00"}, 0},
		{"missing end", model.Timing{Start: "09:00"}, 0},
		{"missing start", model.Timing{End: "10:00"}, 0},
		{"garbage", model.Timing{Start: "aa", End: "bb"}, 0},
	}
	for _, tc := range cases {
		if got := DurationMinutes(tc.timing); got != tc.want {
			t.Errorf("%s: DurationMinutes = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestAppliesOn(t *testing.T) {
	// 2024-03-11 is a Monday.
	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	sunday := monday.AddDate(0, 0, -1)

	cases := []struct {
		name   string
		timing model.Timing
		day    time.Time
		want   bool
	}{
		{"daily always", model.Timing{Type: model.TimingDaily}, monday, true},
		{"date match", model.Timing{Type: model.TimingDate, Date: "2024-03-11"}, monday, true},
		{"date mismatch", model.Timing{Type: model.TimingDate, Date: "2024-03-12"}, monday, false},
		{"date invalid", model.Timing{Type: model.TimingDate, Date: "not-a-date"}, monday, false},
		{"date missing", model.Timing{Type: model.TimingDate}, monday, false},
		{"weekly allowed", model.Timing{Type: model.TimingWeekly, Cron: "WEEKDAYS:1,3,5"}, monday, true},
		{"weekly excluded", model.Timing{Type: model.TimingWeekly, Cron: "WEEKDAYS:1,3,5"}, sunday, false},
		{"weekly empty list matches nothing", model.Timing{Type: model.TimingWeekly, Cron: "WEEKDAYS:"}, monday, false},
		{"weekly no cron fires daily", model.Timing{Type: model.TimingWeekly}, sunday, true},
		{"weekly foreign cron fires daily", model.Timing{Type: model.TimingWeekly, Cron: "0 9 * * 1"}, sunday, true},
		{"monthly match", model.Timing{Type: model.TimingMonthly, Date: "2024-01-11"}, monday, true},
		{"monthly mismatch", model.Timing{Type: model.TimingMonthly, Date: "2024-01-12"}, monday, false},
		{"monthly missing date fires daily", model.Timing{Type: model.TimingMonthly}, monday, true},
		{"unknown type never fires", model.Timing{Type: "Hourly"}, monday, false},
	}
	for _, tc := range cases {
		if got := AppliesOn(tc.timing, tc.day); got != tc.want {
			t.Errorf("%s: AppliesOn = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestAllocateProportional(t *testing.T) {
	timings := []model.Timing{
		{Type: model.TimingDaily, Start: "09:00", End: "10:00"},
		{Type: model.TimingDaily, Start: "14:00", End: "14:30"},
	}
	allocs := Allocate(9, timings)
	if len(allocs) != 2 {
		t.Fatalf("expected 2 allocations, got %d", len(allocs))
	}
	if math.Abs(allocs[0]-6) > 1e-9 || math.Abs(allocs[1]-3) > 1e-9 {
		t.Fatalf("expected [6 3], got %v", allocs)
	}
}

func TestAllocateEqualSplit(t *testing.T) {
	timings := []model.Timing{
		{Type: model.TimingDaily},
		{Type: model.TimingDaily},
		{Type: model.TimingDaily},
	}
	allocs := Allocate(9, timings)
	for i, a := range allocs {
		if math.Abs(a-3) > 1e-9 {
			t.Fatalf("allocation %d = %v, want 3", i, a)
		}
	}
}

func TestAllocateSumsToTotal(t *testing.T) {
	const total = 11.5
	for n := 1; n <= 10; n++ {
		timings := make([]model.Timing, 0, n)
		for i := 0; i < n; i++ {
			timing := model.Timing{Type: model.TimingDaily}
			// Mix of dated and undated timings.
			if i%3 != 0 {
				timing.Start = "08:00"
				timing.End = time.Date(0, 1, 1, 8+i, 7*i%60, 0, 0, time.UTC).Format("15:04")
			}
			timings = append(timings, timing)
		}
		allocs := Allocate(total, timings)
		sum := 0.0
		for _, a := range allocs {
			sum += a
		}
		if math.Abs(sum-total) > 1e-6 {
			t.Fatalf("n=%d: allocations sum to %v, want %v", n, sum, total)
		}
	}
}

func TestAllocateEmpty(t *testing.T) {
	if allocs := Allocate(10, nil); allocs != nil {
		t.Fatalf("expected nil for empty timing set, got %v", allocs)
	}
}
