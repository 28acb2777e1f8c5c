package progress

import (
	"math"
	"testing"
	"time"

	"github.com/laximgqozaZZZYT/vow-sub001/internal/model"
)

func dayWindow(t *testing.T, year int, month time.Month, day int) Window {
	t.Helper()
	start := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Window{From: start, Until: start.AddDate(0, 0, 1).Add(-time.Nanosecond)}
}

func TestBuildPlannedSeriesSingleDailyTiming(t *testing.T) {
	habit := model.Habit{
		ID:            "h1",
		WorkloadTotal: 10,
		Timings:       []model.Timing{{Type: model.TimingDaily, Start: "09:00", End: "10:00"}},
	}
	window := dayWindow(t, 2024, time.March, 15)

	points := BuildPlannedSeries(habit, window)
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	wantTS := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC).UnixMilli()
	if points[0].TS != wantTS {
		t.Fatalf("point at %d, want %d", points[0].TS, wantTS)
	}
	if math.Abs(points[0].V-10) > 1e-9 {
		t.Fatalf("point value %v, want 10", points[0].V)
	}
}

func TestBuildPlannedSeriesNoTarget(t *testing.T) {
	window := dayWindow(t, 2024, time.March, 15)
	for _, habit := range []model.Habit{
		{ID: "zero"},
		{ID: "negative", WorkloadTotal: -4},
		{ID: "nan", WorkloadTotal: math.NaN()},
	} {
		if points := BuildPlannedSeries(habit, window); len(points) != 0 {
			t.Fatalf("habit %s: expected empty series, got %d points", habit.ID, len(points))
		}
	}
}

func TestBuildPlannedSeriesLegacyTarget(t *testing.T) {
	// Legacy records carry must plus top-level clock fields instead of
	// workloadTotal and timings.
	habit := model.Habit{ID: "h1", Must: 6, Time: "08:00", EndTime: "09:00"}
	window := dayWindow(t, 2024, time.March, 15)

	points := BuildPlannedSeries(habit, window)
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	wantTS := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC).UnixMilli()
	if points[0].TS != wantTS || math.Abs(points[0].V-6) > 1e-9 {
		t.Fatalf("got point %+v, want ts=%d v=6", points[0], wantTS)
	}
}

func TestBuildPlannedSeriesWeeklyPairFullWeek(t *testing.T) {
	// One timing covers Mon/Wed/Fri, the other the remaining days; the two
	// never fire together, so each day the firing one is rescaled to the
	// full daily target.
	habit := model.Habit{
		ID:            "h1",
		WorkloadTotal: 7,
		Timings: []model.Timing{
			{Type: model.TimingWeekly, Cron: "WEEKDAYS:1,3,5", Start: "09:00", End: "10:00"},
			{Type: model.TimingWeekly, Cron: "WEEKDAYS:0,2,4,6", Start: "09:00", End: "09:30"},
		},
	}
	// 2024-03-11 is a Monday.
	from := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)
	window := Window{From: from, Until: from.AddDate(0, 0, 7).Add(-time.Nanosecond)}

	points := BuildPlannedSeries(habit, window)
	if len(points) != 7 {
		t.Fatalf("expected 7 points over the week, got %d", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].V < points[i-1].V {
			t.Fatalf("series not monotone at %d: %v < %v", i, points[i].V, points[i-1].V)
		}
	}
	last := points[len(points)-1].V
	if math.Abs(last-7*7) > 1e-6 {
		t.Fatalf("week total %v, want 49", last)
	}
}

func TestBuildPlannedSeriesDateTiming(t *testing.T) {
	habit := model.Habit{
		ID:            "h1",
		WorkloadTotal: 5,
		Timings:       []model.Timing{{Type: model.TimingDate, Date: "2024-03-16", End: "12:00"}},
	}
	from := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	window := Window{From: from, Until: from.AddDate(0, 0, 3).Add(-time.Nanosecond)}

	points := BuildPlannedSeries(habit, window)
	if len(points) != 1 {
		t.Fatalf("expected 1 point for a one-shot date timing, got %d", len(points))
	}
	wantTS := time.Date(2024, time.March, 16, 12, 0, 0, 0, time.UTC).UnixMilli()
	if points[0].TS != wantTS || math.Abs(points[0].V-5) > 1e-9 {
		t.Fatalf("got point %+v, want ts=%d v=5", points[0], wantTS)
	}
}

func TestBuildPlannedSeriesDedupesEqualTimestamps(t *testing.T) {
	habit := model.Habit{
		ID:            "h1",
		WorkloadTotal: 8,
		Timings: []model.Timing{
			{Type: model.TimingDaily, Start: "09:00", End: "10:00"},
			{Type: model.TimingDaily, Start: "09:30", End: "10:00"},
		},
	}
	window := dayWindow(t, 2024, time.March, 15)

	points := BuildPlannedSeries(habit, window)
	if len(points) != 1 {
		t.Fatalf("expected single deduped point, got %d", len(points))
	}
	// The kept value is the day's full cumulative, not the first emission.
	if math.Abs(points[0].V-8) > 1e-9 {
		t.Fatalf("deduped value %v, want 8", points[0].V)
	}
}

func TestBuildPlannedSeriesNoEndClockCreditsEndOfDay(t *testing.T) {
	habit := model.Habit{
		ID:            "h1",
		WorkloadTotal: 4,
		Timings:       []model.Timing{{Type: model.TimingDaily, Start: "09:00"}},
	}
	start := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	window := Window{From: start, Until: start.AddDate(0, 0, 1)}

	points := BuildPlannedSeries(habit, window)
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	if points[0].TS != start.AddDate(0, 0, 1).UnixMilli() {
		t.Fatalf("expected credit at end of day, got %d", points[0].TS)
	}
}

func TestPlannedAsOf(t *testing.T) {
	points := []Point{{TS: 100, V: 2}, {TS: 200, V: 5}}
	cases := []struct {
		ts   int64
		want float64
	}{
		{50, 0},
		{100, 2},
		{150, 2},
		{200, 5},
		{900, 5},
	}
	for _, tc := range cases {
		if got := PlannedAsOf(points, tc.ts); got != tc.want {
			t.Errorf("PlannedAsOf(%d) = %v, want %v", tc.ts, got, tc.want)
		}
	}
	if got := PlannedAsOf(nil, 10); got != 0 {
		t.Errorf("PlannedAsOf(nil) = %v, want 0", got)
	}
}
