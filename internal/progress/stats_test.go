package progress

import (
	"math"
	"testing"
	"time"

	"github.com/laximgqozaZZZYT/vow-sub001/internal/model"
)

func TestSafePct(t *testing.T) {
	cases := []struct {
		name string
		n, d float64
		want float64
	}{
		{"half", 5, 10, 0.5},
		{"exact", 10, 10, 1},
		{"over clamps", 15, 10, 1},
		{"negative numerator clamps", -3, 10, 0},
		{"zero denominator", 5, 0, 0},
		{"negative denominator", 5, -10, 0},
		{"nan numerator", math.NaN(), 10, 0},
		{"nan denominator", 5, math.NaN(), 0},
		{"inf numerator", math.Inf(1), 10, 0},
		{"inf denominator", 5, math.Inf(1), 0},
		{"zero over zero", 0, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SafePct(tc.n, tc.d)
			if got != tc.want {
				t.Fatalf("SafePct(%v, %v) = %v, want %v", tc.n, tc.d, got, tc.want)
			}
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Fatalf("SafePct(%v, %v) not finite: %v", tc.n, tc.d, got)
			}
		})
	}
}

// atMidnight yields a timing whose full load is credited at day start, so
// any activity during the day finds the complete planned value.
func atMidnight() []model.Timing {
	return []model.Timing{{Type: model.TimingDaily, Start: "00:00", End: "00:00"}}
}

func recurringHabit(id, name string, total float64) model.Habit {
	return model.Habit{
		ID:            id,
		Name:          name,
		WorkloadTotal: total,
		Recurrence:    model.RecurrenceRecurring,
		Timings:       atMidnight(),
	}
}

func TestComputeStatsAchievement(t *testing.T) {
	now := time.Date(2024, time.March, 15, 14, 0, 0, 0, time.UTC)
	habits := []model.Habit{
		recurringHabit("done", "Done", 10),
		recurringHabit("untouched", "Untouched", 10),
	}
	acts := []model.Activity{
		{Kind: model.ActivityComplete, HabitID: "done", Timestamp: now.Add(-time.Hour), Amount: 10},
	}

	stats := ComputeStats(habits, acts, nil, nil, now, time.UTC)
	if stats.HabitsEligible != 2 {
		t.Fatalf("eligible %d, want 2", stats.HabitsEligible)
	}
	if stats.HabitsAchievedToday != 1 {
		t.Fatalf("achieved %d, want 1", stats.HabitsAchievedToday)
	}
	if stats.HabitsAchievedPct != 0.5 {
		t.Fatalf("achieved pct %v, want 0.5", stats.HabitsAchievedPct)
	}
	if stats.TodayRatios["done"] != 1 || stats.TodayRatios["untouched"] != 0 {
		t.Fatalf("ratios %v", stats.TodayRatios)
	}
}

func TestComputeStatsSkipsNonRecurring(t *testing.T) {
	now := time.Date(2024, time.March, 15, 14, 0, 0, 0, time.UTC)
	oneShot := model.Habit{ID: "once", WorkloadTotal: 5, Recurrence: model.RecurrenceNone, Timings: atMidnight()}
	legacyOneShot := model.Habit{ID: "legacy", WorkloadTotal: 5, Repeat: "does not repeat", Timings: atMidnight()}
	habits := []model.Habit{recurringHabit("daily", "Daily", 5), oneShot, legacyOneShot}

	stats := ComputeStats(habits, nil, nil, nil, now, time.UTC)
	if stats.HabitsEligible != 1 {
		t.Fatalf("eligible %d, want only the recurring habit", stats.HabitsEligible)
	}
	if _, ok := stats.TodayRatios["once"]; ok {
		t.Fatal("one-shot habit must not appear in today's ratios")
	}
}

func TestComputeStatsVisibleFilter(t *testing.T) {
	now := time.Date(2024, time.March, 15, 14, 0, 0, 0, time.UTC)
	habits := []model.Habit{
		recurringHabit("a", "A", 5),
		recurringHabit("b", "B", 5),
	}

	stats := ComputeStats(habits, nil, nil, map[string]bool{"b": true}, now, time.UTC)
	if stats.HabitsEligible != 1 {
		t.Fatalf("eligible %d, want 1", stats.HabitsEligible)
	}
	if _, ok := stats.TodayRatios["a"]; ok {
		t.Fatal("hidden habit leaked into stats")
	}
}

func TestComputeStatsRankings(t *testing.T) {
	now := time.Date(2024, time.March, 15, 14, 0, 0, 0, time.UTC)
	habits := []model.Habit{
		recurringHabit("a", "A", 10),
		recurringHabit("b", "B", 10),
		recurringHabit("c", "C", 10),
		recurringHabit("d", "D", 10),
		{ID: "unplanned", Name: "Unplanned", Recurrence: model.RecurrenceRecurring},
	}
	// Each habit completes a different share of its plan. The schedule-aware
	// credit caps at PlannedAsOf, so partial amounts still count as achieving
	// the whole day once the plan has delivered; instead we vary by which
	// habits recorded any activity at all versus ratios from distinct totals.
	acts := []model.Activity{
		{Kind: model.ActivityComplete, HabitID: "a", Timestamp: now, Amount: 10},
		{Kind: model.ActivityComplete, HabitID: "b", Timestamp: now, Amount: 10},
		{Kind: model.ActivityComplete, HabitID: "c", Timestamp: now, Amount: 10},
	}

	stats := ComputeStats(habits, acts, nil, nil, now, time.UTC)
	if len(stats.Top) != 3 {
		t.Fatalf("top size %d, want 3", len(stats.Top))
	}
	if len(stats.Worst) != 3 {
		t.Fatalf("worst size %d, want 3", len(stats.Worst))
	}
	for _, r := range stats.Top {
		if r.Ratio != 1 {
			t.Fatalf("top entry %+v, want ratio 1", r)
		}
	}
	if stats.Worst[0].HabitID != "d" || stats.Worst[0].Ratio != 0 {
		t.Fatalf("worst[0] = %+v, want habit d at 0", stats.Worst[0])
	}
	// The habit with no planned total today is excluded from both rankings.
	for _, r := range append(stats.Top, stats.Worst...) {
		if r.HabitID == "unplanned" {
			t.Fatal("habit without a planned total must not be ranked")
		}
	}
	// Equal ratios keep input order.
	if stats.Top[0].HabitID != "a" || stats.Top[1].HabitID != "b" || stats.Top[2].HabitID != "c" {
		t.Fatalf("tie order not stable: %+v", stats.Top)
	}
}

func TestComputeStatsRankingsShorterThanThree(t *testing.T) {
	now := time.Date(2024, time.March, 15, 14, 0, 0, 0, time.UTC)
	habits := []model.Habit{recurringHabit("a", "A", 5)}

	stats := ComputeStats(habits, nil, nil, nil, now, time.UTC)
	if len(stats.Top) != 1 || len(stats.Worst) != 1 {
		t.Fatalf("rank sizes %d/%d, want 1/1", len(stats.Top), len(stats.Worst))
	}
}

func TestComputeStatsGoals(t *testing.T) {
	now := time.Date(2024, time.March, 15, 14, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	goals := []model.Goal{
		{ID: "g1", IsCompleted: true, UpdatedAt: now.Add(-time.Hour)},
		{ID: "g2", IsCompleted: true, UpdatedAt: yesterday},
		{ID: "g3", IsCompleted: false, UpdatedAt: now},
	}

	stats := ComputeStats(nil, nil, goals, nil, now, time.UTC)
	if stats.GoalsTotal != 3 {
		t.Fatalf("goals total %d, want 3", stats.GoalsTotal)
	}
	if stats.GoalsCompleted != 2 {
		t.Fatalf("goals completed %d, want 2", stats.GoalsCompleted)
	}
	if stats.GoalsCompletedToday != 1 {
		t.Fatalf("goals completed today %d, want 1", stats.GoalsCompletedToday)
	}
	if math.Abs(stats.GoalsCompletedPct-2.0/3.0) > 1e-9 {
		t.Fatalf("goals pct %v", stats.GoalsCompletedPct)
	}
}
