package progress

import (
	"math"
	"sort"
	"time"

	"github.com/laximgqozaZZZYT/vow-sub001/internal/model"
)

// SafePct is the ratio primitive used everywhere a percentage is derived.
// It returns n/d clamped to [0,1], and 0 whenever d <= 0 or either input is
// non-finite. It never yields NaN or Infinity.
func SafePct(n, d float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	if d <= 0 {
		return 0
	}
	r := n / d
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

type HabitRank struct {
	HabitID string  `json:"habitId"`
	Name    string  `json:"name"`
	Ratio   float64 `json:"ratio"`
}

type Stats struct {
	HabitsEligible      int                `json:"habitsEligible"`
	HabitsAchievedToday int                `json:"habitsAchievedToday"`
	HabitsAchievedPct   float64            `json:"habitsAchievedPct"`
	TodayRatios         map[string]float64 `json:"todayRatios"`
	Top                 []HabitRank        `json:"top"`
	Worst               []HabitRank        `json:"worst"`
	GoalsTotal          int                `json:"goalsTotal"`
	GoalsCompleted      int                `json:"goalsCompleted"`
	GoalsCompletedToday int                `json:"goalsCompletedToday"`
	GoalsCompletedPct   float64            `json:"goalsCompletedPct"`
}

const rankSize = 3

// ComputeStats derives today's achievement summary over the visible recurring
// habits plus goal completion counts. visible == nil means every habit is
// visible. Habits without a positive planned total for today get ratio 0 and
// are excluded from the rankings.
func ComputeStats(
	habits []model.Habit,
	activities []model.Activity,
	goals []model.Goal,
	visible map[string]bool,
	now time.Time,
	loc *time.Location,
) Stats {
	todayStart, todayEnd := DayBounds(now, loc)
	today := Window{From: todayStart, Until: todayEnd}

	stats := Stats{TodayRatios: make(map[string]float64)}

	var ranked []HabitRank
	for _, h := range habits {
		if visible != nil && !visible[h.ID] {
			continue
		}
		if !h.IsRecurring() {
			continue
		}
		stats.HabitsEligible++

		planned := BuildPlannedSeries(h, today)
		plannedTotal := PlannedTotal(planned)

		// Completion credit is schedule-aware: each actual event is worth at
		// most what the plan has delivered by that instant.
		done := 0.0
		for _, a := range activities {
			if a.HabitID != h.ID || !today.Contains(a.Timestamp) {
				continue
			}
			if v := PlannedAsOf(planned, a.Timestamp.UnixMilli()); v > done {
				done = v
			}
		}

		ratio := SafePct(done, plannedTotal)
		stats.TodayRatios[h.ID] = ratio
		if ratio >= 1 {
			stats.HabitsAchievedToday++
		}
		if plannedTotal > 0 {
			ranked = append(ranked, HabitRank{HabitID: h.ID, Name: h.Name, Ratio: ratio})
		}
	}

	stats.HabitsAchievedPct = SafePct(float64(stats.HabitsAchievedToday), float64(stats.HabitsEligible))
	stats.Top = topRanks(ranked, false)
	stats.Worst = topRanks(ranked, true)

	stats.GoalsTotal = len(goals)
	for _, g := range goals {
		if g.IsCompleted {
			stats.GoalsCompleted++
		}
		if g.AchievedOn(now, loc) {
			stats.GoalsCompletedToday++
		}
	}
	stats.GoalsCompletedPct = SafePct(float64(stats.GoalsCompleted), float64(stats.GoalsTotal))

	return stats
}

func topRanks(ranked []HabitRank, ascending bool) []HabitRank {
	out := make([]HabitRank, len(ranked))
	copy(out, ranked)
	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return out[i].Ratio < out[j].Ratio
		}
		return out[i].Ratio > out[j].Ratio
	})
	if len(out) > rankSize {
		out = out[:rankSize]
	}
	return out
}
