package progress

import (
	"math"
	"sort"
	"time"

	"github.com/laximgqozaZZZYT/vow-sub001/internal/model"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/schedule"
)

// Point is one step of a habit's cumulative planned-workload curve.
type Point struct {
	TS int64   `json:"ts"`
	V  float64 `json:"v"`
}

// BuildPlannedSeries walks every calendar day of the window and emits the
// habit's cumulative planned workload, one point per timing occurrence, keyed
// by the occurrence's end timestamp. An empty series means the habit has no
// planned curve in this window; callers must not extrapolate past the last
// point.
func BuildPlannedSeries(h model.Habit, w Window) []Point {
	total := h.DailyTarget()
	if total <= 0 || math.IsInf(total, 0) || math.IsNaN(total) {
		return nil
	}

	timings := effectiveTimings(h)
	base := schedule.Allocate(total, timings)

	loc := w.From.Location()
	firstDay := floorDay(w.From)
	lastDay := floorDay(w.Until.In(loc))

	var points []Point
	cumulative := 0.0
	for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		applying := applyingIndices(timings, day)
		if len(applying) == 0 {
			continue
		}

		// When only part of the timing set fires (some Weekly timings off
		// today), rescale the firing subset so the day still delivers the
		// full daily target.
		raw := 0.0
		for _, i := range applying {
			raw += base[i]
		}
		scale := 1.0
		if raw > 0 {
			scale = total / raw
		}

		for _, i := range applying {
			cumulative += base[i] * scale
			ts := day.Add(time.Duration(schedule.EndMinutes(timings[i])) * time.Minute)
			if w.Contains(ts) {
				points = append(points, Point{TS: ts.UnixMilli(), V: cumulative})
			}
		}
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].TS < points[j].TS })
	return dedupePoints(points)
}

// PlannedTotal is the highest value the planned series reaches in its window.
func PlannedTotal(points []Point) float64 {
	if len(points) == 0 {
		return 0
	}
	return points[len(points)-1].V
}

// PlannedAsOf is the planned cumulative value at or before ts, 0 before the
// first point.
func PlannedAsOf(points []Point, ts int64) float64 {
	value := 0.0
	for _, p := range points {
		if p.TS > ts {
			break
		}
		value = p.V
	}
	return value
}

// effectiveTimings resolves the habit's timing set, synthesizing a single
// daily timing from the legacy clock fields when the list is empty.
func effectiveTimings(h model.Habit) []model.Timing {
	if len(h.Timings) > 0 {
		return h.Timings
	}
	t := model.Timing{Type: model.TimingDaily, Start: h.Time, End: h.EndTime}
	if t.Start == "" && t.End == "" {
		t.Start = "00:00"
		t.End = "00:00"
	}
	return []model.Timing{t}
}

func applyingIndices(timings []model.Timing, day time.Time) []int {
	var applying []int
	for i, t := range timings {
		if schedule.AppliesOn(t, day) {
			applying = append(applying, i)
		}
	}
	return applying
}

func floorDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// dedupePoints collapses points sharing a timestamp, keeping the maximum
// cumulative value at that instant. Input must be sorted.
func dedupePoints(points []Point) []Point {
	if len(points) < 2 {
		return points
	}
	out := points[:1]
	for _, p := range points[1:] {
		last := &out[len(out)-1]
		if p.TS == last.TS {
			if p.V > last.V {
				last.V = p.V
			}
			continue
		}
		out = append(out, p)
	}
	return out
}
