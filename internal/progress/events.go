package progress

import (
	"time"

	"github.com/laximgqozaZZZYT/vow-sub001/internal/model"
)

// Event is one point of a habit's actual-progress curve, carrying both the
// raw workload numbers and their schedule-relative ratios.
type Event struct {
	HabitID            string  `json:"habitId"`
	TS                 int64   `json:"ts"`
	ISO                string  `json:"iso"`
	Kind               string  `json:"kind"`
	WorkloadDelta      float64 `json:"workloadDelta"`
	WorkloadCumulative float64 `json:"workloadCumulative"`
	WorkloadTotal      float64 `json:"workloadTotal"`
	ProgressDelta      float64 `json:"progressDelta"`
	ProgressCumulative float64 `json:"progressCumulative"`
	WorkloadUnit       string  `json:"workloadUnit"`
}

// MergeClusters collapses activities of the same habit lying within gap of
// each other into one logical event: amounts sum, the cluster keeps the first
// timestamp and the last kind. The merged record's counters span the cluster,
// PrevCount from its first constituent and NewCount from its last, which in a
// replayed chain are the habit's counter before and after the whole cluster.
// Input must be sorted by timestamp; gap <= 0 disables merging. Merging an
// already-merged series is a no-op.
func MergeClusters(acts []model.Activity, gap time.Duration) []model.Activity {
	if gap <= 0 || len(acts) < 2 {
		return acts
	}

	out := make([]model.Activity, 0, len(acts))
	last := make(map[string]int) // habitID -> index in out of open cluster
	for _, a := range acts {
		if i, ok := last[a.HabitID]; ok && a.Timestamp.Sub(out[i].Timestamp) <= gap {
			out[i].Amount += a.Amount
			out[i].Kind = a.Kind
			out[i].NewCount = a.NewCount
			continue
		}
		out = append(out, a)
		last[a.HabitID] = len(out) - 1
	}
	return out
}

// BuildEvents derives the habit's actual cumulative series from its activity
// log over the window. Only complete entries move the cumulative value; pause
// entries are retained as zero-delta markers, start and skip entries carry no
// progress at all.
func BuildEvents(h model.Habit, acts []model.Activity, planned []Point, w Window, mergeGap time.Duration) []Event {
	filtered := make([]model.Activity, 0, len(acts))
	for _, a := range acts {
		if a.HabitID != h.ID {
			continue
		}
		if a.Kind != model.ActivityComplete && a.Kind != model.ActivityPause {
			continue
		}
		if !w.Contains(a.Timestamp) {
			continue
		}
		filtered = append(filtered, a)
	}
	SortActivities(filtered)
	filtered = MergeClusters(filtered, mergeGap)

	plannedTotal := PlannedTotal(planned)
	unit := h.Unit()

	events := make([]Event, 0, len(filtered))
	cumulative := 0.0
	for _, a := range filtered {
		delta := 0.0
		if a.Kind == model.ActivityComplete {
			delta = a.Amount
			if delta < 0 {
				delta = 0
			}
		}
		cumulative += delta
		events = append(events, Event{
			HabitID:            h.ID,
			TS:                 a.Timestamp.UnixMilli(),
			ISO:                a.Timestamp.UTC().Format(time.RFC3339Nano),
			Kind:               a.Kind,
			WorkloadDelta:      delta,
			WorkloadCumulative: cumulative,
			WorkloadTotal:      plannedTotal,
			ProgressDelta:      SafePct(delta, plannedTotal),
			ProgressCumulative: SafePct(cumulative, plannedTotal),
			WorkloadUnit:       unit,
		})
	}
	return events
}
