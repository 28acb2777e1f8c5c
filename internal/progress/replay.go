package progress

import "github.com/laximgqozaZZZYT/vow-sub001/internal/model"

// Replay recomputes the prevCount/newCount chain for one habit's activities
// after an edit or deletion. The input is sorted by timestamp (ties stable by
// insertion order) and replayed from zero: complete entries advance the
// counter by their amount, start/pause/skip leave it untouched. Returns the
// replayed activities in chronological order and the final counter, which is
// the habit's authoritative count.
func Replay(acts []model.Activity) ([]model.Activity, float64) {
	out := make([]model.Activity, len(acts))
	copy(out, acts)
	SortActivities(out)

	running := 0.0
	for i := range out {
		out[i].PrevCount = running
		if out[i].Kind == model.ActivityComplete {
			amount := out[i].Amount
			if amount < 0 {
				amount = 0
			}
			out[i].NewCount = running + amount
			running = out[i].NewCount
		} else {
			out[i].NewCount = out[i].PrevCount
		}
	}
	return out, running
}

// CompletedFor reports whether count satisfies the habit's target. A habit
// with no measurable target counts as complete once touched.
func CompletedFor(h model.Habit, count float64) bool {
	total := h.DailyTarget()
	if total <= 0 {
		return true
	}
	return count >= total
}
