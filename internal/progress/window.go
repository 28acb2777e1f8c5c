package progress

import (
	"sort"
	"time"

	"github.com/laximgqozaZZZYT/vow-sub001/internal/model"
)

// Window is a concrete query window. Symbolic range keys from the API are
// resolved to a Window before anything in this package runs.
type Window struct {
	From  time.Time
	Until time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.Until)
}

// MergeGap is the cluster width for absorbing duplicate rapid taps in short
// windows.
const MergeGap = 60 * time.Second

const (
	RangeAuto  = "auto"
	Range24h   = "24h"
	Range7d    = "7d"
	Range1mo   = "1mo"
	Range1y    = "1y"
)

// ResolveRange maps a symbolic range key to a concrete window ending at now.
// "auto" covers the current calendar day.
func ResolveRange(key string, now time.Time, loc *time.Location) (Window, bool) {
	switch key {
	case RangeAuto, "":
		start, end := DayBounds(now, loc)
		return Window{From: start, Until: end}, true
	case Range24h:
		return Window{From: now.Add(-24 * time.Hour), Until: now}, true
	case Range7d:
		return Window{From: now.AddDate(0, 0, -7), Until: now}, true
	case Range1mo:
		return Window{From: now.AddDate(0, -1, 0), Until: now}, true
	case Range1y:
		return Window{From: now.AddDate(-1, 0, 0), Until: now}, true
	}
	return Window{}, false
}

// MergeGapFor returns the cluster width used when aggregating activities for
// the given range key. Long windows render coarse enough that merging is not
// needed.
func MergeGapFor(key string) time.Duration {
	switch key {
	case RangeAuto, "", Range24h:
		return MergeGap
	}
	return 0
}

// DayBounds returns the inclusive start and end of the calendar day containing
// t in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// SortActivities orders activities by timestamp ascending, insertion order on
// ties.
func SortActivities(acts []model.Activity) {
	sort.SliceStable(acts, func(i, j int) bool {
		if acts[i].Timestamp.Equal(acts[j].Timestamp) {
			return acts[i].Seq < acts[j].Seq
		}
		return acts[i].Timestamp.Before(acts[j].Timestamp)
	})
}
