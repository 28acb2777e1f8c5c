package progress

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/laximgqozaZZZYT/vow-sub001/internal/model"
)

func completeAt(habitID string, ts time.Time, amount float64) model.Activity {
	return model.Activity{
		ID:        habitID + "-" + ts.Format(time.RFC3339Nano),
		Kind:      model.ActivityComplete,
		HabitID:   habitID,
		Timestamp: ts,
		Amount:    amount,
	}
}

func TestMergeClustersSumsRapidTaps(t *testing.T) {
	base := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	acts := []model.Activity{
		completeAt("h1", base, 2),
		completeAt("h1", base.Add(20*time.Second), 3),
		completeAt("h1", base.Add(50*time.Second), 1),
		completeAt("h1", base.Add(2*time.Minute), 4),
	}

	merged := MergeClusters(acts, MergeGap)
	if len(merged) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(merged))
	}
	if merged[0].Amount != 6 {
		t.Fatalf("cluster amount %v, want 6", merged[0].Amount)
	}
	if !merged[0].Timestamp.Equal(base) {
		t.Fatalf("cluster keeps first timestamp, got %v", merged[0].Timestamp)
	}
	if merged[1].Amount != 4 {
		t.Fatalf("second cluster amount %v, want 4", merged[1].Amount)
	}
}

func TestMergeClustersAnchorsOnClusterStart(t *testing.T) {
	// Three taps each 40s apart: the third is within 60s of the second but
	// not of the cluster start, so it opens a new cluster.
	base := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	acts := []model.Activity{
		completeAt("h1", base, 1),
		completeAt("h1", base.Add(40*time.Second), 1),
		completeAt("h1", base.Add(80*time.Second), 1),
	}

	merged := MergeClusters(acts, MergeGap)
	if len(merged) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(merged))
	}
	if merged[0].Amount != 2 || merged[1].Amount != 1 {
		t.Fatalf("amounts %v/%v, want 2/1", merged[0].Amount, merged[1].Amount)
	}
}

func TestMergeClustersKeepsLastKind(t *testing.T) {
	base := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	acts := []model.Activity{
		{Kind: model.ActivityPause, HabitID: "h1", Timestamp: base, Amount: 2},
		{Kind: model.ActivityComplete, HabitID: "h1", Timestamp: base.Add(10 * time.Second), Amount: 3},
	}

	merged := MergeClusters(acts, MergeGap)
	if len(merged) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(merged))
	}
	if merged[0].Kind != model.ActivityComplete {
		t.Fatalf("cluster kind %q, want complete", merged[0].Kind)
	}
	if merged[0].Amount != 5 {
		t.Fatalf("cluster amount %v, want 5", merged[0].Amount)
	}
}

func TestMergeClustersCountersSpanCluster(t *testing.T) {
	// A replayed chain: complete +3, then a pause (counter untouched), then
	// complete +2. Merged, the record carries the counter before the cluster
	// and after it, whatever kind closes the cluster.
	base := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	acts := []model.Activity{
		{Kind: model.ActivityComplete, HabitID: "h1", Timestamp: base, Amount: 3, PrevCount: 4, NewCount: 7},
		{Kind: model.ActivityPause, HabitID: "h1", Timestamp: base.Add(10 * time.Second), Amount: 1, PrevCount: 7, NewCount: 7},
		{Kind: model.ActivityComplete, HabitID: "h1", Timestamp: base.Add(20 * time.Second), Amount: 2, PrevCount: 7, NewCount: 9},
	}

	merged := MergeClusters(acts, MergeGap)
	if len(merged) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(merged))
	}
	if merged[0].PrevCount != 4 || merged[0].NewCount != 9 {
		t.Fatalf("cluster counters (%v,%v), want the (4,9) span", merged[0].PrevCount, merged[0].NewCount)
	}
}

func TestMergeClustersSeparateHabits(t *testing.T) {
	base := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	acts := []model.Activity{
		completeAt("h1", base, 1),
		completeAt("h2", base.Add(5*time.Second), 1),
		completeAt("h1", base.Add(10*time.Second), 1),
	}

	merged := MergeClusters(acts, MergeGap)
	if len(merged) != 2 {
		t.Fatalf("expected per-habit clusters, got %d", len(merged))
	}
}

func TestMergeClustersIdempotent(t *testing.T) {
	base := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	acts := []model.Activity{
		completeAt("h1", base, 2),
		completeAt("h1", base.Add(30*time.Second), 3),
		completeAt("h1", base.Add(5*time.Minute), 1),
		completeAt("h2", base.Add(5*time.Minute+10*time.Second), 4),
	}

	once := MergeClusters(acts, MergeGap)
	twice := MergeClusters(once, MergeGap)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("re-merging changed the series:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestMergeClustersDisabled(t *testing.T) {
	base := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	acts := []model.Activity{
		completeAt("h1", base, 1),
		completeAt("h1", base.Add(time.Second), 1),
	}
	if got := MergeClusters(acts, 0); len(got) != 2 {
		t.Fatalf("gap 0 must not merge, got %d entries", len(got))
	}
}

func TestBuildEventsReachesFullProgress(t *testing.T) {
	habit := model.Habit{
		ID:            "h1",
		WorkloadTotal: 10,
		Timings:       []model.Timing{{Type: model.TimingDaily, Start: "09:00", End: "10:00"}},
	}
	window := dayWindow(t, 2024, time.March, 15)
	planned := BuildPlannedSeries(habit, window)

	acts := []model.Activity{
		completeAt("h1", time.Date(2024, time.March, 15, 9, 20, 0, 0, time.UTC), 4),
		completeAt("h1", time.Date(2024, time.March, 15, 9, 50, 0, 0, time.UTC), 6),
	}
	events := BuildEvents(habit, acts, planned, window, 0)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	last := events[len(events)-1]
	if math.Abs(last.WorkloadCumulative-10) > 1e-9 {
		t.Fatalf("cumulative %v, want 10", last.WorkloadCumulative)
	}
	if math.Abs(last.ProgressCumulative-1.0) > 1e-9 {
		t.Fatalf("progress %v, want 1.0", last.ProgressCumulative)
	}
	if last.WorkloadUnit != model.DefaultWorkloadUnit {
		t.Fatalf("unit %q, want %q", last.WorkloadUnit, model.DefaultWorkloadUnit)
	}
}

func TestBuildEventsFiltersKindsAndWindow(t *testing.T) {
	habit := model.Habit{ID: "h1", WorkloadTotal: 10}
	window := dayWindow(t, 2024, time.March, 15)
	inDay := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	acts := []model.Activity{
		{Kind: model.ActivityStart, HabitID: "h1", Timestamp: inDay},
		{Kind: model.ActivitySkip, HabitID: "h1", Timestamp: inDay.Add(time.Minute)},
		completeAt("h1", inDay.Add(2*time.Minute), 3),
		completeAt("h1", inDay.AddDate(0, 0, -1), 9), // outside window
		completeAt("h2", inDay, 5),                   // other habit
	}
	events := BuildEvents(habit, acts, nil, window, 0)
	if len(events) != 1 {
		t.Fatalf("expected only the in-window complete, got %d events", len(events))
	}
	if events[0].WorkloadDelta != 3 {
		t.Fatalf("delta %v, want 3", events[0].WorkloadDelta)
	}
}

func TestBuildEventsPauseIsZeroDeltaMarker(t *testing.T) {
	habit := model.Habit{ID: "h1", WorkloadTotal: 10}
	window := dayWindow(t, 2024, time.March, 15)
	ts := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	acts := []model.Activity{
		completeAt("h1", ts, 4),
		{Kind: model.ActivityPause, HabitID: "h1", Timestamp: ts.Add(10 * time.Minute), Amount: 2},
	}
	events := BuildEvents(habit, acts, nil, window, 0)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	pause := events[1]
	if pause.Kind != model.ActivityPause || pause.WorkloadDelta != 0 {
		t.Fatalf("pause event %+v, want zero delta", pause)
	}
	if pause.WorkloadCumulative != 4 {
		t.Fatalf("pause cumulative %v, want 4", pause.WorkloadCumulative)
	}
}

func TestBuildEventsClampsNegativeAmounts(t *testing.T) {
	habit := model.Habit{ID: "h1", WorkloadTotal: 10}
	window := dayWindow(t, 2024, time.March, 15)
	ts := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	events := BuildEvents(habit, []model.Activity{completeAt("h1", ts, -3)}, nil, window, 0)
	if len(events) != 1 || events[0].WorkloadDelta != 0 || events[0].WorkloadCumulative != 0 {
		t.Fatalf("negative amount must not regress the series, got %+v", events)
	}
}
