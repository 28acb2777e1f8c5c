package service

import (
	"context"
	"time"

	apperrors "github.com/laximgqozaZZZYT/vow-sub001/internal/errors"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/progress"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/repository"
)

// ProgressService is the read side: it loads the user's collections and runs
// the pure planned/actual computation over them.
type ProgressService struct {
	habitRepo    *repository.HabitRepository
	activityRepo *repository.ActivityRepository
	goalRepo     *repository.GoalRepository
	loc          *time.Location
}

func NewProgressService(
	habitRepo *repository.HabitRepository,
	activityRepo *repository.ActivityRepository,
	goalRepo *repository.GoalRepository,
	loc *time.Location,
) *ProgressService {
	return &ProgressService{
		habitRepo:    habitRepo,
		activityRepo: activityRepo,
		goalRepo:     goalRepo,
		loc:          loc,
	}
}

type HabitSeries struct {
	HabitID      string           `json:"habitId"`
	Name         string           `json:"name"`
	WorkloadUnit string           `json:"workloadUnit"`
	Planned      []progress.Point `json:"planned"`
	Events       []progress.Event `json:"events"`
}

type SeriesView struct {
	FromTs  int64         `json:"fromTs"`
	UntilTs int64         `json:"untilTs"`
	Habits  []HabitSeries `json:"habits"`
}

// Series builds the planned and actual curves for every requested habit over
// a symbolic range.
func (s *ProgressService) Series(ctx context.Context, userID, rangeKey string, habitIDs []string) (*SeriesView, *apperrors.APIError) {
	now := time.Now().In(s.loc)
	window, ok := progress.ResolveRange(rangeKey, now, s.loc)
	if !ok {
		return nil, apperrors.BadRequest("invalid_range", "range must be one of auto, 24h, 7d, 1mo, 1y")
	}
	mergeGap := progress.MergeGapFor(rangeKey)

	habits, err := s.habitRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list habits")
	}
	activities, err := s.activityRepo.ListByUser(ctx, userID, window.From, window.Until)
	if err != nil {
		return nil, apperrors.Internal("failed to list activities")
	}

	visible := visibleSet(habitIDs)
	view := SeriesView{
		FromTs:  window.From.UnixMilli(),
		UntilTs: window.Until.UnixMilli(),
		Habits:  []HabitSeries{},
	}
	for _, h := range habits {
		if visible != nil && !visible[h.ID] {
			continue
		}
		planned := progress.BuildPlannedSeries(h, window)
		events := progress.BuildEvents(h, activities, planned, window, mergeGap)
		if planned == nil {
			planned = []progress.Point{}
		}
		view.Habits = append(view.Habits, HabitSeries{
			HabitID:      h.ID,
			Name:         h.Name,
			WorkloadUnit: h.Unit(),
			Planned:      planned,
			Events:       events,
		})
	}
	return &view, nil
}

// Stats computes today's achievement summary over the visible habits plus
// goal completion counts.
func (s *ProgressService) Stats(ctx context.Context, userID string, habitIDs []string) (*progress.Stats, *apperrors.APIError) {
	now := time.Now().In(s.loc)
	todayStart, todayEnd := progress.DayBounds(now, s.loc)

	habits, err := s.habitRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list habits")
	}
	activities, err := s.activityRepo.ListByUser(ctx, userID, todayStart, todayEnd)
	if err != nil {
		return nil, apperrors.Internal("failed to list activities")
	}
	goals, err := s.goalRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list goals")
	}

	stats := progress.ComputeStats(habits, activities, goals, visibleSet(habitIDs), now, s.loc)
	return &stats, nil
}

func visibleSet(habitIDs []string) map[string]bool {
	if len(habitIDs) == 0 {
		return nil
	}
	visible := make(map[string]bool, len(habitIDs))
	for _, id := range habitIDs {
		if id != "" {
			visible[id] = true
		}
	}
	if len(visible) == 0 {
		return nil
	}
	return visible
}
