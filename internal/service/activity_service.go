package service

import (
	"context"
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/laximgqozaZZZYT/vow-sub001/internal/errors"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/model"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/progress"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/repository"
)

// ActivityService owns the activity write path: logging user actions,
// retroactive edits and deletions, and the replay that keeps every
// prevCount/newCount pair and the habit's stored counter consistent with the
// chronological log.
type ActivityService struct {
	activityRepo  *repository.ActivityRepository
	habitRepo     *repository.HabitRepository
	autoSkipAfter time.Duration

	mu         sync.Mutex
	inFlight   map[string]struct{}
	skipTimers map[string]*time.Timer
}

func NewActivityService(
	activityRepo *repository.ActivityRepository,
	habitRepo *repository.HabitRepository,
	autoSkipAfter time.Duration,
) *ActivityService {
	return &ActivityService{
		activityRepo:  activityRepo,
		habitRepo:     habitRepo,
		autoSkipAfter: autoSkipAfter,
		inFlight:      make(map[string]struct{}),
		skipTimers:    make(map[string]*time.Timer),
	}
}

type LogActivityInput struct {
	ID              string
	Kind            string
	HabitID         string
	Timestamp       *time.Time
	Amount          *float64
	DurationSeconds int
}

type UpdateActivityInput struct {
	Kind      *string
	Timestamp *time.Time
	Amount    *float64
}

// Log records a user action against a habit. A second identical action
// arriving while the first is still being persisted is dropped silently.
// The returned activity is nil for a dropped duplicate.
func (s *ActivityService) Log(ctx context.Context, userID string, input LogActivityInput) (*model.Activity, *apperrors.APIError) {
	if !model.IsValidActivityKind(input.Kind) {
		return nil, apperrors.BadRequest("invalid_kind", "kind must be one of start, complete, skip, pause")
	}
	if input.HabitID == "" {
		return nil, apperrors.BadRequest("invalid_habit", "habitId is required")
	}

	key := input.Kind + "|" + input.HabitID
	if !s.acquire(key) {
		return nil, nil
	}
	defer s.release(key)

	now := time.Now().UTC()
	timestamp := now
	if input.Timestamp != nil {
		timestamp = input.Timestamp.UTC()
	}

	tx, err := s.activityRepo.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to start transaction")
	}
	defer tx.Rollback()

	habit, err := s.habitRepo.GetTx(ctx, tx, userID, input.HabitID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("habit_not_found", "habit not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get habit")
	}

	activity := model.Activity{
		ID:              serverID(input.ID),
		UserID:          userID,
		Kind:            input.Kind,
		HabitID:         habit.ID,
		HabitName:       habit.Name,
		Timestamp:       timestamp,
		DurationSeconds: input.DurationSeconds,
		Status:          model.ActivityConfirmed,
	}

	switch input.Kind {
	case model.ActivityComplete:
		if input.Amount != nil {
			activity.Amount = normalizeAmount(*input.Amount)
		} else {
			// The already-paused portion was credited when the pause was
			// recorded as an offset; the completion only adds the rest.
			activity.Amount = normalizeAmount(habit.PerCount() - habit.PausedLoad)
		}
		habit.PausedLoad = 0
		habit.LastCompletedAt = &timestamp

		if apiErr := s.absorbOpenStartTx(ctx, tx, userID, habit.ID, &activity); apiErr != nil {
			return nil, apiErr
		}
	case model.ActivityPause:
		if input.Amount != nil {
			activity.Amount = normalizeAmount(*input.Amount)
		}
		habit.PausedLoad = activity.Amount
	}

	if err := s.activityRepo.InsertTx(ctx, tx, &activity); err != nil {
		return nil, apperrors.Internal("failed to create activity")
	}

	replayed, apiErr := s.replayHabitTx(ctx, tx, habit, now)
	if apiErr != nil {
		return nil, apiErr
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return nil, apperrors.Internal("failed to commit transaction")
	}

	switch input.Kind {
	case model.ActivityStart:
		s.scheduleAutoSkip(userID, habit.ID)
	default:
		s.cancelAutoSkip(habit.ID)
	}

	return findActivity(replayed, activity.ID), nil
}

// Update applies a retroactive edit and replays the habit's whole log so
// every later entry's counters stay consistent.
func (s *ActivityService) Update(ctx context.Context, userID, id string, input UpdateActivityInput) (*model.Activity, *apperrors.APIError) {
	now := time.Now().UTC()

	tx, err := s.activityRepo.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to start transaction")
	}
	defer tx.Rollback()

	activity, err := s.activityRepo.GetTx(ctx, tx, userID, id)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("activity_not_found", "activity not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get activity")
	}

	habit, err := s.habitRepo.GetTx(ctx, tx, userID, activity.HabitID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("habit_not_found", "habit not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get habit")
	}

	if input.Kind != nil {
		if !model.IsValidActivityKind(*input.Kind) {
			return nil, apperrors.BadRequest("invalid_kind", "kind must be one of start, complete, skip, pause")
		}
		activity.Kind = *input.Kind
	}
	if input.Timestamp != nil {
		activity.Timestamp = input.Timestamp.UTC()
	}
	if input.Amount != nil {
		activity.Amount = normalizeAmount(*input.Amount)
	}
	if activity.Kind == model.ActivityComplete && activity.Amount <= 0 {
		activity.Amount = habit.PerCount()
	}
	if activity.Kind == model.ActivityPause {
		habit.PausedLoad = activity.Amount
	}

	if err := s.activityRepo.UpdateTx(ctx, tx, activity); err != nil {
		return nil, apperrors.Internal("failed to update activity")
	}

	replayed, apiErr := s.replayHabitTx(ctx, tx, habit, now)
	if apiErr != nil {
		return nil, apiErr
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return nil, apperrors.Internal("failed to commit transaction")
	}

	return findActivity(replayed, activity.ID), nil
}

// Delete removes an activity; the habit's counter first rolls back to the
// deleted record's prevCount and the replay then settles the final value.
func (s *ActivityService) Delete(ctx context.Context, userID, id string) *apperrors.APIError {
	now := time.Now().UTC()

	tx, err := s.activityRepo.BeginTx(ctx)
	if err != nil {
		return apperrors.Internal("failed to start transaction")
	}
	defer tx.Rollback()

	activity, err := s.activityRepo.GetTx(ctx, tx, userID, id)
	if err == repository.ErrNotFound {
		return apperrors.NotFound("activity_not_found", "activity not found")
	}
	if err != nil {
		return apperrors.Internal("failed to get activity")
	}

	habit, err := s.habitRepo.GetTx(ctx, tx, userID, activity.HabitID)
	if err == repository.ErrNotFound {
		return apperrors.NotFound("habit_not_found", "habit not found")
	}
	if err != nil {
		return apperrors.Internal("failed to get habit")
	}

	if err := s.activityRepo.DeleteTx(ctx, tx, userID, id); err != nil {
		return apperrors.Internal("failed to delete activity")
	}

	habit.Count = activity.PrevCount
	if _, apiErr := s.replayHabitTx(ctx, tx, habit, now); apiErr != nil {
		return apiErr
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return apperrors.Internal("failed to commit transaction")
	}
	return nil
}

func (s *ActivityService) List(ctx context.Context, userID string, from, until time.Time) ([]model.Activity, *apperrors.APIError) {
	activities, err := s.activityRepo.ListByUser(ctx, userID, from, until)
	if err != nil {
		return nil, apperrors.Internal("failed to list activities")
	}
	if activities == nil {
		activities = []model.Activity{}
	}
	return activities, nil
}

// replayHabitTx rebuilds the habit's prevCount/newCount chain from scratch
// and persists whatever changed, then writes the habit's derived counters.
func (s *ActivityService) replayHabitTx(ctx context.Context, tx *sql.Tx, habit *model.Habit, now time.Time) ([]model.Activity, *apperrors.APIError) {
	activities, err := s.activityRepo.ListByHabitTx(ctx, tx, habit.UserID, habit.ID)
	if err != nil {
		return nil, apperrors.Internal("failed to list habit activities")
	}

	replayed, finalCount := progress.Replay(activities)
	for i := range replayed {
		if replayed[i].PrevCount == activities[i].PrevCount && replayed[i].NewCount == activities[i].NewCount {
			continue
		}
		if err := s.activityRepo.UpdateTx(ctx, tx, &replayed[i]); err != nil {
			return nil, apperrors.Internal("failed to propagate activity counters")
		}
	}

	habit.Count = finalCount
	habit.Completed = progress.CompletedFor(*habit, finalCount)
	habit.UpdatedAt = now
	if err := s.habitRepo.UpdateCountersTx(ctx, tx, habit); err != nil {
		return nil, apperrors.Internal("failed to update habit counters")
	}
	return replayed, nil
}

// absorbOpenStartTx merges an unmatched trailing start entry into the
// completion being logged, moving the session onto a single complete record
// with its measured duration.
func (s *ActivityService) absorbOpenStartTx(ctx context.Context, tx *sql.Tx, userID, habitID string, completion *model.Activity) *apperrors.APIError {
	activities, err := s.activityRepo.ListByHabitTx(ctx, tx, userID, habitID)
	if err != nil {
		return apperrors.Internal("failed to list habit activities")
	}
	if len(activities) == 0 {
		return nil
	}
	last := activities[len(activities)-1]
	if last.Kind != model.ActivityStart {
		return nil
	}
	if completion.DurationSeconds == 0 {
		elapsed := int(completion.Timestamp.Sub(last.Timestamp).Seconds())
		if elapsed > 0 {
			completion.DurationSeconds = elapsed
		}
	}
	if err := s.activityRepo.DeleteTx(ctx, tx, userID, last.ID); err != nil {
		return apperrors.Internal("failed to merge session start")
	}
	return nil
}

// scheduleAutoSkip arms a timer that records a skip if the started session is
// never completed. A later complete/pause/skip on the same habit disarms it.
func (s *ActivityService) scheduleAutoSkip(userID, habitID string) {
	if s.autoSkipAfter <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.skipTimers[habitID]; ok {
		timer.Stop()
	}
	s.skipTimers[habitID] = time.AfterFunc(s.autoSkipAfter, func() {
		s.mu.Lock()
		delete(s.skipTimers, habitID)
		s.mu.Unlock()

		_, apiErr := s.Log(context.Background(), userID, LogActivityInput{
			Kind:    model.ActivitySkip,
			HabitID: habitID,
		})
		if apiErr != nil {
			log.Printf("auto-skip habit %s: %s", habitID, apiErr.Message)
		}
	})
}

func (s *ActivityService) cancelAutoSkip(habitID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.skipTimers[habitID]; ok {
		timer.Stop()
		delete(s.skipTimers, habitID)
	}
}

func (s *ActivityService) acquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inFlight[key]; ok {
		return false
	}
	s.inFlight[key] = struct{}{}
	return true
}

func (s *ActivityService) release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, key)
}

// serverID replaces empty and client-generated local ids with a uuid.
func serverID(id string) string {
	if id == "" || model.IsLocalID(id) {
		return uuid.NewString()
	}
	return id
}

func normalizeAmount(amount float64) float64 {
	if amount < 0 {
		return 0
	}
	return amount
}

func findActivity(activities []model.Activity, id string) *model.Activity {
	for i := range activities {
		if activities[i].ID == id {
			return &activities[i]
		}
	}
	return nil
}
