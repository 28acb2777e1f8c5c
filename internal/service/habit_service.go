package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/laximgqozaZZZYT/vow-sub001/internal/errors"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/model"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/repository"
)

type HabitService struct {
	habitRepo *repository.HabitRepository
}

func NewHabitService(habitRepo *repository.HabitRepository) *HabitService {
	return &HabitService{habitRepo: habitRepo}
}

type HabitInput struct {
	Name             string         `json:"name"`
	WorkloadTotal    float64        `json:"workloadTotal"`
	Must             float64        `json:"must"`
	WorkloadUnit     string         `json:"workloadUnit"`
	WorkloadPerCount float64        `json:"workloadPerCount"`
	Recurrence       string         `json:"recurrence"`
	Repeat           string         `json:"repeat"`
	Time             string         `json:"time"`
	EndTime          string         `json:"endTime"`
	Timings          []model.Timing `json:"timings"`
}

func (s *HabitService) Create(ctx context.Context, userID string, input HabitInput) (*model.Habit, *apperrors.APIError) {
	if input.Name == "" {
		return nil, apperrors.BadRequest("invalid_name", "name is required")
	}
	if apiErr := validateTimings(input.Timings); apiErr != nil {
		return nil, apiErr
	}

	now := time.Now().UTC()
	habit := model.Habit{
		ID:               uuid.NewString(),
		UserID:           userID,
		Name:             input.Name,
		WorkloadTotal:    input.WorkloadTotal,
		Must:             input.Must,
		WorkloadUnit:     input.WorkloadUnit,
		WorkloadPerCount: input.WorkloadPerCount,
		Recurrence:       resolveRecurrence(input),
		Repeat:           input.Repeat,
		Time:             input.Time,
		EndTime:          input.EndTime,
		Timings:          input.Timings,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.habitRepo.Create(ctx, &habit); err != nil {
		return nil, apperrors.Internal("failed to create habit")
	}
	return &habit, nil
}

func (s *HabitService) Update(ctx context.Context, userID, id string, input HabitInput) (*model.Habit, *apperrors.APIError) {
	if input.Name == "" {
		return nil, apperrors.BadRequest("invalid_name", "name is required")
	}
	if apiErr := validateTimings(input.Timings); apiErr != nil {
		return nil, apiErr
	}

	habit, err := s.habitRepo.GetByID(ctx, userID, id)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("habit_not_found", "habit not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get habit")
	}

	habit.Name = input.Name
	habit.WorkloadTotal = input.WorkloadTotal
	habit.Must = input.Must
	habit.WorkloadUnit = input.WorkloadUnit
	habit.WorkloadPerCount = input.WorkloadPerCount
	habit.Recurrence = resolveRecurrence(input)
	habit.Repeat = input.Repeat
	habit.Time = input.Time
	habit.EndTime = input.EndTime
	habit.Timings = input.Timings
	habit.UpdatedAt = time.Now().UTC()

	if err := s.habitRepo.Update(ctx, habit); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("habit_not_found", "habit not found")
		}
		return nil, apperrors.Internal("failed to update habit")
	}
	return habit, nil
}

func (s *HabitService) Get(ctx context.Context, userID, id string) (*model.Habit, *apperrors.APIError) {
	habit, err := s.habitRepo.GetByID(ctx, userID, id)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("habit_not_found", "habit not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get habit")
	}
	return habit, nil
}

func (s *HabitService) List(ctx context.Context, userID string) ([]model.Habit, *apperrors.APIError) {
	habits, err := s.habitRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list habits")
	}
	if habits == nil {
		habits = []model.Habit{}
	}
	return habits, nil
}

func (s *HabitService) Delete(ctx context.Context, userID, id string) *apperrors.APIError {
	err := s.habitRepo.Delete(ctx, userID, id)
	if err == repository.ErrNotFound {
		return apperrors.NotFound("habit_not_found", "habit not found")
	}
	if err != nil {
		return apperrors.Internal("failed to delete habit")
	}
	return nil
}

// resolveRecurrence prefers the explicit enum; records imported with only a
// free-text repeat value go through the compatibility shim.
func resolveRecurrence(input HabitInput) string {
	switch input.Recurrence {
	case model.RecurrenceRecurring, model.RecurrenceNone:
		return input.Recurrence
	}
	return model.RecurrenceFromRepeat(input.Repeat)
}

func validateTimings(timings []model.Timing) *apperrors.APIError {
	for _, t := range timings {
		switch t.Type {
		case model.TimingDate, model.TimingDaily, model.TimingWeekly, model.TimingMonthly:
		default:
			return apperrors.BadRequest("invalid_timing", "timing type must be one of Date, Daily, Weekly, Monthly")
		}
	}
	return nil
}
