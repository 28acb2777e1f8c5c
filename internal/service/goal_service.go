package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/laximgqozaZZZYT/vow-sub001/internal/errors"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/model"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/repository"
)

type GoalService struct {
	goalRepo *repository.GoalRepository
}

func NewGoalService(goalRepo *repository.GoalRepository) *GoalService {
	return &GoalService{goalRepo: goalRepo}
}

type GoalInput struct {
	Name        string `json:"name"`
	ParentID    string `json:"parentId"`
	IsCompleted bool   `json:"isCompleted"`
}

func (s *GoalService) Create(ctx context.Context, userID string, input GoalInput) (*model.Goal, *apperrors.APIError) {
	if input.Name == "" {
		return nil, apperrors.BadRequest("invalid_name", "name is required")
	}
	if input.ParentID != "" {
		if _, err := s.goalRepo.GetByID(ctx, userID, input.ParentID); err == repository.ErrNotFound {
			return nil, apperrors.BadRequest("invalid_parent", "parent goal not found")
		} else if err != nil {
			return nil, apperrors.Internal("failed to get parent goal")
		}
	}

	now := time.Now().UTC()
	goal := model.Goal{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        input.Name,
		ParentID:    input.ParentID,
		IsCompleted: input.IsCompleted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.goalRepo.Create(ctx, &goal); err != nil {
		return nil, apperrors.Internal("failed to create goal")
	}
	return &goal, nil
}

func (s *GoalService) Update(ctx context.Context, userID, id string, input GoalInput) (*model.Goal, *apperrors.APIError) {
	if input.Name == "" {
		return nil, apperrors.BadRequest("invalid_name", "name is required")
	}
	if input.ParentID == id {
		return nil, apperrors.BadRequest("invalid_parent", "goal cannot be its own parent")
	}

	goal, err := s.goalRepo.GetByID(ctx, userID, id)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("goal_not_found", "goal not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get goal")
	}

	goal.Name = input.Name
	goal.ParentID = input.ParentID
	goal.IsCompleted = input.IsCompleted
	goal.UpdatedAt = time.Now().UTC()

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, apperrors.Internal("failed to update goal")
	}
	return goal, nil
}

func (s *GoalService) List(ctx context.Context, userID string) ([]model.Goal, *apperrors.APIError) {
	goals, err := s.goalRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list goals")
	}
	if goals == nil {
		goals = []model.Goal{}
	}
	return goals, nil
}

func (s *GoalService) Delete(ctx context.Context, userID, id string) *apperrors.APIError {
	err := s.goalRepo.Delete(ctx, userID, id)
	if err == repository.ErrNotFound {
		return apperrors.NotFound("goal_not_found", "goal not found")
	}
	if err != nil {
		return apperrors.Internal("failed to delete goal")
	}
	return nil
}
