package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/laximgqozaZZZYT/vow-sub001/internal/errors"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/model"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/repository"
)

type StickyService struct {
	stickyRepo *repository.StickyRepository
}

func NewStickyService(stickyRepo *repository.StickyRepository) *StickyService {
	return &StickyService{stickyRepo: stickyRepo}
}

type StickyInput struct {
	Text     string   `json:"text"`
	GoalIDs  []string `json:"goalIds"`
	HabitIDs []string `json:"habitIds"`
	TagIDs   []string `json:"tagIds"`
	Done     bool     `json:"done"`
}

func (s *StickyService) Create(ctx context.Context, userID string, input StickyInput) (*model.Sticky, *apperrors.APIError) {
	if input.Text == "" {
		return nil, apperrors.BadRequest("invalid_text", "text is required")
	}

	now := time.Now().UTC()
	sticky := model.Sticky{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      input.Text,
		GoalIDs:   input.GoalIDs,
		HabitIDs:  input.HabitIDs,
		TagIDs:    input.TagIDs,
		Done:      input.Done,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.stickyRepo.Create(ctx, &sticky); err != nil {
		return nil, apperrors.Internal("failed to create sticky")
	}
	return &sticky, nil
}

func (s *StickyService) Update(ctx context.Context, userID, id string, input StickyInput) (*model.Sticky, *apperrors.APIError) {
	if input.Text == "" {
		return nil, apperrors.BadRequest("invalid_text", "text is required")
	}

	sticky := model.Sticky{
		ID:        id,
		UserID:    userID,
		Text:      input.Text,
		GoalIDs:   input.GoalIDs,
		HabitIDs:  input.HabitIDs,
		TagIDs:    input.TagIDs,
		Done:      input.Done,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.stickyRepo.Update(ctx, &sticky); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("sticky_not_found", "sticky not found")
		}
		return nil, apperrors.Internal("failed to update sticky")
	}
	return &sticky, nil
}

func (s *StickyService) List(ctx context.Context, userID string) ([]model.Sticky, *apperrors.APIError) {
	stickies, err := s.stickyRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list stickies")
	}
	if stickies == nil {
		stickies = []model.Sticky{}
	}
	return stickies, nil
}

func (s *StickyService) Delete(ctx context.Context, userID, id string) *apperrors.APIError {
	err := s.stickyRepo.Delete(ctx, userID, id)
	if err == repository.ErrNotFound {
		return apperrors.NotFound("sticky_not_found", "sticky not found")
	}
	if err != nil {
		return apperrors.Internal("failed to delete sticky")
	}
	return nil
}

type TagService struct {
	tagRepo *repository.TagRepository
}

func NewTagService(tagRepo *repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

type TagInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (s *TagService) Create(ctx context.Context, userID string, input TagInput) (*model.Tag, *apperrors.APIError) {
	if input.Name == "" {
		return nil, apperrors.BadRequest("invalid_name", "name is required")
	}

	now := time.Now().UTC()
	tag := model.Tag{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      input.Name,
		Color:     input.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.tagRepo.Create(ctx, &tag); err != nil {
		return nil, apperrors.Internal("failed to create tag")
	}
	return &tag, nil
}

func (s *TagService) Update(ctx context.Context, userID, id string, input TagInput) (*model.Tag, *apperrors.APIError) {
	if input.Name == "" {
		return nil, apperrors.BadRequest("invalid_name", "name is required")
	}

	tag := model.Tag{
		ID:        id,
		UserID:    userID,
		Name:      input.Name,
		Color:     input.Color,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.tagRepo.Update(ctx, &tag); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("tag_not_found", "tag not found")
		}
		return nil, apperrors.Internal("failed to update tag")
	}
	return &tag, nil
}

func (s *TagService) List(ctx context.Context, userID string) ([]model.Tag, *apperrors.APIError) {
	tags, err := s.tagRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list tags")
	}
	if tags == nil {
		tags = []model.Tag{}
	}
	return tags, nil
}

func (s *TagService) Delete(ctx context.Context, userID, id string) *apperrors.APIError {
	err := s.tagRepo.Delete(ctx, userID, id)
	if err == repository.ErrNotFound {
		return apperrors.NotFound("tag_not_found", "tag not found")
	}
	if err != nil {
		return apperrors.Internal("failed to delete tag")
	}
	return nil
}
