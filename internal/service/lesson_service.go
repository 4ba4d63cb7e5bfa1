package service

import (
	"context"
	"errors"

	"ecourse/internal/model"
	"ecourse/internal/repository"

	"github.com/rs/zerolog"
)

var ErrLessonNotFound = errors.New("lesson not found")

// LessonService defines lesson-related operations. All reads see active
// lessons only.
type LessonService interface {
	// Get retrieves an active lesson with its tags attached.
	Get(ctx context.Context, lessonID int64) (*model.Lesson, error)
	// Stats returns the viewer-aware counters for a lesson. viewerID may be
	// zero for an anonymous viewer.
	Stats(ctx context.Context, lessonID, viewerID int64) (*model.LessonStats, error)
	// ToggleLike flips the caller's like on a lesson and returns the resulting
	// active flag. Fails with ErrLessonNotFound when the lesson does not exist
	// or is inactive.
	ToggleLike(ctx context.Context, userID, lessonID int64) (bool, error)
}

type lessonService struct {
	repo     repository.LessonRepository
	likeRepo repository.LikeRepository
	logger   zerolog.Logger
}

// NewLessonService creates a new LessonService
func NewLessonService(repo repository.LessonRepository, likeRepo repository.LikeRepository, logger zerolog.Logger) LessonService {
	return &lessonService{
		repo:     repo,
		likeRepo: likeRepo,
		logger:   logger.With().Str("service", "LessonService").Logger(),
	}
}

func (s *lessonService) Get(ctx context.Context, lessonID int64) (*model.Lesson, error) {
	lesson, err := s.repo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, ErrLessonNotFound
	}
	tags, err := s.repo.GetTags(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	lesson.Tags = tags
	return lesson, nil
}

func (s *lessonService) Stats(ctx context.Context, lessonID, viewerID int64) (*model.LessonStats, error) {
	return s.repo.GetStats(ctx, lessonID, viewerID)
}

func (s *lessonService) ToggleLike(ctx context.Context, userID, lessonID int64) (bool, error) {
	lesson, err := s.repo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return false, err
	}
	if lesson == nil {
		return false, ErrLessonNotFound
	}
	active, err := s.likeRepo.ToggleLike(ctx, userID, lessonID)
	if err != nil {
		s.logger.Error().Err(err).Int64("lesson_id", lessonID).Int64("user_id", userID).Msg("Failed to toggle like")
		return false, err
	}
	return active, nil
}
