package service

import (
	"context"
	"errors"

	"ecourse/internal/model"
	"ecourse/internal/repository"
)

var ErrCourseNotFound = errors.New("course not found")

// CourseService defines course-related operations. All reads see active
// courses only.
type CourseService interface {
	// List retrieves active courses matching the filter. A non-positive limit
	// returns the full result set.
	List(ctx context.Context, f repository.CourseFilter, limit, offset int) ([]model.Course, error)
	Count(ctx context.Context, f repository.CourseFilter) (int, error)
	Get(ctx context.Context, courseID int64) (*model.Course, error)
	// ListLessons retrieves a course's active lessons, optionally restricted by
	// a subject substring match. Fails with ErrCourseNotFound when the course
	// does not exist or is inactive.
	ListLessons(ctx context.Context, courseID int64, q string) ([]model.Lesson, error)
}

type courseService struct {
	repo       repository.CourseRepository
	lessonRepo repository.LessonRepository
}

// NewCourseService creates a new CourseService
func NewCourseService(repo repository.CourseRepository, lessonRepo repository.LessonRepository) CourseService {
	return &courseService{repo: repo, lessonRepo: lessonRepo}
}

func (s *courseService) List(ctx context.Context, f repository.CourseFilter, limit, offset int) ([]model.Course, error) {
	return s.repo.ListCourses(ctx, f, limit, offset)
}

func (s *courseService) Count(ctx context.Context, f repository.CourseFilter) (int, error) {
	return s.repo.CountCourses(ctx, f)
}

func (s *courseService) Get(ctx context.Context, courseID int64) (*model.Course, error) {
	c, err := s.repo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCourseNotFound
	}
	return c, nil
}

func (s *courseService) ListLessons(ctx context.Context, courseID int64, q string) ([]model.Lesson, error) {
	if _, err := s.Get(ctx, courseID); err != nil {
		return nil, err
	}
	return s.lessonRepo.ListLessonsByCourse(ctx, courseID, q)
}
