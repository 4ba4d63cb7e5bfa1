package service

import (
	"context"
	"errors"

	"ecourse/internal/model"
	"ecourse/internal/repository"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotCommentOwner = errors.New("caller does not own the comment")
)

// CommentService defines comment-related operations. Mutations are owner-only:
// the caller's identity must match the comment's stored author.
type CommentService interface {
	// ListByLesson retrieves a page of a lesson's comments, most recent first,
	// with the author joined. Fails with ErrLessonNotFound when the lesson does
	// not exist or is inactive.
	ListByLesson(ctx context.Context, lessonID int64, limit, offset int) ([]model.Comment, error)
	CountByLesson(ctx context.Context, lessonID int64) (int, error)
	// Create adds a comment bound to the lesson and the caller's identity.
	Create(ctx context.Context, lessonID, userID int64, content string) (*model.Comment, error)
	Update(ctx context.Context, commentID, callerID int64, content string) (*model.Comment, error)
	Delete(ctx context.Context, commentID, callerID int64) error
}

type commentService struct {
	repo       repository.CommentRepository
	lessonRepo repository.LessonRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(repo repository.CommentRepository, lessonRepo repository.LessonRepository) CommentService {
	return &commentService{repo: repo, lessonRepo: lessonRepo}
}

func (s *commentService) ListByLesson(ctx context.Context, lessonID int64, limit, offset int) ([]model.Comment, error) {
	if err := s.requireLesson(ctx, lessonID); err != nil {
		return nil, err
	}
	return s.repo.ListCommentsByLesson(ctx, lessonID, limit, offset)
}

func (s *commentService) CountByLesson(ctx context.Context, lessonID int64) (int, error) {
	if err := s.requireLesson(ctx, lessonID); err != nil {
		return 0, err
	}
	return s.repo.CountCommentsByLesson(ctx, lessonID)
}

func (s *commentService) Create(ctx context.Context, lessonID, userID int64, content string) (*model.Comment, error) {
	if err := s.requireLesson(ctx, lessonID); err != nil {
		return nil, err
	}
	comment := &model.Comment{
		Content:  content,
		UserID:   userID,
		LessonID: lessonID,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	// Re-read to attach the author summary.
	return s.repo.GetCommentByID(ctx, comment.ID)
}

func (s *commentService) Update(ctx context.Context, commentID, callerID int64, content string) (*model.Comment, error) {
	comment, err := s.ownedComment(ctx, commentID, callerID)
	if err != nil {
		return nil, err
	}
	comment.Content = content
	if err := s.repo.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, commentID, callerID int64) error {
	if _, err := s.ownedComment(ctx, commentID, callerID); err != nil {
		return err
	}
	return s.repo.DeleteComment(ctx, commentID)
}

func (s *commentService) ownedComment(ctx context.Context, commentID, callerID int64) (*model.Comment, error) {
	comment, err := s.repo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.UserID != callerID {
		return nil, ErrNotCommentOwner
	}
	return comment, nil
}

func (s *commentService) requireLesson(ctx context.Context, lessonID int64) error {
	lesson, err := s.lessonRepo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return err
	}
	if lesson == nil {
		return ErrLessonNotFound
	}
	return nil
}
