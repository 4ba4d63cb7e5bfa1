package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ecourse/internal/model"
)

// LessonRepository defines the interface for interacting with lesson data.
// Every read path is restricted to active lessons.
type LessonRepository interface {
	// ListLessonsByCourse retrieves the active lessons of a course, optionally
	// restricted by a case-insensitive subject substring match.
	ListLessonsByCourse(ctx context.Context, courseID int64, q string) ([]model.Lesson, error)
	GetLessonByID(ctx context.Context, lessonID int64) (*model.Lesson, error)
	GetTags(ctx context.Context, lessonID int64) ([]model.Tag, error)
	// GetStats returns the like/comment counters for a lesson. viewerID may be
	// zero for an anonymous viewer, in which case Liked is always false.
	GetStats(ctx context.Context, lessonID, viewerID int64) (*model.LessonStats, error)
}

type lessonRepo struct {
	db *sql.DB
}

// NewLessonRepo creates a new LessonRepository
func NewLessonRepo(db *sql.DB) LessonRepository {
	return &lessonRepo{db: db}
}

func (r *lessonRepo) ListLessonsByCourse(ctx context.Context, courseID int64, q string) ([]model.Lesson, error) {
	query := `
		SELECT id, subject, content, course_id, active, created_at, updated_at
		FROM lessons
		WHERE course_id = $1 AND active = TRUE
	`
	args := []any{courseID}
	if q != "" {
		args = append(args, "%"+q+"%")
		query += fmt.Sprintf(" AND subject ILIKE $%d", len(args))
	}
	query += " ORDER BY id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying lessons: %w", err)
	}
	defer rows.Close()

	var lessons []model.Lesson
	for rows.Next() {
		var l model.Lesson
		if err := rows.Scan(
			&l.ID,
			&l.Subject,
			&l.Content,
			&l.CourseID,
			&l.Active,
			&l.CreatedAt,
			&l.UpdatedAt,
		); err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(lessons) == 0 {
		return []model.Lesson{}, nil
	}
	return lessons, nil
}

// GetLessonByID retrieves an active lesson by its ID. Inactive lessons are
// treated as absent.
func (r *lessonRepo) GetLessonByID(ctx context.Context, lessonID int64) (*model.Lesson, error) {
	query := `
		SELECT id, subject, content, course_id, active, created_at, updated_at
		FROM lessons
		WHERE id = $1 AND active = TRUE
	`
	var l model.Lesson
	err := r.db.QueryRowContext(ctx, query, lessonID).Scan(
		&l.ID,
		&l.Subject,
		&l.Content,
		&l.CourseID,
		&l.Active,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting lesson: %w", err)
	}
	return &l, nil
}

func (r *lessonRepo) GetTags(ctx context.Context, lessonID int64) ([]model.Tag, error) {
	query := `
		SELECT t.id, t.name
		FROM tags t
		JOIN lesson_tags lt ON lt.tag_id = t.id
		WHERE lt.lesson_id = $1
		ORDER BY t.name ASC
	`
	rows, err := r.db.QueryContext(ctx, query, lessonID)
	if err != nil {
		return nil, fmt.Errorf("querying lesson tags: %w", err)
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(tags) == 0 {
		return []model.Tag{}, nil
	}
	return tags, nil
}

func (r *lessonRepo) GetStats(ctx context.Context, lessonID, viewerID int64) (*model.LessonStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM likes WHERE lesson_id = $1 AND active = TRUE),
			(SELECT COUNT(*) FROM comments WHERE lesson_id = $1),
			EXISTS (SELECT 1 FROM likes WHERE lesson_id = $1 AND user_id = $2 AND active = TRUE)
	`
	var stats model.LessonStats
	err := r.db.QueryRowContext(ctx, query, lessonID, viewerID).Scan(
		&stats.LikeCount,
		&stats.CommentCount,
		&stats.Liked,
	)
	if err != nil {
		return nil, fmt.Errorf("getting lesson stats: %w", err)
	}
	return &stats, nil
}
