package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ecourse/internal/model"
)

// CommentRepository defines the interface for interacting with comment data.
// List and get reads join the author so callers never do per-row lookups.
type CommentRepository interface {
	ListCommentsByLesson(ctx context.Context, lessonID int64, limit, offset int) ([]model.Comment, error)
	CountCommentsByLesson(ctx context.Context, lessonID int64) (int, error)
	GetCommentByID(ctx context.Context, commentID int64) (*model.Comment, error)
	CreateComment(ctx context.Context, c *model.Comment) error
	UpdateComment(ctx context.Context, c *model.Comment) error
	DeleteComment(ctx context.Context, commentID int64) error
}

type commentRepo struct {
	db *sql.DB
}

// NewCommentRepo creates a new CommentRepository
func NewCommentRepo(db *sql.DB) CommentRepository {
	return &commentRepo{db: db}
}

// ListCommentsByLesson retrieves a lesson's comments, most recent first.
func (r *commentRepo) ListCommentsByLesson(ctx context.Context, lessonID int64, limit, offset int) ([]model.Comment, error) {
	query := fmt.Sprintf(`
		SELECT c.id, c.content, c.user_id, c.lesson_id, c.created_at,
		       u.id, u.username, u.first_name, u.last_name, u.avatar
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.lesson_id = $1
		ORDER BY c.id DESC
		LIMIT %d OFFSET %d
	`, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, lessonID)
	if err != nil {
		return nil, fmt.Errorf("querying comments: %w", err)
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := scanComment(rows.Scan, &c); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(comments) == 0 {
		return []model.Comment{}, nil
	}
	return comments, nil
}

func (r *commentRepo) CountCommentsByLesson(ctx context.Context, lessonID int64) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE lesson_id = $1`, lessonID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("counting comments: %w", err)
	}
	return total, nil
}

func (r *commentRepo) GetCommentByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	query := `
		SELECT c.id, c.content, c.user_id, c.lesson_id, c.created_at,
		       u.id, u.username, u.first_name, u.last_name, u.avatar
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1
	`
	var c model.Comment
	err := scanComment(r.db.QueryRowContext(ctx, query, commentID).Scan, &c)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting comment: %w", err)
	}
	return &c, nil
}

// CreateComment inserts a new comment and fills in its generated fields.
func (r *commentRepo) CreateComment(ctx context.Context, c *model.Comment) error {
	query := `
		INSERT INTO comments (content, user_id, lesson_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, c.Content, c.UserID, c.LessonID).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating comment: %w", err)
	}
	return nil
}

func (r *commentRepo) UpdateComment(ctx context.Context, c *model.Comment) error {
	query := `
		UPDATE comments
		SET content = $1
		WHERE id = $2
		RETURNING content
	`
	err := r.db.QueryRowContext(ctx, query, c.Content, c.ID).Scan(&c.Content)
	if err != nil {
		return fmt.Errorf("updating comment: %w", err)
	}
	return nil
}

func (r *commentRepo) DeleteComment(ctx context.Context, commentID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, commentID); err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	return nil
}

func scanComment(scan func(...any) error, c *model.Comment) error {
	return scan(
		&c.ID,
		&c.Content,
		&c.UserID,
		&c.LessonID,
		&c.CreatedAt,
		&c.User.ID,
		&c.User.Username,
		&c.User.FirstName,
		&c.User.LastName,
		&c.User.Avatar,
	)
}
