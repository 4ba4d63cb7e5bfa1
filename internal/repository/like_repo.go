package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// LikeRepository defines the interface for interacting with like data.
type LikeRepository interface {
	// ToggleLike inserts an active like for (userID, lessonID) or, if the pair
	// already exists, flips its active flag. Returns the resulting flag. The
	// upsert is a single statement, so concurrent toggles on the same pair
	// serialize on the row instead of losing updates.
	ToggleLike(ctx context.Context, userID, lessonID int64) (bool, error)
}

type likeRepo struct {
	db *sql.DB
}

// NewLikeRepo creates a new LikeRepository
func NewLikeRepo(db *sql.DB) LikeRepository {
	return &likeRepo{db: db}
}

func (r *likeRepo) ToggleLike(ctx context.Context, userID, lessonID int64) (bool, error) {
	// Relies on the UNIQUE (user_id, lesson_id) constraint.
	query := `
		INSERT INTO likes (user_id, lesson_id, active)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (user_id, lesson_id)
		DO UPDATE SET active = NOT likes.active, updated_at = NOW()
		RETURNING active
	`
	var active bool
	if err := r.db.QueryRowContext(ctx, query, userID, lessonID).Scan(&active); err != nil {
		return false, fmt.Errorf("toggling like: %w", err)
	}
	return active, nil
}
