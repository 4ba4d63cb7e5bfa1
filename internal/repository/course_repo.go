package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ecourse/internal/model"
)

// CourseFilter describes the optional listing filters. A zero value leaves
// the corresponding filter inactive; filters combine with AND.
type CourseFilter struct {
	// Query restricts to courses whose name contains the value,
	// case-insensitively.
	Query string
	// CategoryID restricts to courses in the given category.
	CategoryID int64
}

// CourseRepository defines the interface for interacting with course data.
// Every read path is restricted to active courses.
type CourseRepository interface {
	ListCourses(ctx context.Context, f CourseFilter, limit, offset int) ([]model.Course, error)
	CountCourses(ctx context.Context, f CourseFilter) (int, error)
	GetCourseByID(ctx context.Context, courseID int64) (*model.Course, error)
}

type courseRepo struct {
	db *sql.DB
}

// NewCourseRepo creates a new CourseRepository
func NewCourseRepo(db *sql.DB) CourseRepository {
	return &courseRepo{db: db}
}

// ListCourses retrieves active courses matching the filter. A non-positive
// limit returns the full result set.
func (r *courseRepo) ListCourses(ctx context.Context, f CourseFilter, limit, offset int) ([]model.Course, error) {
	query := `
		SELECT id, name, description, image, category_id, active, created_at, updated_at
		FROM courses
	`
	where, args := courseWhere(f)
	query += where + " ORDER BY id ASC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying courses: %w", err)
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Description,
			&c.Image,
			&c.CategoryID,
			&c.Active,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(courses) == 0 {
		return []model.Course{}, nil
	}
	return courses, nil
}

// CountCourses counts active courses matching the filter.
func (r *courseRepo) CountCourses(ctx context.Context, f CourseFilter) (int, error) {
	where, args := courseWhere(f)
	var total int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM courses"+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("counting courses: %w", err)
	}
	return total, nil
}

// GetCourseByID retrieves an active course by its ID. Inactive courses are
// treated as absent.
func (r *courseRepo) GetCourseByID(ctx context.Context, courseID int64) (*model.Course, error) {
	query := `
		SELECT id, name, description, image, category_id, active, created_at, updated_at
		FROM courses
		WHERE id = $1 AND active = TRUE
	`
	var c model.Course
	err := r.db.QueryRowContext(ctx, query, courseID).Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.Image,
		&c.CategoryID,
		&c.Active,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting course: %w", err)
	}
	return &c, nil
}

func courseWhere(f CourseFilter) (string, []any) {
	where := " WHERE active = TRUE"
	var args []any
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		where += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if f.CategoryID > 0 {
		args = append(args, f.CategoryID)
		where += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	return where, args
}
