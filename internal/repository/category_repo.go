package repository

import (
	"context"
	"database/sql"
	"fmt"

	"ecourse/internal/model"
)

// CategoryRepository defines the interface for interacting with category data
type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
}

type categoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo creates a new CategoryRepository
func NewCategoryRepo(db *sql.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	query := `
		SELECT id, name
		FROM categories
		ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(categories) == 0 {
		return []model.Category{}, nil
	}
	return categories, nil
}
