package repository

import (
	"context"
	"database/sql"
	"errors"

	"ecourse/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	UpdateUser(ctx context.Context, u *model.User) error
}

type userRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, u *model.User) error {
	query := `INSERT INTO users (username, first_name, last_name, email, password_hash, avatar, is_active)
              VALUES ($1, $2, $3, $4, $5, $6, TRUE)
              RETURNING id, is_active, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, u.Username, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.Avatar).
		Scan(&u.ID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return err
	}
	return nil
}

func (r *userRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	query := `SELECT id, username, first_name, last_name, email, password_hash, avatar, is_active, created_at, updated_at
              FROM users WHERE id = $1 AND is_active = TRUE`
	row := r.db.QueryRowContext(ctx, query, id)
	if err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Avatar, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) UpdateUser(ctx context.Context, u *model.User) error {
	query := `UPDATE users
              SET first_name = $1, last_name = $2, email = $3, password_hash = $4, avatar = $5, updated_at = NOW()
              WHERE id = $6
              RETURNING updated_at`
	return r.db.QueryRowContext(ctx, query, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.Avatar, u.ID).
		Scan(&u.UpdatedAt)
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation, e.g. a duplicate email or username on registration.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
