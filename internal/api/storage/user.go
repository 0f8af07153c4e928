package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/talenthub/jobboard-be/internal/api/domain"
	"github.com/talenthub/jobboard-be/internal/api/model"
)

const userColumns = `
	id, username, email, first_name, last_name, bio, profile_picture, created_at
`

func (s *Storage) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	query := `SELECT` + userColumns + `FROM users WHERE id = $1`

	err := s.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	query := `SELECT` + userColumns + `FROM users ORDER BY id`

	if err := s.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (username, email, first_name, last_name, bio, profile_picture)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := s.db.QueryRowxContext(
		ctx,
		query,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.ProfilePicture,
	).Scan(&user.ID, &user.CreatedAt)

	if isUniqueViolation(err, "users_username_key") {
		return domain.ErrUsernameTaken
	}
	if isUniqueViolation(err, "users_email_key") {
		return domain.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}
