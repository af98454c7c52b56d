package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront-api/models"
)

func (s *PostgresStore) CreateUser(ctx context.Context, u *models.User) error {
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO users (username, email, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		u.Username, strings.ToLower(u.Email), u.PasswordHash, string(u.Role),
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email %s", ErrDuplicate, u.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var (
		u    models.User
		role string
	)
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, role, created_at FROM users WHERE email = $1`,
		strings.ToLower(email),
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	u.Role = models.Role(role)
	return &u, nil
}
