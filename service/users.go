package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"storefront-api/auth"
	"storefront-api/models"
	"storefront-api/store"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     models.Role
}

// Register creates a user account. The role defaults to "user".
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Role == "" {
		in.Role = models.RoleUser
	}
	if !in.Role.Valid() {
		return nil, invalid("role", "Role must be either user or seller.")
	}

	_, err := s.store.GetUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, NewError(ErrConflict, "User Already Registered")
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		// lost a race with a concurrent registration of the same email
		if errors.Is(err, store.ErrDuplicate) {
			return nil, NewError(ErrConflict, "User Already Registered")
		}
		return nil, err
	}

	s.logger.Info("User registered", zap.Int64("user_id", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

// Login checks the credentials and returns a signed bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.store.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", NewError(ErrNotFound, "User Not Found")
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	ok, err := s.passwords.Matches(u.PasswordHash, password)
	if err != nil {
		return "", fmt.Errorf("compare password: %w", err)
	}
	if !ok {
		return "", NewError(ErrUnauthorized, "Incorrect Password")
	}

	return s.tokens.Issue(auth.Identity{UserID: u.ID, Role: u.Role})
}
