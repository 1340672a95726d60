// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

// Package auth implements account registration and password login.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"codeberg.org/hverlin/inkwell/internal/models"
	"codeberg.org/hverlin/inkwell/internal/repository"
)

var (
	// ErrUserExists is returned when the signup email is already registered.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is returned when no account matches the login email.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned when the password check fails.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// dummyHash keeps the login code path doing a hash comparison even when the
// email is unknown, so response time does not leak account existence.
var dummyHash, _ = GeneratePasswordHash("dummy-password-for-timing")

// Service provides signup and login on top of the repository.
type Service struct {
	repo *repository.Repository
}

// NewService creates a new auth service.
func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// SignupParams holds the validated signup form values.
type SignupParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Signup creates a new account. The duplicate check is an exact email match;
// no case normalization is applied, matching the legacy contract.
func (s *Service) Signup(ctx context.Context, params SignupParams) (*models.User, error) {
	_, err := s.repo.GetUserByEmail(ctx, params.Email)
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking existing user: %w", err)
	}

	passwordHash, err := GeneratePasswordHash(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Email:        params.Email,
		PasswordHash: passwordHash,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	slog.Info("signup_success", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login authenticates a user by email and password.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = CheckPasswordHash(dummyHash, password)
			slog.Warn("login_failed", "email", email, "reason", "user_not_found")
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	if !CheckPasswordHash(user.PasswordHash, password) {
		slog.Warn("login_failed", "email", email, "reason", "invalid_password")
		return nil, ErrInvalidCredentials
	}

	slog.Info("login_success", "user_id", user.ID, "email", email)
	return user, nil
}
