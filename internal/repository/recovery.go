// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/hverlin/inkwell/internal/models"
)

// CreateRecoveryRequest inserts a new recovery request. The status column
// takes its schema default ("In Progress").
func (r *Repository) CreateRecoveryRequest(ctx context.Context, req *models.RecoveryRequest) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO recovery_requests (user_id, email, token, time_received, date_received)
		 VALUES (?, ?, ?, ?, ?)`,
		req.UserID, req.Email, req.Token, req.TimeReceived, req.DateReceived)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	req.ID = id
	var status string
	if err := r.db.GetContext(ctx, &status, `SELECT status FROM recovery_requests WHERE id = ?`, id); err != nil {
		return err
	}
	req.Status = status
	return nil
}

// GetRecoveryRequestByToken retrieves a recovery request by its token.
// Tokens are the sole capability authorizing a password reset.
func (r *Repository) GetRecoveryRequestByToken(ctx context.Context, token string) (*models.RecoveryRequest, error) {
	var req models.RecoveryRequest
	if err := r.db.GetContext(ctx, &req,
		`SELECT * FROM recovery_requests WHERE token = ?`, token); err != nil {
		return nil, wrapError(err)
	}
	return &req, nil
}

// ListRecoveryRequestsByUserID returns all recovery requests for a user.
func (r *Repository) ListRecoveryRequestsByUserID(ctx context.Context, userID int64) ([]models.RecoveryRequest, error) {
	var reqs []models.RecoveryRequest
	if err := r.db.SelectContext(ctx, &reqs,
		`SELECT * FROM recovery_requests WHERE user_id = ? ORDER BY id`, userID); err != nil {
		return nil, err
	}
	return reqs, nil
}
