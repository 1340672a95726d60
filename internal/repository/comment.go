// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/hverlin/inkwell/internal/models"
)

// CreateComment inserts a new comment and fills in its generated ID.
func (r *Repository) CreateComment(ctx context.Context, comment *models.Comment) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (post_id, user_id, comment_text, comment_author)
		 VALUES (?, ?, ?, ?)`,
		comment.PostID, comment.UserID, comment.CommentText, comment.CommentAuthor)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	comment.ID = id
	return nil
}

// ListCommentsByPostID returns all comments for a post in insertion order.
func (r *Repository) ListCommentsByPostID(ctx context.Context, postID int64) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.SelectContext(ctx, &comments,
		`SELECT * FROM comments WHERE post_id = ? ORDER BY id`, postID); err != nil {
		return nil, err
	}
	return comments, nil
}

// CountCommentsByPostID returns the number of comments on a post.
func (r *Repository) CountCommentsByPostID(ctx context.Context, postID int64) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM comments WHERE post_id = ?`, postID)
	return count, err
}
