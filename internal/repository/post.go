// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/hverlin/inkwell/internal/models"
)

// CreatePost inserts a new post and fills in its generated ID.
func (r *Repository) CreatePost(ctx context.Context, post *models.Post) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (user_id, title, subtitle, author, date, body, image_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		post.UserID, post.Title, post.Subtitle, post.Author, post.Date, post.Body, post.ImageURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	post.ID = id
	return nil
}

// GetPostByID retrieves a post by ID.
func (r *Repository) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := r.db.GetContext(ctx, &post, `SELECT * FROM posts WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &post, nil
}

// ListPosts returns all posts in insertion order.
func (r *Repository) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.SelectContext(ctx, &posts, `SELECT * FROM posts ORDER BY id`); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost updates the editable fields of a post. Author and date are
// fixed at creation time and never change.
func (r *Repository) UpdatePost(ctx context.Context, post *models.Post) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, subtitle = ?, body = ?, image_url = ? WHERE id = ?`,
		post.Title, post.Subtitle, post.Body, post.ImageURL, post.ID)
	return err
}

// DeletePost deletes a post. Its comments are removed by the ON DELETE
// CASCADE constraint.
func (r *Repository) DeletePost(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	return err
}

// CountPosts returns the total number of posts.
func (r *Repository) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts`)
	return count, err
}
