// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

// Package models contains the database entities.
package models

import "time"

// User is an account holder. Accounts are never deleted.
type User struct { //nolint:govet // fieldalignment not critical for models
	ID           int64     `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// FullName returns the display name used for post and comment bylines.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Post is a blog entry. Author and Date are denormalized display strings,
// Date formatted as "Jan 02, 2006".
type Post struct { //nolint:govet // fieldalignment not critical for models
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	Subtitle  string    `db:"subtitle" json:"subtitle"`
	Author    string    `db:"author" json:"author"`
	Date      string    `db:"date" json:"date"`
	Body      string    `db:"body" json:"body"`
	ImageURL  string    `db:"image_url" json:"image_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Comment belongs to a post and is removed with it. Comments are never
// edited or deleted on their own.
type Comment struct { //nolint:govet // fieldalignment not critical for models
	ID            int64     `db:"id" json:"id"`
	PostID        int64     `db:"post_id" json:"post_id"`
	UserID        int64     `db:"user_id" json:"user_id"`
	CommentText   string    `db:"comment_text" json:"comment_text"`
	CommentAuthor string    `db:"comment_author" json:"comment_author"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// RecoveryRequest records a password-recovery token. Tokens are not expired
// or invalidated after use, and Status never leaves its default; both match
// the observable contract of the legacy system.
type RecoveryRequest struct { //nolint:govet // fieldalignment not critical for models
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	Email        string    `db:"email" json:"email"`
	Token        string    `db:"token" json:"-"`
	TimeReceived string    `db:"time_received" json:"time_received"`
	DateReceived string    `db:"date_received" json:"date_received"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
