// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"codeberg.org/hverlin/inkwell/internal/database"
	"codeberg.org/hverlin/inkwell/internal/models"
	"codeberg.org/hverlin/inkwell/internal/repository"
	"codeberg.org/hverlin/inkwell/internal/services/auth"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
)

// NewTestDB creates an in-memory SQLite database with the full schema.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewTestUser creates a user with a real password hash.
func NewTestUser(t *testing.T, repo *repository.Repository, firstName, lastName, email, password string) *models.User {
	t.Helper()
	hash, err := auth.GeneratePasswordHash(password)
	require.NoError(t, err)

	user := &models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

// NewTestPost creates a post owned by the given user.
func NewTestPost(t *testing.T, repo *repository.Repository, user *models.User, title string) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:   user.ID,
		Title:    title,
		Subtitle: "A subtitle",
		Author:   user.FullName(),
		Date:     "Jan 01, 2026",
		Body:     "<p>Hello world</p>",
		ImageURL: "https://example.com/cover.jpg",
	}
	require.NoError(t, repo.CreatePost(context.Background(), post))
	return post
}

// NewFormContext creates an Echo context carrying a form POST body.
func NewFormContext(e *echo.Echo, method, path string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}
