// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

// Package appcontext provides the request context keys and accessors.
// Handlers receive the authenticated user through the request context set by
// the session middleware; there is no ambient current-user state.
package appcontext

import (
	"context"

	"codeberg.org/hverlin/inkwell/internal/models"
)

// User is the context key for the authenticated user.
type User struct{}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, User{}, user)
}

// GetUser returns the authenticated user from the context, or nil if not
// authenticated.
func GetUser(ctx context.Context) *models.User {
	if user, ok := ctx.Value(User{}).(*models.User); ok {
		return user
	}
	return nil
}

// IsAuthenticated returns true if the context has an authenticated user.
func IsAuthenticated(ctx context.Context) bool {
	return GetUser(ctx) != nil
}
