// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

// Package handlers contains all HTTP handlers.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"codeberg.org/hverlin/inkwell/internal/appcontext"
	"codeberg.org/hverlin/inkwell/internal/forms"
	"codeberg.org/hverlin/inkwell/internal/repository"
	"codeberg.org/hverlin/inkwell/internal/services/auth"
	"codeberg.org/hverlin/inkwell/internal/services/recovery"
	"codeberg.org/hverlin/inkwell/internal/services/session"
	"github.com/labstack/echo/v4"
)

// Mailer sends contact-form mail. The recovery service carries its own
// sender.
type Mailer interface {
	SendContact(ctx context.Context, name, email, phone, message string) error
}

// Handlers bundles the dependencies shared by all routes.
type Handlers struct {
	repo     *repository.Repository
	auth     *auth.Service
	sessions *session.Manager
	recovery *recovery.Service
	mailer   Mailer
}

// New creates a new Handlers instance.
func New(repo *repository.Repository, authService *auth.Service, sessions *session.Manager, recoveryService *recovery.Service, mailer Mailer) *Handlers {
	return &Handlers{
		repo:     repo,
		auth:     authService,
		sessions: sessions,
		recovery: recoveryService,
		mailer:   mailer,
	}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Home renders the post listing.
func (h *Handlers) Home(c echo.Context) error {
	posts, err := h.repo.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "index", map[string]any{
		"Posts": posts,
	})
}

// About renders the static info page.
func (h *Handlers) About(c echo.Context) error {
	return h.render(c, http.StatusOK, "about", map[string]any{
		"Title": "About",
	})
}

// render fills in the page data every template expects and renders it.
func (h *Handlers) render(c echo.Context, code int, page string, data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Values"]; !ok {
		data["Values"] = map[string]string{}
	}
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = forms.Errors{}
	}
	data["User"] = appcontext.GetUser(c.Request().Context())
	data["Year"] = time.Now().Year()
	if token, ok := c.Get("csrf").(string); ok {
		data["CSRFToken"] = token
	}
	if _, ok := data["Flash"]; !ok {
		if msg, found := h.sessions.PopFlash(c.Response(), c.Request()); found {
			data["Flash"] = msg
		}
	}
	return c.Render(code, page, data)
}

// formValues collects the submitted values for redisplay on failed
// validation.
func formValues(c echo.Context, names ...string) map[string]string {
	values := make(map[string]string, len(names))
	for _, name := range names {
		values[name] = c.FormValue(name)
	}
	return values
}

// paramID parses the numeric :id route parameter. Non-numeric values are
// treated like unknown records.
func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound)
	}
	return id, nil
}
