// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"

	"codeberg.org/hverlin/inkwell/internal/forms"
	"codeberg.org/hverlin/inkwell/internal/i18n"
	"codeberg.org/hverlin/inkwell/internal/services/auth"
	"github.com/labstack/echo/v4"
)

// LoginPage renders the login form.
func (h *Handlers) LoginPage(c echo.Context) error {
	return h.render(c, http.StatusOK, "login", map[string]any{
		"Title": "Log In",
	})
}

// Login authenticates the user and establishes a session.
func (h *Handlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	errs := forms.Login.Validate(c.FormValue)
	if !errs.Valid() {
		return h.render(c, http.StatusOK, "login", map[string]any{
			"Title":  "Log In",
			"Values": formValues(c, "email"),
			"Errors": errs,
		})
	}

	user, err := h.auth.Login(ctx, c.FormValue("email"), c.FormValue("password"))
	if err != nil {
		var flashID string
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			flashID = "flash_user_missing"
		case errors.Is(err, auth.ErrInvalidCredentials):
			flashID = "flash_wrong_password"
		default:
			return err
		}
		return h.render(c, http.StatusOK, "login", map[string]any{
			"Title":  "Log In",
			"Values": formValues(c, "email"),
			"Flash":  i18n.T(ctx, flashID),
		})
	}

	cookie, err := h.sessions.Issue(user.ID)
	if err != nil {
		return err
	}
	c.SetCookie(cookie)

	return c.Redirect(http.StatusSeeOther, "/")
}

// SignupPage renders the registration form.
func (h *Handlers) SignupPage(c echo.Context) error {
	return h.render(c, http.StatusOK, "signup", map[string]any{
		"Title": "Sign Up",
	})
}

// Signup registers a new account and logs it in.
func (h *Handlers) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	errs := forms.Signup.Validate(c.FormValue)
	if !errs.Valid() {
		return h.render(c, http.StatusOK, "signup", map[string]any{
			"Title":  "Sign Up",
			"Values": formValues(c, "first_name", "last_name", "email"),
			"Errors": errs,
		})
	}

	user, err := h.auth.Signup(ctx, auth.SignupParams{
		FirstName: c.FormValue("first_name"),
		LastName:  c.FormValue("last_name"),
		Email:     c.FormValue("email"),
		Password:  c.FormValue("password"),
	})
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			return h.render(c, http.StatusOK, "signup", map[string]any{
				"Title":  "Sign Up",
				"Values": formValues(c, "first_name", "last_name", "email"),
				"Flash":  i18n.T(ctx, "flash_user_exists"),
			})
		}
		return err
	}

	cookie, err := h.sessions.Issue(user.ID)
	if err != nil {
		return err
	}
	c.SetCookie(cookie)

	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout clears the session cookie. Clearing twice is harmless.
func (h *Handlers) Logout(c echo.Context) error {
	c.SetCookie(h.sessions.Clear())
	return c.Redirect(http.StatusSeeOther, "/")
}
