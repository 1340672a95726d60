// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"

	"codeberg.org/hverlin/inkwell/internal/forms"
	"codeberg.org/hverlin/inkwell/internal/i18n"
	"codeberg.org/hverlin/inkwell/internal/services/recovery"
	"github.com/labstack/echo/v4"
)

// ForgotPasswordPage renders the recovery request form.
func (h *Handlers) ForgotPasswordPage(c echo.Context) error {
	return h.render(c, http.StatusOK, "forgot_password", map[string]any{
		"Title": "Forgot Password",
	})
}

// RequestRecovery starts a password recovery. The rendered outcome is the
// same whether or not the email is registered, so the form cannot be used
// to probe for accounts.
func (h *Handlers) RequestRecovery(c echo.Context) error {
	email := c.FormValue("email")
	if email == "" {
		return h.render(c, http.StatusOK, "forgot_password", map[string]any{
			"Title": "Forgot Password",
		})
	}

	if err := h.recovery.Request(c.Request().Context(), email); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to send recovery mail").SetInternal(err)
	}

	return h.render(c, http.StatusOK, "forgot_password", map[string]any{
		"Title":     "Forgot Password",
		"EmailSent": true,
	})
}

// RecoveryPage renders the password reset form for a token.
func (h *Handlers) RecoveryPage(c echo.Context) error {
	return h.render(c, http.StatusOK, "recovery", map[string]any{
		"Title": "Account Recovery",
		"Token": c.Param("token"),
	})
}

// CompleteRecovery resets the password behind a token. An unknown token
// re-renders the form without comment; a mismatch keeps the stored hash
// untouched.
func (h *Handlers) CompleteRecovery(c echo.Context) error {
	ctx := c.Request().Context()
	token := c.Param("token")

	errs := forms.Recovery.Validate(c.FormValue)
	if !errs.Valid() {
		return h.render(c, http.StatusOK, "recovery", map[string]any{
			"Title":  "Account Recovery",
			"Token":  token,
			"Errors": errs,
		})
	}

	err := h.recovery.Complete(ctx, token, c.FormValue("password1"), c.FormValue("password2"))
	switch {
	case errors.Is(err, recovery.ErrUnknownToken):
		return h.render(c, http.StatusOK, "recovery", map[string]any{
			"Title": "Account Recovery",
			"Token": token,
		})
	case errors.Is(err, recovery.ErrPasswordMismatch):
		return h.render(c, http.StatusOK, "recovery", map[string]any{
			"Title": "Account Recovery",
			"Token": token,
			"Flash": i18n.T(ctx, "flash_password_mismatch"),
		})
	case err != nil:
		return err
	}

	h.sessions.SetFlash(c.Response(), i18n.T(ctx, "flash_password_reset"))
	return c.Redirect(http.StatusSeeOther, "/login")
}
