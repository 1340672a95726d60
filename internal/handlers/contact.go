// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"codeberg.org/hverlin/inkwell/internal/forms"
	"github.com/labstack/echo/v4"
)

// ContactPage renders the contact form.
func (h *Handlers) ContactPage(c echo.Context) error {
	return h.render(c, http.StatusOK, "contact", map[string]any{
		"Title": "Contact",
	})
}

// SubmitContact validates the form and forwards the message to the
// operator. A failed send is surfaced as a server error; there is no retry
// or queue.
func (h *Handlers) SubmitContact(c echo.Context) error {
	errs := forms.Contact.Validate(c.FormValue)
	if !errs.Valid() {
		return h.render(c, http.StatusOK, "contact", map[string]any{
			"Title":  "Contact",
			"Values": formValues(c, "name", "email", "contact", "message"),
			"Errors": errs,
		})
	}

	err := h.mailer.SendContact(c.Request().Context(),
		c.FormValue("name"),
		c.FormValue("email"),
		c.FormValue("contact"),
		c.FormValue("message"),
	)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to send message").SetInternal(err)
	}

	return h.render(c, http.StatusOK, "contact", map[string]any{
		"Title":     "Contact",
		"EmailSent": true,
	})
}
