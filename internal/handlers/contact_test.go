// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

package handlers_test

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"codeberg.org/hverlin/inkwell/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitContact_SendsMail(t *testing.T) {
	app := newTestApp(t)

	c, rec := testutil.NewFormContext(app.e, http.MethodPost, "/contact", url.Values{
		"name":    {"Ada Lovelace"},
		"email":   {"ada@example.com"},
		"contact": {"+44 123456"},
		"message": {"I would like to write a guest post."},
	})
	require.NoError(t, app.h.SubmitContact(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your message has been sent.")

	require.Len(t, app.mailer.contacts, 1)
	sent := app.mailer.contacts[0]
	assert.Equal(t, "Ada Lovelace", sent.name)
	assert.Equal(t, "ada@example.com", sent.email)
	assert.Equal(t, "+44 123456", sent.phone)
	assert.Equal(t, "I would like to write a guest post.", sent.message)
}

func TestSubmitContact_InvalidForm(t *testing.T) {
	app := newTestApp(t)

	c, rec := testutil.NewFormContext(app.e, http.MethodPost, "/contact", url.Values{
		"name":    {"Ada Lovelace"},
		"email":   {"not-an-email"},
		"contact": {""},
		"message": {"hello"},
	})
	require.NoError(t, app.h.SubmitContact(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Please enter a valid email address.")
	assert.Contains(t, body, "This field is required.")
	assert.Contains(t, body, `value="Ada Lovelace"`)
	assert.Empty(t, app.mailer.contacts)
}

func TestSubmitContact_DeliveryFailure(t *testing.T) {
	app := newTestApp(t)
	app.mailer.err = errors.New("smtp down")

	c, _ := testutil.NewFormContext(app.e, http.MethodPost, "/contact", url.Values{
		"name":    {"Ada Lovelace"},
		"email":   {"ada@example.com"},
		"contact": {"+44 123456"},
		"message": {"hello"},
	})

	err := app.h.SubmitContact(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
}
