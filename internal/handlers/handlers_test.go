// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/hverlin/inkwell/internal/appcontext"
	"codeberg.org/hverlin/inkwell/internal/handlers"
	"codeberg.org/hverlin/inkwell/internal/i18n"
	"codeberg.org/hverlin/inkwell/internal/models"
	"codeberg.org/hverlin/inkwell/internal/repository"
	"codeberg.org/hverlin/inkwell/internal/services/auth"
	"codeberg.org/hverlin/inkwell/internal/services/recovery"
	"codeberg.org/hverlin/inkwell/internal/services/session"
	"codeberg.org/hverlin/inkwell/internal/templates"
	"codeberg.org/hverlin/inkwell/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactMsg struct {
	name    string
	email   string
	phone   string
	message string
}

type recoveryMsg struct {
	email string
	token string
}

// stubMailer satisfies both the contact and recovery mailer interfaces.
type stubMailer struct {
	contacts   []contactMsg
	recoveries []recoveryMsg
	err        error
}

func (m *stubMailer) SendContact(_ context.Context, name, email, phone, message string) error {
	if m.err != nil {
		return m.err
	}
	m.contacts = append(m.contacts, contactMsg{name: name, email: email, phone: phone, message: message})
	return nil
}

func (m *stubMailer) SendRecovery(_ context.Context, toEmail, token string) error {
	if m.err != nil {
		return m.err
	}
	m.recoveries = append(m.recoveries, recoveryMsg{email: toEmail, token: token})
	return nil
}

type testApp struct {
	e        *echo.Echo
	h        *handlers.Handlers
	repo     *repository.Repository
	sessions *session.Manager
	mailer   *stubMailer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	require.NoError(t, i18n.Init())

	_, repo := testutil.NewTestDB(t)

	sessions, err := session.NewManager("_session", 3600, "", "", false)
	require.NoError(t, err)

	mailer := &stubMailer{}

	e := echo.New()
	renderer, err := templates.New()
	require.NoError(t, err)
	e.Renderer = renderer
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	h := handlers.New(repo, auth.NewService(repo), sessions, recovery.NewService(repo, mailer), mailer)

	return &testApp{e: e, h: h, repo: repo, sessions: sessions, mailer: mailer}
}

// asUser puts the given user into the request context, as the session
// middleware would for a logged-in request.
func asUser(c echo.Context, user *models.User) {
	ctx := appcontext.WithUser(c.Request().Context(), user)
	c.SetRequest(c.Request().WithContext(ctx))
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, location, rec.Header().Get(echo.HeaderLocation))
}
