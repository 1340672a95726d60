// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/hverlin/inkwell/internal/appcontext"
	"codeberg.org/hverlin/inkwell/internal/server"
	"codeberg.org/hverlin/inkwell/internal/services/session"
	"codeberg.org/hverlin/inkwell/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionManager(t *testing.T) *session.Manager {
	t.Helper()
	m, err := session.NewManager("_session", 3600, "", "", false)
	require.NoError(t, err)
	return m
}

func whoami(c echo.Context) error {
	user := appcontext.GetUser(c.Request().Context())
	if user == nil {
		return c.String(http.StatusOK, "anonymous")
	}
	return c.String(http.StatusOK, user.FullName())
}

func TestLoadUser_ResolvesSession(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	sessions := newSessionManager(t)
	user := testutil.NewTestUser(t, repo, "Ada", "Lovelace", "ada@example.com", "correct-horse")

	e := echo.New()
	e.Use(server.LoadUser(sessions, repo))
	e.GET("/whoami", whoami)

	cookie, err := sessions.Issue(user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ada Lovelace", rec.Body.String())
}

func TestLoadUser_NoCookie(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	sessions := newSessionManager(t)

	e := echo.New()
	e.Use(server.LoadUser(sessions, repo))
	e.GET("/whoami", whoami)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestLoadUser_DropsTamperedCookie(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	sessions := newSessionManager(t)
	user := testutil.NewTestUser(t, repo, "Ada", "Lovelace", "ada@example.com", "correct-horse")

	e := echo.New()
	e.Use(server.LoadUser(sessions, repo))
	e.GET("/whoami", whoami)

	cookie, err := sessions.Issue(user.ID)
	require.NoError(t, err)
	cookie.Value += "tampered"

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "anonymous", rec.Body.String())

	// The broken cookie is expired on the client.
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "_session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestLoadUser_UnknownUserID(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	sessions := newSessionManager(t)

	e := echo.New()
	e.Use(server.LoadUser(sessions, repo))
	e.GET("/whoami", whoami)

	// Valid cookie, but the account no longer exists.
	cookie, err := sessions.Issue(999)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestRequireAuth_RedirectsAnonymous(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	sessions := newSessionManager(t)

	e := echo.New()
	e.Use(server.LoadUser(sessions, repo))
	g := e.Group("", server.RequireAuth)
	g.GET("/new-post", whoami)

	req := httptest.NewRequest(http.MethodGet, "/new-post", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestRequireAuth_PassesAuthenticated(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	sessions := newSessionManager(t)
	user := testutil.NewTestUser(t, repo, "Ada", "Lovelace", "ada@example.com", "correct-horse")

	e := echo.New()
	e.Use(server.LoadUser(sessions, repo))
	g := e.Group("", server.RequireAuth)
	g.GET("/new-post", whoami)

	cookie, err := sessions.Issue(user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/new-post", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ada Lovelace", rec.Body.String())
}
