// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

package handlers_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"codeberg.org/hverlin/inkwell/internal/services/auth"
	"codeberg.org/hverlin/inkwell/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestRecovery_SendsMailForKnownEmail(t *testing.T) {
	app := newTestApp(t)
	testutil.NewTestUser(t, app.repo, "Ada", "Lovelace", "ada@example.com", "correct-horse")

	c, rec := testutil.NewFormContext(app.e, http.MethodPost, "/forgot-password", url.Values{
		"email": {"ada@example.com"},
	})
	require.NoError(t, app.h.RequestRecovery(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a recovery link is on its way")

	require.Len(t, app.mailer.recoveries, 1)
	assert.Equal(t, "ada@example.com", app.mailer.recoveries[0].email)
	assert.Len(t, app.mailer.recoveries[0].token, 120)
}

func TestRequestRecovery_SameResponseForUnknownEmail(t *testing.T) {
	app := newTestApp(t)
	testutil.NewTestUser(t, app.repo, "Ada", "Lovelace", "ada@example.com", "correct-horse")

	known, knownRec := testutil.NewFormContext(app.e, http.MethodPost, "/forgot-password", url.Values{
		"email": {"ada@example.com"},
	})
	require.NoError(t, app.h.RequestRecovery(known))

	unknown, unknownRec := testutil.NewFormContext(app.e, http.MethodPost, "/forgot-password", url.Values{
		"email": {"nobody@example.com"},
	})
	require.NoError(t, app.h.RequestRecovery(unknown))

	// The page must not reveal whether the address is registered.
	assert.Equal(t, knownRec.Code, unknownRec.Code)
	assert.Equal(t, knownRec.Body.String(), unknownRec.Body.String())

	// Only the known address got mail.
	assert.Len(t, app.mailer.recoveries, 1)
}

func TestRequestRecovery_EmptyEmail(t *testing.T) {
	app := newTestApp(t)

	c, rec := testutil.NewFormContext(app.e, http.MethodPost, "/forgot-password", url.Values{
		"email": {""},
	})
	require.NoError(t, app.h.RequestRecovery(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "a recovery link is on its way")
	assert.Empty(t, app.mailer.recoveries)
}

func TestRecoveryPage_EmbedsToken(t *testing.T) {
	app := newTestApp(t)

	c, rec := testutil.NewFormContext(app.e, http.MethodGet, "/account-recovery/deadbeef", nil)
	c.SetParamNames("token")
	c.SetParamValues("deadbeef")
	require.NoError(t, app.h.RecoveryPage(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/account-recovery/deadbeef")
}

func TestCompleteRecovery_ResetsPasswordAndRedirects(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewTestUser(t, app.repo, "Ada", "Lovelace", "ada@example.com", "correct-horse")

	reqCtx, _ := testutil.NewFormContext(app.e, http.MethodPost, "/forgot-password", url.Values{
		"email": {"ada@example.com"},
	})
	require.NoError(t, app.h.RequestRecovery(reqCtx))
	require.Len(t, app.mailer.recoveries, 1)
	token := app.mailer.recoveries[0].token

	c, rec := testutil.NewFormContext(app.e, http.MethodPost, "/account-recovery/"+token, url.Values{
		"password1": {"new-password"},
		"password2": {"new-password"},
	})
	c.SetParamNames("token")
	c.SetParamValues(token)
	require.NoError(t, app.h.CompleteRecovery(c))

	assertRedirect(t, rec, "/login")

	got, err := app.repo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPasswordHash(got.PasswordHash, "new-password"))

	// A flash cookie carries the success notice to the login page.
	var flashSet bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "_flash" && cookie.Value != "" {
			flashSet = true
		}
	}
	assert.True(t, flashSet)
}

func TestCompleteRecovery_PasswordMismatch(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewTestUser(t, app.repo, "Ada", "Lovelace", "ada@example.com", "correct-horse")

	reqCtx, _ := testutil.NewFormContext(app.e, http.MethodPost, "/forgot-password", url.Values{
		"email": {"ada@example.com"},
	})
	require.NoError(t, app.h.RequestRecovery(reqCtx))
	token := app.mailer.recoveries[0].token

	c, rec := testutil.NewFormContext(app.e, http.MethodPost, "/account-recovery/"+token, url.Values{
		"password1": {"new-password"},
		"password2": {"other-password"},
	})
	c.SetParamNames("token")
	c.SetParamValues(token)
	require.NoError(t, app.h.CompleteRecovery(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Passwords do not match.")

	got, err := app.repo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPasswordHash(got.PasswordHash, "correct-horse"))
}

func TestCompleteRecovery_RejectsShortPassword(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewTestUser(t, app.repo, "Ada", "Lovelace", "ada@example.com", "correct-horse")

	reqCtx, _ := testutil.NewFormContext(app.e, http.MethodPost, "/forgot-password", url.Values{
		"email": {"ada@example.com"},
	})
	require.NoError(t, app.h.RequestRecovery(reqCtx))
	token := app.mailer.recoveries[0].token

	c, rec := testutil.NewFormContext(app.e, http.MethodPost, "/account-recovery/"+token, url.Values{
		"password1": {"short"},
		"password2": {"short"},
	})
	c.SetParamNames("token")
	c.SetParamValues(token)
	require.NoError(t, app.h.CompleteRecovery(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Must be between 8 and 16 characters long.")

	got, err := app.repo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPasswordHash(got.PasswordHash, "correct-horse"))
}

func TestCompleteRecovery_UnknownToken(t *testing.T) {
	app := newTestApp(t)

	c, rec := testutil.NewFormContext(app.e, http.MethodPost, "/account-recovery/bogus", url.Values{
		"password1": {"new-password"},
		"password2": {"new-password"},
	})
	c.SetParamNames("token")
	c.SetParamValues("bogus")
	require.NoError(t, app.h.CompleteRecovery(c))

	// An unknown token re-renders the form without comment.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
}
