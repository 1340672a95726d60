// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

// Package session implements signed cookie sessions and flash messages.
package session

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

const flashCookieName = "_flash"

// Data is the payload carried in the session cookie. A session identifies
// at most one authenticated user.
type Data struct {
	SessionID string
	UserID    int64
}

// Manager issues, decodes and clears session cookies.
type Manager struct {
	sc         *securecookie.SecureCookie
	cookieName string
	maxAge     int
	secure     bool
}

// NewManager creates a session manager. Keys are hex-encoded; when the hash
// key is empty a random key is generated, which invalidates all sessions on
// restart (the legacy deployment behaved the same way).
func NewManager(cookieName string, maxAge int, hashKeyHex, blockKeyHex string, secure bool) (*Manager, error) {
	var hashKey []byte
	if hashKeyHex == "" {
		hashKey = securecookie.GenerateRandomKey(32)
		slog.Warn("session hash key not configured, generated ephemeral key; sessions will not survive a restart")
	} else {
		var err error
		hashKey, err = hex.DecodeString(hashKeyHex)
		if err != nil {
			return nil, fmt.Errorf("decoding session hash key: %w", err)
		}
	}

	var blockKey []byte
	if blockKeyHex != "" {
		var err error
		blockKey, err = hex.DecodeString(blockKeyHex)
		if err != nil {
			return nil, fmt.Errorf("decoding session block key: %w", err)
		}
	}

	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(maxAge)

	return &Manager{
		sc:         sc,
		cookieName: cookieName,
		maxAge:     maxAge,
		secure:     secure,
	}, nil
}

// Issue creates a session cookie for the given user.
func (m *Manager) Issue(userID int64) (*http.Cookie, error) {
	data := Data{
		SessionID: uuid.NewString(),
		UserID:    userID,
	}

	encoded, err := m.sc.Encode(m.cookieName, data)
	if err != nil {
		return nil, fmt.Errorf("encoding session: %w", err)
	}

	return &http.Cookie{
		Name:     m.cookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   m.maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Clear returns an expired cookie that removes the session. Clearing an
// absent session is a no-op for the client, so logout is idempotent.
func (m *Manager) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Decode extracts the session data from the request cookie. It returns nil
// without error when no session cookie is present; tampered or expired
// cookies return an error.
func (m *Manager) Decode(r *http.Request) (*Data, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil, nil //nolint:nilnil // absent cookie is not an error
	}

	var data Data
	if err := m.sc.Decode(m.cookieName, cookie.Value, &data); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &data, nil
}

// SetFlash stores a one-shot notice shown on the next rendered page.
func (m *Manager) SetFlash(w http.ResponseWriter, message string) {
	encoded, err := m.sc.Encode(flashCookieName, message)
	if err != nil {
		slog.Error("failed to encode flash message", "error", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending flash message, if any, and expires it.
func (m *Manager) PopFlash(w http.ResponseWriter, r *http.Request) (string, bool) {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return "", false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	var message string
	if err := m.sc.Decode(flashCookieName, cookie.Value, &message); err != nil {
		return "", false
	}
	return message, true
}
