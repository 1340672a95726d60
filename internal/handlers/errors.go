// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"codeberg.org/hverlin/inkwell/internal/appcontext"
	"codeberg.org/hverlin/inkwell/internal/forms"
	"codeberg.org/hverlin/inkwell/internal/i18n"
	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler renders the error page for every unhandled error.
// Server errors are logged with their internal cause; clients only see the
// localized message.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}

	ctx := c.Request().Context()
	if code >= http.StatusInternalServerError {
		slog.Error("request_failed",
			"error", err,
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
		)
	}

	messageID := "error_internal"
	if code == http.StatusNotFound {
		messageID = "error_not_found"
	}

	data := map[string]any{
		"Title":   http.StatusText(code),
		"Code":    code,
		"Message": i18n.T(ctx, messageID),
		"User":    appcontext.GetUser(ctx),
		"Year":    time.Now().Year(),
		"Values":  map[string]string{},
		"Errors":  forms.Errors{},
	}
	if renderErr := c.Render(code, "error", data); renderErr != nil {
		_ = c.NoContent(code)
	}
}
