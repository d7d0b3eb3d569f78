package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ewbmobile/hybrid-shell/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, validation, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Login failures carry a reason that is safe to show.
	var authFailed *domain.AuthFailedError
	if errors.As(err, &authFailed) {
		if errors.Is(err, domain.ErrMissingCredentials) {
			return http.StatusBadRequest, authFailed.Reason
		}
		return http.StatusUnauthorized, authFailed.Reason
	}

	switch {
	case errors.Is(err, domain.ErrViewNotFound):
		return http.StatusNotFound, "view not found"
	case errors.Is(err, domain.ErrModuleNotFound):
		return http.StatusNotFound, "module not found"
	case errors.Is(err, domain.ErrStaleEpoch):
		return http.StatusConflict, "load epoch is no longer current"
	case errors.Is(err, domain.ErrReloadBusy):
		return http.StatusConflict, "view is still loading"
	case errors.Is(err, domain.ErrInjectionPending):
		return http.StatusPreconditionFailed, "injection payload not confirmed for this epoch"
	case errors.Is(err, domain.ErrInvalidEvent):
		return http.StatusBadRequest, "invalid lifecycle event"
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, "invalid request"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
