package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/glcplatform/portal/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
//
// The shell script surfaces the envelope's message as a notice, so every
// message here is written for an end user, not an operator.
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
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrTimeout):
		return http.StatusGatewayTimeout, "the lending service took too long to respond"
	case errors.Is(err, domain.ErrBackendUnreachable):
		return http.StatusBadGateway, "the lending service is not responding"
	case errors.Is(err, domain.ErrCredentialsRejected):
		return http.StatusUnauthorized, "login was refused"
	case errors.Is(err, domain.ErrSessionInvalid):
		return http.StatusUnauthorized, "session expired, sign in again"
	case errors.Is(err, domain.ErrPageForbidden):
		return http.StatusForbidden, "that page is not available for your role"
	case errors.Is(err, domain.ErrDraftNotFound):
		return http.StatusNotFound, "no draft saved"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	}

	// Backend rejections keep their status for client errors; backend
	// failures are reported as a bad gateway rather than leaked through.
	if status, ok := domain.APIStatus(err); ok {
		if status >= 400 && status < 500 {
			return status, fmt.Sprintf("the lending service rejected the request (status %d)", status)
		}
		log.Error().Err(err).Int("backend_status", status).Str("path", c.Path()).Msg("backend failure")
		return http.StatusBadGateway, "the lending service reported an error"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
