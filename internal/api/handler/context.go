package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/glcplatform/portal/internal/api/middleware"
	"github.com/glcplatform/portal/internal/core/domain"
)

// ctxSession extracts the session injected by the Session middleware and
// performs a fast-fail check before any service call: a handler reached
// without a decoded session is a wiring bug, answered with 401 rather than
// a panic deeper down.
func ctxSession(c echo.Context) (domain.Session, error) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok || !sess.LoggedIn() {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sess, nil
}
