package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/glcplatform/portal/internal/core/domain"
	"github.com/glcplatform/portal/internal/core/ports"
)

// SessionCookie is the name of the signed session cookie.
const SessionCookie = "glc_session"

// sessionKey is the echo context key the decoded session is stored under.
const sessionKey = "session"

// Session authenticates the request from the session cookie and injects the
// decoded session into context. Page requests bounce to the login screen
// when the cookie is missing or invalid; fragment and API requests get 401
// so the shell can redirect itself.
func Session(auth ports.AuthService, redirectToLogin bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return reject(c, redirectToLogin)
			}

			sess, err := auth.DecodeCookie(cookie.Value)
			if err != nil {
				return reject(c, redirectToLogin)
			}

			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

func reject(c echo.Context, redirectToLogin bool) error {
	if redirectToLogin {
		return c.Redirect(http.StatusFound, "/login")
	}
	return echo.NewHTTPError(http.StatusUnauthorized, "session required")
}

// SessionFromContext returns the session injected by Session. The boolean
// is false when the middleware did not run on this route.
func SessionFromContext(c echo.Context) (domain.Session, bool) {
	sess, ok := c.Get(sessionKey).(domain.Session)
	return sess, ok
}
