package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/glcplatform/portal/internal/api/middleware"
	"github.com/glcplatform/portal/internal/core/domain"
	"github.com/glcplatform/portal/internal/core/ports"
)

// AuthHandler serves the login screen and owns the session cookie
// lifecycle.
type AuthHandler struct {
	auth          ports.AuthService
	nav           ports.NavService
	cookieTTL     time.Duration
	secureCookies bool
}

func NewAuthHandler(auth ports.AuthService, nav ports.NavService, cookieTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: auth, nav: nav, cookieTTL: cookieTTL, secureCookies: secureCookies}
}

type loginPageData struct {
	Error string
}

// LoginPage renders the role-picker login screen. A browser that already
// holds a valid session goes straight to the portal.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if _, err := h.auth.DecodeCookie(cookie.Value); err == nil {
			return c.Redirect(http.StatusFound, "/portal")
		}
	}
	return c.Render(http.StatusOK, "login.tmpl", loginPageData{})
}

// Login exchanges the chosen role for a backend identity and sets the
// session cookie. Failures re-render the login screen with the reason; the
// status code still reflects what went wrong.
func (h *AuthHandler) Login(c echo.Context) error {
	role := c.FormValue("role")

	sess, err := h.auth.Login(c.Request().Context(), role)
	if err != nil {
		status, msg := loginFailure(err)
		return c.Render(status, "login.tmpl", loginPageData{Error: msg})
	}

	value, err := h.auth.IssueCookie(sess)
	if err != nil {
		return err
	}
	c.SetCookie(h.sessionCookie(value, h.cookieTTL))

	return c.Redirect(http.StatusFound, "/portal")
}

// Logout drops the visit's navigation state and expires the cookie. It
// works with or without a valid session; logging out twice is fine.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if sess, err := h.auth.DecodeCookie(cookie.Value); err == nil {
			h.nav.EndVisit(sess.VisitID)
		}
	}
	c.SetCookie(h.sessionCookie("", -time.Hour))
	return c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

func loginFailure(err error) (int, string) {
	switch {
	case domain.BackendDown(err):
		return http.StatusBadGateway, "The lending service is not responding. Please try again in a moment."
	default:
		return http.StatusUnauthorized, "Login was refused. Pick a role and try again."
	}
}
