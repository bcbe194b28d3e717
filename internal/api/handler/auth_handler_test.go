package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/glcplatform/portal/internal/api/middleware"
	"github.com/glcplatform/portal/internal/api/web"
	"github.com/glcplatform/portal/internal/core/domain"
)

type stubAuthService struct {
	loginFn  func(ctx context.Context, role string) (domain.Session, error)
	issueFn  func(sess domain.Session) (string, error)
	decodeFn func(value string) (domain.Session, error)
}

func (s *stubAuthService) Login(ctx context.Context, role string) (domain.Session, error) {
	return s.loginFn(ctx, role)
}

func (s *stubAuthService) IssueCookie(sess domain.Session) (string, error) {
	if s.issueFn != nil {
		return s.issueFn(sess)
	}
	return "signed-cookie", nil
}

func (s *stubAuthService) DecodeCookie(value string) (domain.Session, error) {
	if s.decodeFn != nil {
		return s.decodeFn(value)
	}
	return domain.Session{}, domain.ErrSessionInvalid
}

func newAuthEcho() *echo.Echo {
	e := echo.New()
	e.Renderer = web.NewRenderer()
	return e
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie {
			return cookie
		}
	}
	t.Fatalf("expected a %s cookie, got %v", middleware.SessionCookie, rec.Result().Cookies())
	return nil
}

// ---------------------------------------------------------------------------

func TestAuthHandler_LoginPage_RendersRolePicker(t *testing.T) {
	e := newAuthEcho()
	h := NewAuthHandler(&stubAuthService{}, &stubNavService{}, time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.LoginPage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `value="borrower"`) || !strings.Contains(body, `value="lender"`) {
		t.Errorf("expected both role buttons, got:\n%s", body)
	}
	if strings.Contains(body, "error-box") {
		t.Errorf("expected no error box on a fresh login page")
	}
}

func TestAuthHandler_LoginPage_ValidSessionRedirects(t *testing.T) {
	e := newAuthEcho()
	auth := &stubAuthService{
		decodeFn: func(value string) (domain.Session, error) {
			if value != "good-cookie" {
				return domain.Session{}, domain.ErrSessionInvalid
			}
			return borrowerTestSession(), nil
		},
	}
	h := NewAuthHandler(auth, &stubNavService{}, time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "good-cookie"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.LoginPage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/portal" {
		t.Errorf("expected redirect to /portal, got %q", loc)
	}
}

func TestAuthHandler_LoginPage_StaleCookieFallsThrough(t *testing.T) {
	e := newAuthEcho()
	h := NewAuthHandler(&stubAuthService{}, &stubNavService{}, time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "expired"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.LoginPage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected the login page for a stale cookie, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newAuthEcho()
	var gotRole string
	auth := &stubAuthService{
		loginFn: func(ctx context.Context, role string) (domain.Session, error) {
			gotRole = role
			return borrowerTestSession(), nil
		},
		issueFn: func(sess domain.Session) (string, error) {
			if sess.VisitID != "V-TEST00000001" {
				t.Fatalf("expected the logged-in session, got %+v", sess)
			}
			return "signed-cookie", nil
		},
	}
	h := NewAuthHandler(auth, &stubNavService{}, 12*time.Hour, false)

	form := strings.NewReader("role=borrower")
	req := httptest.NewRequest(http.MethodPost, "/login", form)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if gotRole != "borrower" {
		t.Errorf("expected role borrower, got %q", gotRole)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/portal" {
		t.Errorf("expected redirect to /portal, got %q", loc)
	}

	cookie := sessionCookieFrom(t, rec)
	if cookie.Value != "signed-cookie" {
		t.Errorf("expected cookie value signed-cookie, got %q", cookie.Value)
	}
	if !cookie.HttpOnly || cookie.Path != "/" {
		t.Errorf("expected HttpOnly cookie on /, got %+v", cookie)
	}
	if cookie.MaxAge != int((12 * time.Hour).Seconds()) {
		t.Errorf("expected max age %d, got %d", int((12*time.Hour).Seconds()), cookie.MaxAge)
	}
}

func TestAuthHandler_Login_SecureCookieInProduction(t *testing.T) {
	e := newAuthEcho()
	auth := &stubAuthService{
		loginFn: func(ctx context.Context, role string) (domain.Session, error) {
			return borrowerTestSession(), nil
		},
	}
	h := NewAuthHandler(auth, &stubNavService{}, time.Hour, true)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("role=borrower"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if cookie := sessionCookieFrom(t, rec); !cookie.Secure {
		t.Errorf("expected a Secure cookie")
	}
}

func TestAuthHandler_Login_Refused(t *testing.T) {
	e := newAuthEcho()
	auth := &stubAuthService{
		loginFn: func(ctx context.Context, role string) (domain.Session, error) {
			return domain.Session{}, domain.ErrCredentialsRejected
		},
	}
	h := NewAuthHandler(auth, &stubNavService{}, time.Hour, false)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("role=reviewer"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Login was refused") {
		t.Errorf("expected the refusal message on the login page")
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie {
			t.Errorf("expected no session cookie on a refused login")
		}
	}
}

func TestAuthHandler_Login_BackendDown(t *testing.T) {
	e := newAuthEcho()
	auth := &stubAuthService{
		loginFn: func(ctx context.Context, role string) (domain.Session, error) {
			return domain.Session{}, domain.ErrBackendUnreachable
		},
	}
	h := NewAuthHandler(auth, &stubNavService{}, time.Hour, false)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("role=borrower"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not responding") {
		t.Errorf("expected the outage message on the login page")
	}
}

func TestAuthHandler_Login_IssueCookieFailure(t *testing.T) {
	e := newAuthEcho()
	wantErr := errors.New("sign failed")
	auth := &stubAuthService{
		loginFn: func(ctx context.Context, role string) (domain.Session, error) {
			return borrowerTestSession(), nil
		},
		issueFn: func(sess domain.Session) (string, error) {
			return "", wantErr
		},
	}
	h := NewAuthHandler(auth, &stubNavService{}, time.Hour, false)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("role=borrower"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); !errors.Is(err, wantErr) {
		t.Fatalf("expected signing error to propagate, got %v", err)
	}
}

// ---------------------------------------------------------------------------

func TestAuthHandler_Logout_EndsVisitAndClearsCookie(t *testing.T) {
	e := newAuthEcho()
	auth := &stubAuthService{
		decodeFn: func(value string) (domain.Session, error) {
			return borrowerTestSession(), nil
		},
	}
	nav := &stubNavService{}
	h := NewAuthHandler(auth, nav, time.Hour, false)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "good-cookie"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if len(nav.endedVisits) != 1 || nav.endedVisits[0] != "V-TEST00000001" {
		t.Errorf("expected visit V-TEST00000001 ended, got %v", nav.endedVisits)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Errorf("expected redirect to /login, got %q", loc)
	}
	cookie := sessionCookieFrom(t, rec)
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Errorf("expected an expired empty cookie, got %+v", cookie)
	}
}

func TestAuthHandler_Logout_WithoutSession(t *testing.T) {
	e := newAuthEcho()
	nav := &stubNavService{}
	h := NewAuthHandler(&stubAuthService{}, nav, time.Hour, false)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(nav.endedVisits) != 0 {
		t.Errorf("expected no visit ended, got %v", nav.endedVisits)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
}
