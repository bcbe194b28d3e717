package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/glcplatform/portal/internal/core/domain"
	"github.com/glcplatform/portal/internal/core/ports"
)

// AuthService exchanges a role for a backend identity and wraps the result
// in a signed session cookie.
type AuthService struct {
	backend ports.BackendGateway
	secret  []byte
	ttl     time.Duration
	logger  zerolog.Logger
}

func NewAuthService(backend ports.BackendGateway, secret string, ttl time.Duration, logger zerolog.Logger) *AuthService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &AuthService{backend: backend, secret: []byte(secret), ttl: ttl, logger: logger}
}

// Login performs the credential exchange with the backend and mints a fresh
// visit id. Each login starts a new visit; navigation state never leaks
// across sessions.
func (s *AuthService) Login(ctx context.Context, role string) (domain.Session, error) {
	if !domain.ValidRole(role) {
		return domain.Session{}, domain.ErrCredentialsRejected
	}

	sess, err := s.backend.Login(ctx, role)
	if err != nil {
		s.logger.Warn().Err(err).Str("role", role).Msg("login exchange failed")
		return domain.Session{}, err
	}
	sess.VisitID = newVisitID()

	s.logger.Info().Int("user_id", sess.UserID).Str("role", sess.Role).Str("visit_id", sess.VisitID).Msg("login")
	return sess, nil
}

// IssueCookie signs the session as a compact JWT for the cookie value.
func (s *AuthService) IssueCookie(sess domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  sess.UserID,
		"name":     sess.Name,
		"email":    sess.Email,
		"role":     sess.Role,
		"token":    sess.Token,
		"visit_id": sess.VisitID,
		"exp":      time.Now().Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// DecodeCookie verifies a cookie value and rebuilds the session. Any
// failure, from a bad signature to a missing claim, comes back as
// domain.ErrSessionInvalid so callers need only one redirect path.
func (s *AuthService) DecodeCookie(value string) (domain.Session, error) {
	parsed, err := jwt.Parse(value, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.Session{}, domain.ErrSessionInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Session{}, domain.ErrSessionInvalid
	}

	sess := domain.Session{
		UserID:  intClaim(claims, "user_id"),
		Name:    stringClaim(claims, "name"),
		Email:   stringClaim(claims, "email"),
		Role:    stringClaim(claims, "role"),
		Token:   stringClaim(claims, "token"),
		VisitID: stringClaim(claims, "visit_id"),
	}
	if !sess.LoggedIn() || !domain.ValidRole(sess.Role) || sess.VisitID == "" {
		return domain.Session{}, domain.ErrSessionInvalid
	}
	return sess, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}

func intClaim(claims jwt.MapClaims, key string) int {
	// numbers decode as float64 from JSON claims
	v, _ := claims[key].(float64)
	return int(v)
}

// newVisitID returns a random id in the format V-XXXXXXXXXXXX.
func newVisitID() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("V-%012X", time.Now().UnixNano()&0xFFFFFFFFFFFF)
	}
	return fmt.Sprintf("V-%012X", b)
}
