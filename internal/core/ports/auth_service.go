package ports

import (
	"context"

	"github.com/glcplatform/portal/internal/core/domain"
)

// AuthService owns the login exchange and the signed session cookie. Login
// failures keep their cause: domain.ErrCredentialsRejected when the backend
// refused the credentials, domain.ErrTimeout or domain.ErrBackendUnreachable
// when the exchange never completed.
type AuthService interface {
	Login(ctx context.Context, role string) (domain.Session, error)
	IssueCookie(sess domain.Session) (string, error)
	DecodeCookie(value string) (domain.Session, error)
}
