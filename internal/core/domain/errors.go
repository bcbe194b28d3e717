package domain

import (
	"errors"
	"fmt"
)

var ErrTimeout = errors.New("backend request timed out")
var ErrBackendUnreachable = errors.New("backend unreachable")
var ErrCredentialsRejected = errors.New("credentials rejected")
var ErrSessionInvalid = errors.New("session missing or invalid")
var ErrPageForbidden = errors.New("page not available for role")
var ErrDraftNotFound = errors.New("draft not found")
var ErrInvalidInput = errors.New("invalid input")

// APIError is returned by the backend client for any non-2xx response.
// The numeric status is always preserved; beyond that the client does not
// interpret 4xx vs 5xx, that is left to callers via errors.As.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

// APIStatus extracts the HTTP status carried by err, if it is an APIError.
func APIStatus(err error) (int, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status, true
	}
	return 0, false
}

// BackendDown reports whether err means the backend could not be reached at
// all (timeout or transport failure), as opposed to an HTTP-level error.
func BackendDown(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrBackendUnreachable)
}
