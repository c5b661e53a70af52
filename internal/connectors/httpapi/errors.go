package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/IQ2i/thot/internal/core/domain"
)

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// Unwrap makes status errors match domain.ErrTransientFetch.
func (e *StatusError) Unwrap() error {
	return domain.ErrTransientFetch
}

// TransportError is returned when no response could be obtained.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

// Unwrap exposes both the cause and domain.ErrTransientFetch.
func (e *TransportError) Unwrap() []error {
	return []error{domain.ErrTransientFetch, e.Err}
}

// StatusCode returns the HTTP status of a StatusError, or 0.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

// IsNotFound checks if the error is a 404 response.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error is a 401 or 403 response.
func IsUnauthorized(err error) bool {
	code := StatusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// IsTransport checks if the error happened before any response was read.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
