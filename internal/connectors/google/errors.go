package google

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/IQ2i/thot/internal/connectors/httpapi"
)

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return code(err) == http.StatusNotFound
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return code(err) == http.StatusTooManyRequests
}

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	return code(err) == http.StatusUnauthorized
}

func code(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return httpapi.StatusCode(err)
}

// WrapError converts a Google API error into an httpapi.StatusError, and any
// other failure into an httpapi.TransportError, so both report
// domain.ErrTransientFetch.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &httpapi.StatusError{StatusCode: gerr.Code, Body: gerr.Message}
	}
	return &httpapi.TransportError{Err: err}
}
