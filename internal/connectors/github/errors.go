package github

import (
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v80/github"

	"github.com/IQ2i/thot/internal/connectors/httpapi"
)

// wrapError converts go-github errors to the shared HTTP error types so
// callers can tell API refusals from transport failures.
func wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%s: %w", operation, statusError(rateErr.Response, rateErr.Message))
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return fmt.Errorf("%s: %w", operation, statusError(abuseErr.Response, abuseErr.Message))
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		return fmt.Errorf("%s: %w", operation, statusError(ghErr.Response, ghErr.Message))
	}

	return fmt.Errorf("%s: %w", operation, &httpapi.TransportError{Err: err})
}

func statusError(resp *http.Response, message string) *httpapi.StatusError {
	se := &httpapi.StatusError{StatusCode: http.StatusForbidden, Body: message}
	if resp != nil {
		se.StatusCode = resp.StatusCode
		if resp.Request != nil {
			se.URL = resp.Request.URL.String()
		}
	}
	return se
}
