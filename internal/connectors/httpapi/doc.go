// Package httpapi is the JSON HTTP client shared by the REST connectors.
//
// It sends GET and POST requests with query parameters, bearer or header
// token authentication and JSON bodies. Requests are throttled by a
// RateLimiter that also honours the remaining-quota headers of the API.
//
// Non-2xx responses surface as *StatusError, transport failures as
// *TransportError. Both match domain.ErrTransientFetch with errors.Is.
package httpapi
