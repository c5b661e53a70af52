package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidParameter indicates bad chunking arguments. Never retried.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidArgument indicates an external resource reference that
	// could not be recognised. Fatal for the source.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedSource indicates no connector matches a source.
	ErrUnsupportedSource = errors.New("unsupported source")

	// ErrTransientFetch indicates a non-success response or a transport
	// failure while talking to an external system.
	ErrTransientFetch = errors.New("transient fetch failure")

	// ErrNoToken indicates a remote source has no access token configured.
	ErrNoToken = errors.New("no access token")
)
