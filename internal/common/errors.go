// Package common defines the error taxonomy shared by repositories, services
// and transports. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors.
	ErrorValidation   = errors.New("validation error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorDependency   = errors.New("dependency unavailable")

	// Transport-level errors.
	ErrorUnsupportedAction = errors.New("unsupported action")
)
