// Package common defines sentinel errors shared by the repository, service
// and transport layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Request-level errors: malformed body or a failed field check.
	ErrorValidation = errors.New("validation error")

	// Object storage is not configured.
	ErrorStorageDisabled = errors.New("object storage disabled")
)
