package catalog

import "errors"

// Errors returned when loading scenario documents.
var (
	// ErrCatalogNotFound indicates the scenario file was not found.
	ErrCatalogNotFound = errors.New("scenario file not found")

	// ErrInvalidFormat indicates the scenario document is malformed.
	ErrInvalidFormat = errors.New("invalid scenario format")

	// ErrUnsupportedFormat indicates the file format is not supported.
	ErrUnsupportedFormat = errors.New("unsupported scenario format")

	// ErrValidationFailed indicates scenario validation failed.
	ErrValidationFailed = errors.New("scenario validation failed")

	// ErrMissingEnvVar indicates a required environment variable is not set.
	ErrMissingEnvVar = errors.New("required environment variable not set")
)
