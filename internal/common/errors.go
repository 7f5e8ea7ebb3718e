// Package common defines the sentinel errors and shared constants used across
// tgsession packages. Callers should use errors.Is to match these values;
// concrete failures wrap them with the underlying cause.
package common

import "errors"

var (
	// Path / input errors.
	ErrInvalidPath = errors.New("invalid path")
	ErrNotFound    = errors.New("not found")

	// Codec errors.
	ErrParse      = errors.New("parse error")
	ErrGeneration = errors.New("generation error")

	// Credential errors (auth key length, unresolved dc id).
	ErrInvalidCredential = errors.New("invalid credential")

	// Dispatch errors.
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrNotImplemented    = errors.New("not implemented")

	// Lookup service errors (unreachable or explicit error payload).
	ErrExternalService = errors.New("external service error")
)
