package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown document type.
	ErrUnsupportedType = errors.New("unsupported document type")

	// ErrMissingAPIKey indicates no embedding credential is available.
	// This is a configuration failure: it is never retried.
	ErrMissingAPIKey = errors.New("API key not set")

	// ErrEmptyExtract indicates extraction produced no usable text.
	// Raised before any chunk is persisted.
	ErrEmptyExtract = errors.New("no text extracted from document")

	// ErrDocumentTooLarge indicates the extracted text exceeds the
	// ingestion cap. The pipeline fails closed rather than truncating.
	ErrDocumentTooLarge = errors.New("extracted text exceeds size limit")
)

// APIError is a non-success response from an external API call. Status and
// Body are kept verbatim so the retry policy can classify the failure and
// callers can display it.
type APIError struct {
	// Status is the HTTP status code.
	Status int

	// Body is the raw response body.
	Body string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.Status, e.Body)
}
