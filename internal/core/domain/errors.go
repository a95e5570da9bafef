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

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates a document type no extractor can handle.
	ErrUnsupportedType = errors.New("unsupported type")

	// Resolution Errors.

	// ErrExtractionUnavailable indicates the document text could not be
	// fetched or converted. It aborts resolution for that document.
	ErrExtractionUnavailable = errors.New("text extraction unavailable")

	// ErrAggregationWrite indicates vote deltas could not be persisted.
	// Callers log it; the per-document result is still served.
	ErrAggregationWrite = errors.New("aggregate vote write failed")

	// ErrMatcherFailure indicates an unexpected failure while matching one
	// short form occurrence. It never aborts a whole document.
	ErrMatcherFailure = errors.New("long form matcher failure")
)
