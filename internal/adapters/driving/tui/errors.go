package tui

import "errors"

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("tui: document service is required")

// ErrMissingAcronymService is returned when the acronym service is not provided.
var ErrMissingAcronymService = errors.New("tui: acronym service is required")
