package domain

import "time"

// Default engine settings.
const (
	// DefaultWindowSize is the number of tokens preceding a short form
	// that are searched for its long form.
	DefaultWindowSize = 10

	// DefaultExtractionTimeout bounds fetching and converting one document.
	DefaultExtractionTimeout = 60 * time.Second

	// DefaultFetchRate is the number of remote fetches allowed per second.
	DefaultFetchRate = 2.0
)

// EngineSettings holds the tunables of the extraction pipeline.
type EngineSettings struct {
	// WindowSize is the context window length in tokens.
	WindowSize int

	// RequireCapitalized restricts fresh long form words to capitalised
	// words longer than two characters.
	RequireCapitalized bool

	// ExtractionTimeout bounds text extraction for one document.
	ExtractionTimeout time.Duration

	// FetchRate throttles remote document downloads (requests per second).
	FetchRate float64

	// PreferPDFToText selects poppler's pdftotext over the built-in PDF reader
	// when it is installed.
	PreferPDFToText bool

	// RefreshInterval is how often stale results are recomputed in the
	// background. Zero disables background refresh.
	RefreshInterval time.Duration
}

// DefaultEngineSettings returns the default settings.
func DefaultEngineSettings() EngineSettings {
	return EngineSettings{
		WindowSize:         DefaultWindowSize,
		RequireCapitalized: true,
		ExtractionTimeout:  DefaultExtractionTimeout,
		FetchRate:          DefaultFetchRate,
		PreferPDFToText:    true,
	}
}

// Validate checks that settings are usable.
func (s EngineSettings) Validate() error {
	if s.WindowSize <= 0 {
		return ErrInvalidInput
	}
	if s.ExtractionTimeout < 0 || s.FetchRate < 0 || s.RefreshInterval < 0 {
		return ErrInvalidInput
	}
	return nil
}
